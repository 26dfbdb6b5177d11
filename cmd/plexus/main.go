package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/gui"
	"github.com/san-kum/plexus/internal/portfolio"
	"github.com/san-kum/plexus/internal/server"
	"github.com/san-kum/plexus/internal/tui"
	"github.com/san-kum/plexus/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	preset     string
	seed       int64
	theme      string
	profile    string
	tmux       bool
	addr       string
	guiFPS     int

	// Each command owns its flag variables: cobra writes a flag's default
	// into its variable at registration.
	liveOpts struct {
		fps, frames, cols, rows int
		noColor                 bool
	}
	recordOpts struct {
		frames, runs  int
		width, height float64
		orbit         bool
	}
	svgOpts struct {
		frames        int
		width, height float64
		out           string
	}
	csvOut string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "plexus",
		Short:         "particle field portfolio for the terminal, the desktop and the browser",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPage,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", config.DefaultPath, "config file path (yaml)")
	pf.StringVar(&dataDir, "data", "", "data directory (default from config)")
	pf.StringVar(&preset, "preset", "", "field preset")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.StringVar(&profile, "profile", "", "profile yaml")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal page",
		RunE:  runPage,
	}
	tuiCmd.Flags().BoolVar(&tmux, "tmux", os.Getenv("TMUX") != "", "wrap clipboard sequences for tmux")
	rootCmd.Flags().BoolVar(&tmux, "tmux", os.Getenv("TMUX") != "", "wrap clipboard sequences for tmux")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "print field frames to stdout",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&liveOpts.fps, "fps", 0, "frame rate (default from config)")
	liveCmd.Flags().IntVar(&liveOpts.frames, "frames", 300, "frames to print (0 runs until interrupted)")
	liveCmd.Flags().IntVar(&liveOpts.cols, "cols", 80, "columns")
	liveCmd.Flags().IntVar(&liveOpts.rows, "rows", 24, "rows")
	liveCmd.Flags().BoolVar(&liveOpts.noColor, "no-color", false, "plain braille output")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the field in a desktop window",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&guiFPS, "fps", 0, "frame cap (0 is uncapped)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the field over http",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "run the field headless and store its frame statistics",
		RunE:  runRecord,
	}
	recordCmd.Flags().IntVar(&recordOpts.frames, "frames", 600, "frames per run")
	recordCmd.Flags().Float64Var(&recordOpts.width, "width", 1280, "surface width in px")
	recordCmd.Flags().Float64Var(&recordOpts.height, "height", 720, "surface height in px")
	recordCmd.Flags().IntVar(&recordOpts.runs, "runs", 1, "parallel runs with consecutive seeds")
	recordCmd.Flags().BoolVar(&recordOpts.orbit, "orbit", false, "circle the pointer around the center")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot link counts of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run-id]",
		Short: "delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "render a frame to svg",
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgOpts.frames, "frames", 1, "frames to advance before rendering")
	exportSVGCmd.Flags().Float64Var(&svgOpts.width, "width", 1280, "width in px")
	exportSVGCmd.Flags().Float64Var(&svgOpts.height, "height", 720, "height in px")
	exportSVGCmd.Flags().StringVarP(&svgOpts.out, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run-id]",
		Short: "export run frames as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&csvOut, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, liveCmd, guiCmd, serveCmd, recordCmd, listCmd, plotCmd, deleteCmd,
		exportSVGCmd, exportCSVCmd, presetsCmd, configCmd)
	return rootCmd
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if theme != "" {
		cfg.Theme = theme
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadProfile(cfg *config.Config) (*portfolio.Profile, error) {
	if cfg.Profile == "" {
		return portfolio.DefaultProfile(), nil
	}
	return portfolio.LoadProfile(cfg.Profile)
}

func effectiveSeed(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func newRand(cfg *config.Config) *rand.Rand {
	return rand.New(rand.NewSource(effectiveSeed(cfg)))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runPage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Config:    cfg,
		Profile:   p,
		Clipboard: portfolio.NewClipboard(os.Stdout, tmux),
		Rand:      newRand(cfg),
	}, os.Stdin, os.Stdout)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fps := cfg.FPS
	if liveOpts.fps > 0 {
		fps = liveOpts.fps
	}

	r := tui.NewLiveRenderer(os.Stdout, liveOpts.cols, liveOpts.rows, cfg.Field, viz.GetTheme(cfg.Theme), newRand(cfg))
	r.SetColor(!liveOpts.noColor)

	ctx, cancel := signalContext()
	defer cancel()
	err = r.Run(ctx, fps, liveOpts.frames)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m := gui.Run(gui.Options{
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Title:   cfg.Window.Title,
		FPS:     guiFPS,
		Params:  cfg.Field,
		Seed:    cfg.Seed,
		ShowHUD: true,
	})
	printMetrics(os.Stdout, m)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	p, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	s, err := server.New(cfg, p, newRand(cfg))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	return s.Run(ctx)
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("available presets:")
		for _, name := range config.ListPresets() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	p := config.GetPreset(args[0])
	if p == nil {
		return fmt.Errorf("unknown preset: %s", args[0])
	}
	printParams(args[0], *p)
	return nil
}

func printParams(name string, p field.Params) {
	fmt.Printf("preset: %s\n", name)
	fmt.Printf("  density:          %.0f px² per point\n", p.Density)
	fmt.Printf("  link distance:    %.0f px\n", p.LinkDistance)
	fmt.Printf("  pointer distance: %.0f px\n", p.PointerDistance)
	fmt.Printf("  speed:            %.2f px/frame\n", p.Speed)
	fmt.Printf("  radius:           %.1f..%.1f px\n", p.MinRadius, p.MaxRadius)
	fmt.Printf("  link alpha:       %.2f\n", p.LinkAlpha)
	fmt.Printf("  pointer alpha:    %.2f\n", p.PointerAlpha)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
