package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/sim"
	"github.com/san-kum/plexus/internal/storage"
	"github.com/spf13/cobra"
)

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := storage.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	width, height := recordOpts.width, recordOpts.height
	runCfg := sim.Config{
		Width:  width,
		Height: height,
		Frames: recordOpts.frames,
		Params: cfg.Field,
	}
	if recordOpts.orbit {
		runCfg.Pointer = sim.Orbit(width/2, height/2, min(width, height)/4, 240)
	}

	ctx, cancel := signalContext()
	defer cancel()

	seedStart := effectiveSeed(cfg)
	results, err := sim.NewEnsemble(max(recordOpts.runs, 1), seedStart, metrics.Default).Run(ctx, runCfg)
	if err != nil {
		return err
	}

	presetName := preset
	if presetName == "" {
		presetName = "custom"
	}
	for i, res := range results {
		id, err := st.Save(ctx, storage.RunMetadata{
			Preset:    presetName,
			Timestamp: time.Now(),
			Seed:      seedStart + int64(i),
			Width:     width,
			Height:    height,
			Frames:    len(res.Frames),
			Params:    cfg.Field,
			Metrics:   res.Metrics,
		}, res.Frames)
		if err != nil {
			return err
		}
		fmt.Printf("run saved: %s (%d frames in %s)\n", id, len(res.Frames), res.Elapsed.Round(time.Millisecond))
		printMetrics(os.Stdout, res.Metrics)
	}
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-20s %.4f\n", name, m[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := storage.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tFRAMES\tSEED\tMEAN LINKS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fx%.0f\t%d\t%d\t%.1f\n",
			run.ID[:8],
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Frames,
			run.Seed,
			run.Metrics["mean_links"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := storage.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(cmd.Context(), meta.ID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(frames))

	series := []struct {
		caption string
		value   func(field.FrameStats) float64
	}{
		{"links per frame", func(s field.FrameStats) float64 { return float64(s.Links) }},
		{"pointer links per frame", func(s field.FrameStats) float64 { return float64(s.PointerLinks) }},
		{"mean speed (px/frame)", func(s field.FrameStats) float64 { return s.MeanSpeed }},
	}

	for _, s := range series {
		data := make([]float64, len(frames))
		for i, f := range frames {
			data[i] = s.value(f)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	printMetrics(os.Stdout, meta.Metrics)
	return nil
}

func deleteRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := storage.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := st.Delete(cmd.Context(), meta.ID); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", meta.ID)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := storage.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return withOutput(csvOut, func(w io.Writer) error {
		return st.ExportCSV(cmd.Context(), meta.ID, w)
	})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svg := export.NewSVG(svgOpts.width, svgOpts.height)
	r := field.Mount(svg, cfg.Field, newRand(cfg))
	r.Field().SetPointer(svgOpts.width/2, svgOpts.height/2)
	for i := 0; i < max(svgOpts.frames, 1); i++ {
		r.Frame()
	}

	return withOutput(svgOpts.out, func(w io.Writer) error {
		_, err := svg.WriteTo(w)
		return err
	})
}

// withOutput hands fn the file at path, or stdout when path is empty.
func withOutput(path string, fn func(w io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
