package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/plexus/internal/field"
)

func sampleFrames(n int) []field.FrameStats {
	frames := make([]field.FrameStats, n)
	for i := range frames {
		frames[i] = field.FrameStats{Frame: i, Points: 100, Links: 40 + i, PointerLinks: i % 2, Bounces: 1, MeanSpeed: 0.18}
	}
	return frames
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	meta := RunMetadata{
		Preset:  "dense",
		Seed:    42,
		Width:   1500,
		Height:  1000,
		Params:  field.DefaultParams(),
		Metrics: map[string]float64{"mean_links": 41.5},
	}
	id, err := s.Save(ctx, meta, sampleFrames(4))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 42 || loaded.Preset != "dense" || loaded.Frames != 4 {
		t.Errorf("unexpected metadata %+v", loaded)
	}
	if loaded.Params.LinkDistance != field.DefaultLinkDistance {
		t.Errorf("params not round-tripped: %+v", loaded.Params)
	}
	if loaded.Metrics["mean_links"] != 41.5 {
		t.Errorf("metrics not round-tripped: %v", loaded.Metrics)
	}

	frames, err := s.LoadFrames(ctx, id[:8])
	if err != nil {
		t.Fatalf("load frames by prefix failed: %v", err)
	}
	if len(frames) != 4 || frames[3].Links != 43 {
		t.Errorf("unexpected frames %+v", frames)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	runs, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}

	for i := 0; i < 3; i++ {
		if _, err := s.Save(ctx, RunMetadata{Seed: int64(i)}, sampleFrames(2)); err != nil {
			t.Fatal(err)
		}
	}
	runs, err = s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
}

func TestLoad_NotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.Load(context.Background(), "does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_PrefixIsLiteral(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	id, err := s.Save(ctx, RunMetadata{Preset: "default"}, sampleFrames(2))
	if err != nil {
		t.Fatal(err)
	}

	for _, prefix := range []string{"_", "%", id[:1] + "%", "", "_" + id[1:]} {
		if _, err := s.Load(ctx, prefix); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load(%q): expected ErrNotFound, got %v", prefix, err)
		}
	}

	meta, err := s.Load(ctx, id[:8])
	if err != nil {
		t.Fatalf("prefix load failed: %v", err)
	}
	if meta.ID != id {
		t.Errorf("expected %s, got %s", id, meta.ID)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	id, err := s.Save(ctx, RunMetadata{}, sampleFrames(3))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	id, err := s.Save(ctx, RunMetadata{}, sampleFrames(2))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := s.ExportCSV(ctx, id, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "frame,points,links,pointer_links,bounces,mean_speed" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[2] != "1,100,41,1,1,0.180000" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestOpen_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer s.Close()
	if !strings.HasSuffix(s.Path(), DBName) {
		t.Errorf("unexpected path %s", s.Path())
	}
}
