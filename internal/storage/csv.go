package storage

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
)

// ExportCSV writes the frames of a run as CSV with a header row.
func (s *Store) ExportCSV(ctx context.Context, runID string, w io.Writer) error {
	frames, err := s.LoadFrames(ctx, runID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"frame", "points", "links", "pointer_links", "bounces", "mean_speed"}); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Frame),
			strconv.Itoa(f.Points),
			strconv.Itoa(f.Links),
			strconv.Itoa(f.PointerLinks),
			strconv.Itoa(f.Bounces),
			strconv.FormatFloat(f.MeanSpeed, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
