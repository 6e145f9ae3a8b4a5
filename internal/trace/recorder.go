// Package trace records menu frames for export and plotting.
package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dialmenu/internal/dial"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
)

type Recorder struct {
	frames []dial.Frame
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record stores f with its own copy of the item slice.
func (r *Recorder) Record(f dial.Frame) {
	f.Items = append([]dial.ItemFrame(nil), f.Items...)
	r.frames = append(r.frames, f)
}

func (r *Recorder) Frames() []dial.Frame { return r.frames }
func (r *Recorder) Len() int             { return len(r.frames) }

func (r *Recorder) Last() (dial.Frame, bool) {
	if len(r.frames) == 0 {
		return dial.Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// WriteCSV writes one row per item per frame.
func (r *Recorder) WriteCSV(out io.Writer) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"tick", "phase", "item", "x", "y", "scale", "state"}); err != nil {
		return err
	}
	for _, f := range r.frames {
		for _, it := range f.Items {
			row := []string{
				strconv.Itoa(f.Tick),
				f.Phase.String(),
				strconv.Itoa(it.Index),
				strconv.FormatFloat(it.Position.X, 'f', 6, 64),
				strconv.FormatFloat(it.Position.Y, 'f', 6, 64),
				strconv.FormatFloat(it.Scale, 'f', 6, 64),
				it.State.String(),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func (r *Recorder) SaveCSV(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.WriteCSV(f)
}

// Distance is the series of item's distance to target, one sample per
// recorded frame.
func (r *Recorder) Distance(item int, target geom.Point) ([]float64, error) {
	series := make([]float64, 0, len(r.frames))
	for _, f := range r.frames {
		if item < 0 || item >= len(f.Items) {
			return nil, fmt.Errorf("trace: no item %d in frame %d: %w", item, f.Tick, dynamo.ErrInvalidInput)
		}
		series = append(series, geom.Distance(f.Items[item].Position, target))
	}
	return series, nil
}

// PlotDistance charts Distance as text.
func (r *Recorder) PlotDistance(item int, target geom.Point, width, height int) (string, error) {
	series, err := r.Distance(item, target)
	if err != nil {
		return "", err
	}
	if len(series) == 0 {
		return "", fmt.Errorf("trace: nothing recorded: %w", dynamo.ErrInvalidInput)
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("item %d distance to (%.1f, %.1f)", item, target.X, target.Y)),
	), nil
}
