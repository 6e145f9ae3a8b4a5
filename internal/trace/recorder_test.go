package trace

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/dialmenu/internal/dial"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/interaction"
)

func frame(tick int, positions ...geom.Point) dial.Frame {
	f := dial.Frame{Phase: dial.PhaseInteractive, Tick: tick}
	for i, p := range positions {
		f.Items = append(f.Items, dial.ItemFrame{Index: i, Position: p, Scale: 1, State: interaction.Idle})
	}
	return f
}

func TestRecorder_WriteCSV(t *testing.T) {
	r := NewRecorder()
	r.Record(frame(0, geom.Pt(1, 2), geom.Pt(3, 4)))
	r.Record(frame(1, geom.Pt(1.5, 2), geom.Pt(3, 4)))

	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+4 {
		t.Fatalf("expected header plus 4 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "tick,phase,item,x,y,scale,state" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[3][0] != "1" || rows[3][3] != "1.500000" || rows[3][6] != "idle" {
		t.Errorf("unexpected row %v", rows[3])
	}
}

func TestRecorder_CopiesItems(t *testing.T) {
	r := NewRecorder()
	f := frame(0, geom.Pt(1, 1))
	r.Record(f)
	f.Items[0].Position = geom.Pt(9, 9)

	last, ok := r.Last()
	if !ok || last.Items[0].Position != geom.Pt(1, 1) {
		t.Errorf("recorded frame was aliased: %v", last.Items[0].Position)
	}
}

func TestRecorder_SaveCSV(t *testing.T) {
	r := NewRecorder()
	r.Record(frame(0, geom.Pt(0, 0)))

	path := filepath.Join(t.TempDir(), "out", "frames.csv")
	if err := r.SaveCSV(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("csv not written: %v", err)
	}
}

func TestRecorder_Distance(t *testing.T) {
	r := NewRecorder()
	r.Record(frame(0, geom.Pt(0, 0), geom.Pt(3, 4)))
	r.Record(frame(1, geom.Pt(0, 0), geom.Pt(0, 0)))

	series, err := r.Distance(1, geom.Pt(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 2 || series[0] != 5 || series[1] != 0 {
		t.Errorf("unexpected series %v", series)
	}

	if _, err := r.Distance(7, geom.Pt(0, 0)); !errors.Is(err, dynamo.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestRecorder_PlotDistance(t *testing.T) {
	r := NewRecorder()
	if _, err := r.PlotDistance(0, geom.Pt(0, 0), 40, 5); !errors.Is(err, dynamo.ErrInvalidInput) {
		t.Errorf("empty recorder should fail, got %v", err)
	}

	for i := 0; i < 10; i++ {
		r.Record(frame(i, geom.Pt(float64(10-i), 0)))
	}
	chart, err := r.PlotDistance(0, geom.Pt(0, 0), 40, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(chart, "item 0 distance") {
		t.Errorf("caption missing from chart:\n%s", chart)
	}
}
