// Package export writes dial frames and item trajectories as SVG.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/dialmenu/internal/dial"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/interaction"
)

const (
	background = "#0a0a0a"
	slotStroke = "#3a3a3a"
	itemFill   = "#00ff00"
	dragStroke = "#ffb000"
)

// bounds is an axis-aligned box in world coordinates.
type bounds struct {
	min, max geom.Point
}

func boundsOf(points []geom.Point) bounds {
	b := bounds{min: points[0], max: points[0]}
	for _, p := range points[1:] {
		b.min.X = math.Min(b.min.X, p.X)
		b.min.Y = math.Min(b.min.Y, p.Y)
		b.max.X = math.Max(b.max.X, p.X)
		b.max.Y = math.Max(b.max.Y, p.Y)
	}
	return b
}

// pad grows the box by frac of its size plus margin on every side.
func (b bounds) pad(frac, margin float64) bounds {
	w, h := b.max.X-b.min.X, b.max.Y-b.min.Y
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	dx, dy := w*frac+margin, h*frac+margin
	return bounds{
		min: geom.Pt(b.min.X-dx, b.min.Y-dy),
		max: geom.Pt(b.max.X+dx, b.max.Y+dy),
	}
}

// fit maps world coordinates into a width x height picture, keeping the
// aspect ratio so circles stay round. Screen y already grows downward.
type fit struct {
	origin geom.Point
	scale  float64
}

func newFit(b bounds, width, height int) fit {
	sx := float64(width) / (b.max.X - b.min.X)
	sy := float64(height) / (b.max.Y - b.min.Y)
	return fit{origin: b.min, scale: math.Min(sx, sy)}
}

func (f fit) point(p geom.Point) (float64, float64) {
	return (p.X - f.origin.X) * f.scale, (p.Y - f.origin.Y) * f.scale
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// FrameSVG draws one frame: empty slot rings, then items as filled circles
// sized by their scale. A dragged or snapping item gets an outline.
func FrameSVG(f dial.Frame, slots []geom.Point, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("export: picture size %dx%d: %w", width, height, dynamo.ErrInvalidInput)
	}
	points := append([]geom.Point(nil), slots...)
	maxR := 0.0
	for _, it := range f.Items {
		points = append(points, it.Position)
		maxR = math.Max(maxR, it.Radius)
	}
	if len(points) == 0 {
		return "", fmt.Errorf("export: empty frame: %w", dynamo.ErrInvalidInput)
	}
	fm := newFit(boundsOf(points).pad(0.05, maxR), width, height)

	var sb strings.Builder
	header(&sb, width, height)

	fmt.Fprintf(&sb, "<g fill=\"none\" stroke=\"%s\">\n", slotStroke)
	for _, s := range slots {
		x, y := fm.point(s)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", x, y, 2.0)
	}
	sb.WriteString("</g>\n")

	for _, it := range f.Items {
		x, y := fm.point(it.Position)
		fill := itemFill
		if it.Color.R != 0 || it.Color.G != 0 || it.Color.B != 0 {
			fill = it.Color.Hex()
		}
		stroke := ""
		if it.Snapping || it.State == interaction.Dragging {
			stroke = fmt.Sprintf(` stroke="%s" stroke-width="2"`, dragStroke)
		}
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"%s/>\n",
			x, y, it.Radius*fm.scale, fill, stroke)
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// TrajectorySVG traces one item's position across frames.
func TrajectorySVG(frames []dial.Frame, item, width, height int, stroke string) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("export: picture size %dx%d: %w", width, height, dynamo.ErrInvalidInput)
	}
	var points []geom.Point
	for _, f := range frames {
		if item < 0 || item >= len(f.Items) {
			return "", fmt.Errorf("export: frame %d has no item %d: %w", f.Tick, item, dynamo.ErrInvalidInput)
		}
		points = append(points, f.Items[item].Position)
	}
	if len(points) < 2 {
		return "", fmt.Errorf("export: need at least two frames, got %d: %w", len(points), dynamo.ErrInvalidInput)
	}
	if stroke == "" {
		stroke = itemFill
	}
	fm := newFit(boundsOf(points).pad(0.1, 0), width, height)

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i, p := range points {
		x, y := fm.point(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String(), nil
}

// Save writes an SVG document, creating the directory if needed.
func Save(path, svg string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(svg), 0o644)
}
