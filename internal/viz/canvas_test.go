package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/dialmenu/internal/geom"
)

func TestCanvas_Set(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, "#ff0000")
	c.Set(3, 7, "")

	if c.Grid[0][0] != blank|0x1 {
		t.Errorf("expected dot 1 in cell (0,0), got %U", c.Grid[0][0])
	}
	if c.Grid[1][1] != blank|0x80 {
		t.Errorf("expected dot 8 in cell (1,1), got %U", c.Grid[1][1])
	}
	if c.Colors[0][0] != "#ff0000" || c.Colors[1][1] != "" {
		t.Errorf("unexpected colours %q %q", c.Colors[0][0], c.Colors[1][1])
	}
	if !c.Lit(3, 7) || c.Lit(2, 7) {
		t.Error("Lit disagrees with Set")
	}

	c.Set(-1, 0, "")
	c.Set(100, 100, "")
	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != blank && r != '\n' }) {
		t.Error("clear should blank every cell")
	}
}

func TestCanvas_DrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 6, "#00ff00")

	for _, p := range [][2]int{{26, 20}, {14, 20}, {20, 26}, {20, 14}} {
		if !c.Lit(p[0], p[1]) {
			t.Errorf("expected %v on the outline", p)
		}
	}
	if c.Lit(20, 20) {
		t.Error("outline should leave the centre dark")
	}
}

func TestCanvas_FillCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(20, 20, 3, "")
	if !c.Lit(20, 20) || !c.Lit(22, 21) {
		t.Error("fill should light the interior")
	}
	if c.Lit(24, 20) {
		t.Error("fill should stop at the radius")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 9, 9, "")
	for i := 0; i < 10; i++ {
		if !c.Lit(i, i) {
			t.Errorf("diagonal missing dot %d", i)
		}
	}
}

func TestCanvas_RenderKeepsGlyphs(t *testing.T) {
	c := NewCanvas(6, 1)
	c.Set(0, 0, "#ff0000")
	c.Set(2, 0, "#ff0000")
	c.Set(10, 0, "#0000ff")

	out := c.Render()
	for _, r := range c.String() {
		if r != '\n' && !strings.ContainsRune(out, r) {
			t.Errorf("rendered output lost glyph %U", r)
		}
	}
}

func TestViewport_RoundTrip(t *testing.T) {
	v := NewViewport(geom.Pt(160, 240), 137.5, 120, 96)

	x, y := v.ToDots(geom.Pt(160, 240))
	if x != 60 || y != 48 {
		t.Errorf("centre should map to the middle, got %d,%d", x, y)
	}

	p := geom.Pt(160, 140)
	x, y = v.ToDots(p)
	back := v.ToWorld(float64(x), float64(y))
	if !back.Eq(p, 1/v.Scale) {
		t.Errorf("round trip drifted: %v -> %v", p, back)
	}

	_, ty := v.ToDots(geom.Pt(160, 240-137.5))
	if ty < 0 {
		t.Errorf("extent should fit the canvas, got y=%d", ty)
	}
}
