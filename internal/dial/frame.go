package dial

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/interaction"
)

// ItemFrame is what a renderer needs to draw one item.
type ItemFrame struct {
	Index    int
	Position geom.Point
	Scale    float64
	Radius   float64
	Color    colorful.Color
	State    interaction.State
	Snapping bool
}

// Frame is a snapshot of the menu after a tick.
type Frame struct {
	Phase   Phase
	Tick    int
	Energy  float64
	Pointer geom.Point
	Items   []ItemFrame
}

type energyReporter interface {
	Energy() float64
}

func (m *Menu) Frame() Frame {
	f := Frame{
		Phase:   m.phase,
		Tick:    m.tick,
		Pointer: m.pointer,
		Items:   make([]ItemFrame, len(m.items)),
	}
	if e, ok := m.solver.(energyReporter); ok {
		f.Energy = e.Energy()
	}

	d := m.set.Drag()
	for i, it := range m.items {
		f.Items[i] = ItemFrame{
			Index:    it.Index,
			Position: it.Position,
			Scale:    it.Scale,
			Radius:   m.opts.ItemSize / 2 * it.Scale,
			Color:    it.Color,
			State:    m.State(i),
			Snapping: d != nil && d.Item == i && d.Phase == constraint.Snapping,
		}
	}
	return f
}
