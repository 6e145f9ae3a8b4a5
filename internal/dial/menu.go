package dial

import (
	"fmt"

	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/entry"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/inflate"
	"github.com/san-kum/dialmenu/internal/interaction"
	"github.com/san-kum/dialmenu/internal/item"
	"github.com/san-kum/dialmenu/internal/layout"
	"github.com/san-kum/dialmenu/internal/physics"
	"go.uber.org/zap"
)

type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseEntering
	PhaseInteractive
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseEntering:
		return "entering"
	case PhaseInteractive:
		return "interactive"
	}
	return "unknown"
}

type Menu struct {
	opts     Options
	logger   *zap.Logger
	solver   constraint.Solver
	easing   entry.Easing
	observer func(interaction.Transition)

	items      []*item.Item
	layout     *layout.Layout
	set        *constraint.Set
	dispatcher *interaction.Dispatcher
	anim       *entry.Animation
	modulator  *inflate.Modulator

	phase   Phase
	tick    int
	pointer geom.Point
}

// New validates opts and builds an empty menu. Call SetItems to lay it out.
func New(opts Options, options ...Option) (*Menu, error) {
	m := &Menu{
		opts:   opts,
		logger: zap.NewNop(),
		set:    constraint.NewSet(),
	}
	for _, o := range options {
		o(m)
	}

	if opts.Radius <= 0 {
		return nil, fmt.Errorf("dial: radius must be positive, got %f: %w", opts.Radius, dynamo.ErrConfiguration)
	}
	if opts.ItemSize < 0 {
		return nil, fmt.Errorf("dial: item size must not be negative, got %f: %w", opts.ItemSize, dynamo.ErrConfiguration)
	}
	if opts.Inflate.Enabled {
		if err := opts.Inflate.Params.Validate(); err != nil {
			return nil, err
		}
		switch opts.Inflate.Reference {
		case "", ReferenceTop, ReferenceCenter, ReferencePointer:
		default:
			return nil, fmt.Errorf("dial: unknown inflate reference %q: %w", opts.Inflate.Reference, dynamo.ErrConfiguration)
		}
	}

	easing, err := entry.EasingByName(opts.Easing)
	if err != nil {
		return nil, err
	}
	m.easing = easing

	if m.solver == nil {
		s, err := physics.NewSolver(opts.Solver, opts.Spring)
		if err != nil {
			return nil, err
		}
		m.solver = s
	}

	return m, nil
}

// SetItems replaces the menu's items, lays them out and starts the entry
// animation. Any drag in progress is dropped.
func (m *Menu) SetItems(items []*item.Item) error {
	l, err := layout.New(len(items), m.opts.Center, m.opts.Radius)
	if err != nil {
		return fmt.Errorf("dial: set items: %w", err)
	}

	if m.dispatcher != nil {
		m.dispatcher.Cancel()
	}
	m.set.Reset()
	m.modulator = nil
	m.items = items
	m.layout = l
	m.tick = 0
	m.pointer = l.Slots[0]

	m.dispatcher = interaction.NewDispatcher(len(items), m.set, l.Slots, m.logger)
	m.dispatcher.OnTransition = m.observer

	for _, it := range items {
		it.Position = l.Center
		it.Velocity = geom.Point{}
		it.Scale = 1
	}

	m.logger.Info("layout computed",
		zap.Int("items", l.Len()),
		zap.Float64("radius", l.Radius),
		zap.Float64("chord", l.Chord()),
		zap.String("solver", m.solver.Name()))

	m.anim = entry.New(l.Center, l.Slots, m.opts.EntryDuration, m.easing)
	m.phase = PhaseEntering
	if m.opts.EntryDuration <= 0 {
		m.advanceEntry(0)
	}
	return nil
}

// Tick advances the menu by dt seconds.
func (m *Menu) Tick(dt float64) error {
	switch m.phase {
	case PhaseEntering:
		m.advanceEntry(dt)
	case PhaseInteractive:
		if err := m.solver.Solve(m.items, m.set, dt); err != nil {
			m.logger.Warn("solver step failed", zap.Int("tick", m.tick), zap.Error(err))
			return err
		}
		m.settle()
		if m.modulator != nil {
			m.modulator.Apply(m.items)
		}
	}
	m.tick++
	return nil
}

func (m *Menu) advanceEntry(dt float64) {
	pos, done := m.anim.Advance(dt)
	m.place(pos)
	if done {
		m.logger.Info("entry animation finished", zap.Int("tick", m.tick))
		m.install()
	}
}

func (m *Menu) place(pos []geom.Point) {
	for i, it := range m.items {
		it.Position = pos[i]
	}
}

// install attaches the permanent constraints and inflate rules and opens
// the interactive phase.
func (m *Menu) install() {
	// the layout is never empty here, so Install cannot fail
	_ = m.set.Install(m.layout.Center, m.layout.Slots)
	m.logger.Info("constraints installed", zap.Int("count", len(m.set.Permanent())))

	if m.opts.Inflate.Enabled {
		// params were validated in New
		m.modulator, _ = inflate.NewModulator(len(m.items), m.inflateReference(), m.opts.Inflate.Params)
		m.modulator.Apply(m.items)
	}
	m.phase = PhaseInteractive
}

func (m *Menu) inflateReference() geom.Point {
	switch m.opts.Inflate.Reference {
	case ReferenceCenter:
		return m.layout.Center
	case ReferencePointer:
		return m.pointer
	}
	return m.layout.Slots[0]
}

// settle tears down a snap constraint that has reached its slot.
func (m *Menu) settle() {
	d := m.set.Drag()
	if d == nil || d.Phase != constraint.Snapping || !d.Settled || m.opts.KeepSnap {
		return
	}
	m.set.ClearDrag()
	m.logger.Debug("snap settled", zap.Int("item", d.Item), zap.Int("slot", d.Slot), zap.Int("tick", m.tick))
}

// HandlePointer feeds one pointer event into the menu.
func (m *Menu) HandlePointer(ev interaction.Event) error {
	if m.phase == PhaseEmpty {
		return nil
	}

	m.pointer = ev.Location
	if m.modulator != nil && m.opts.Inflate.Reference == ReferencePointer {
		m.modulator.SetReference(ev.Location)
	}

	if m.phase == PhaseEntering {
		if ev.Type != interaction.PointerDown || ev.Item < 0 || ev.Item >= len(m.items) {
			return nil
		}
		m.place(m.anim.Cancel())
		m.logger.Info("entry animation interrupted", zap.Float64("progress", m.anim.Progress()))
		m.install()
	}

	return m.dispatcher.Handle(ev)
}

// HitTest returns the topmost item whose circle contains p.
func (m *Menu) HitTest(p geom.Point) (int, bool) {
	for i := len(m.items) - 1; i >= 0; i-- {
		it := m.items[i]
		if geom.Distance(it.Position, p) <= m.opts.ItemSize/2*it.Scale {
			return i, true
		}
	}
	return interaction.NoItem, false
}

// PointerDownAt hit-tests p and dispatches a pointer-down for whatever it
// lands on.
func (m *Menu) PointerDownAt(p geom.Point) error {
	idx, _ := m.HitTest(p)
	return m.HandlePointer(interaction.Down(idx, p))
}

// Close drops every constraint and item.
func (m *Menu) Close() {
	if m.dispatcher != nil {
		m.dispatcher.Cancel()
	}
	m.set.Reset()
	m.items = nil
	m.layout = nil
	m.modulator = nil
	m.anim = nil
	m.phase = PhaseEmpty
}

func (m *Menu) Phase() Phase                 { return m.phase }
func (m *Menu) Items() []*item.Item          { return m.items }
func (m *Menu) Layout() *layout.Layout       { return m.layout }
func (m *Menu) Constraints() *constraint.Set { return m.set }
func (m *Menu) Solver() constraint.Solver    { return m.solver }
func (m *Menu) Options() Options             { return m.opts }
func (m *Menu) Pointer() geom.Point          { return m.pointer }

// State reports the interaction state of item i.
func (m *Menu) State(i int) interaction.State {
	if m.dispatcher == nil {
		return interaction.Idle
	}
	return m.dispatcher.State(i)
}
