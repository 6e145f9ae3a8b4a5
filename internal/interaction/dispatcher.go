package interaction

import (
	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/layout"
	"go.uber.org/zap"
)

// Dispatcher routes pointer events to per-item machines and keeps the
// constraint set's drag slot in step with them.
type Dispatcher struct {
	machines map[int]*Machine
	set      *constraint.Set
	slots    []geom.Point
	active   int
	logger   *zap.Logger

	// OnTransition, if set, observes every state change in order.
	OnTransition func(Transition)
}

func NewDispatcher(n int, set *constraint.Set, slots []geom.Point, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		machines: make(map[int]*Machine, n),
		set:      set,
		slots:    slots,
		active:   NoItem,
		logger:   logger,
	}
	for i := 0; i < n; i++ {
		d.machines[i] = NewMachine(i)
	}
	return d
}

// Active returns the item currently Dragging, or NoItem.
func (d *Dispatcher) Active() int { return d.active }

// State returns the state of item i; unknown items report Idle.
func (d *Dispatcher) State(i int) State {
	if m, ok := d.machines[i]; ok {
		return m.State()
	}
	return Idle
}

func (d *Dispatcher) emit(t Transition) {
	d.logger.Debug("interaction transition",
		zap.Int("item", t.Item),
		zap.Stringer("from", t.From),
		zap.Stringer("to", t.To),
		zap.Stringer("cause", t.Cause))
	if d.OnTransition != nil {
		d.OnTransition(t)
	}
}

// Handle applies one pointer event. The only error is a failed nearest
// slot resolution on release.
func (d *Dispatcher) Handle(ev Event) error {
	switch ev.Type {
	case PointerDown:
		d.down(ev)
	case PointerMove:
		d.move(ev)
	case PointerUp:
		return d.up(ev)
	}
	return nil
}

func (d *Dispatcher) down(ev Event) {
	m, ok := d.machines[ev.Item]
	if !ok {
		return
	}

	if d.active != NoItem && d.active != ev.Item {
		d.preempt(ev.Type)
	}

	if prev := d.set.BeginDrag(ev.Item, ev.Location); prev != nil && prev.Item != ev.Item {
		d.logger.Debug("discarded previous drag constraint",
			zap.Int("item", prev.Item),
			zap.Stringer("phase", prev.Phase))
	}
	m.begin(ev.Type, d.emit)
	d.active = ev.Item

	d.logger.Info("drag started",
		zap.Int("item", ev.Item),
		zap.Float64("x", ev.Location.X),
		zap.Float64("y", ev.Location.Y))
}

// captured resolves which machine a move or up event belongs to.
func (d *Dispatcher) captured(ev Event) (*Machine, bool) {
	if d.active == NoItem {
		return nil, false
	}
	if ev.Item != NoItem && ev.Item != d.active {
		return nil, false
	}
	return d.machines[d.active], true
}

func (d *Dispatcher) move(ev Event) {
	if _, ok := d.captured(ev); !ok {
		return
	}
	d.set.Retarget(ev.Location)
}

func (d *Dispatcher) up(ev Event) error {
	m, ok := d.captured(ev)
	if !ok {
		return nil
	}

	idx, err := layout.NearestSlotIndex(ev.Location, d.slots)
	if err != nil {
		return err
	}
	slot := d.slots[idx]
	d.set.Release(idx, slot)
	m.release(ev.Type, d.emit)
	d.active = NoItem

	d.logger.Info("drag released",
		zap.Int("item", m.Item()),
		zap.Int("slot", idx),
		zap.Float64("slot_x", slot.X),
		zap.Float64("slot_y", slot.Y))
	return nil
}

// preempt forces the dragging item to Idle and removes its constraint so
// permanent constraints govern it again.
func (d *Dispatcher) preempt(cause EventType) {
	m := d.machines[d.active]
	d.set.ClearDrag()
	m.release(cause, d.emit)
	d.logger.Info("drag preempted", zap.Int("item", m.Item()))
	d.active = NoItem
}

// Cancel ends any drag in progress without snapping.
func (d *Dispatcher) Cancel() {
	if d.active != NoItem {
		d.preempt(PointerDown)
	}
}
