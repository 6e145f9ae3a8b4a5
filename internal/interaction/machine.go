package interaction

type State int

const (
	Idle State = iota
	Dragging
	Releasing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Releasing:
		return "releasing"
	}
	return "unknown"
}

// Transition records one state change of one item.
type Transition struct {
	Item     int
	From, To State
	Cause    EventType
}

// Machine is the drag lifecycle of a single item.
type Machine struct {
	item  int
	state State
}

func NewMachine(item int) *Machine {
	return &Machine{item: item, state: Idle}
}

func (m *Machine) Item() int    { return m.item }
func (m *Machine) State() State { return m.state }

func (m *Machine) begin(cause EventType, emit func(Transition)) {
	if m.state == Dragging {
		return
	}
	emit(Transition{Item: m.item, From: m.state, To: Dragging, Cause: cause})
	m.state = Dragging
}

// release walks Dragging -> Releasing -> Idle.
func (m *Machine) release(cause EventType, emit func(Transition)) {
	if m.state != Dragging {
		return
	}
	emit(Transition{Item: m.item, From: Dragging, To: Releasing, Cause: cause})
	m.state = Releasing
	emit(Transition{Item: m.item, From: Releasing, To: Idle, Cause: cause})
	m.state = Idle
}
