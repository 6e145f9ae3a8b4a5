package interaction

import "github.com/san-kum/dialmenu/internal/geom"

type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// NoItem marks an event that did not land on any item.
const NoItem = -1

type Event struct {
	Type     EventType
	Item     int
	Location geom.Point
}

func Down(item int, p geom.Point) Event { return Event{Type: PointerDown, Item: item, Location: p} }
func Move(p geom.Point) Event           { return Event{Type: PointerMove, Item: NoItem, Location: p} }
func Up(p geom.Point) Event             { return Event{Type: PointerUp, Item: NoItem, Location: p} }
