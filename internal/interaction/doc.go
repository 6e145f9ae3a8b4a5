// Package interaction turns pointer events into drag constraint changes.
//
// Every item owns a [Machine] with three states:
//
//	Idle --down--> Dragging --move--> Dragging
//	Dragging --up--> Releasing --> Idle
//
// Releasing is transient and collapses to Idle in the same call. A
// [Dispatcher] maps item identity to its machine and enforces that at most
// one item is Dragging: a pointer-down on another item first forces the
// current one through Releasing to Idle and drops its constraint.
//
// Move and up events that carry no item are routed to the item being
// dragged, as a pan recogniser would capture the pointer. Events for
// unknown items and redundant releases are ignored.
package interaction
