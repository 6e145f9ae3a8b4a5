// Package constraint models the relations that position dial items.
//
// Two families are permanent once installed:
//
//   - center attachments: item i to the shared center point
//   - neighbour attachments: item i to item i-1, for i in [1, n)
//
// Each records the distance between its endpoints in the rest layout as
// its Length, so the slot arrangement satisfies all of them at once.
//
// On top of those a [Set] carries at most one [Drag] constraint. It pins a
// single item to a movable target while the pointer holds it, and after
// release eases the item onto the nearest slot. A [Solver] turns the set
// into item positions once per tick.
package constraint
