// Package layout places the dial's anchor slots and resolves the slot a
// released item belongs to.
//
// Slots sit on a circle of radius R around the center C. Slot i is at
// angle 2π·i/n measured clockwise from straight up, so slot 0 is always
// directly above the center:
//
//	slot_i = C + R·(sin(2π·i/n), -cos(2π·i/n))
//
// [NearestSlot] performs a linear scan and breaks exact ties in favour of
// the lowest index.
package layout
