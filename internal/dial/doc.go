// Package dial assembles the dial menu from its parts and drives it one
// tick at a time.
//
// A [Menu] moves through three phases:
//
//	Empty --SetItems--> Entering --animation done--> Interactive
//
// SetItems computes the slot layout and starts the entry animation.
// While Entering, ticks only advance the animation. When it completes the
// permanent constraints and inflate rules are installed and pointer events
// start driving drags. A pointer-down on an item during the entry cancels
// the animation and installs everything from the interpolated positions.
//
// Everything happens synchronously inside Tick and HandlePointer; a Menu
// must be driven from a single goroutine.
package dial
