// Package viz is the terminal shell around a dial menu.
//
// It supplies the three things the menu needs from a host: a surface the
// items are drawn on ([Canvas], braille dots coloured per cell), pointer
// events (mouse press, motion and release from Bubble Tea) and a frame
// tick. Everything else lives in package dial.
//
// # Key Bindings
//
//	Space - Pause/Resume ticking
//	R     - Rebuild the menu and replay the entry animation
//	L     - Toggle constraint links
//	Tab   - Cycle spring parameter
//	↑/↓   - Tune the selected parameter by 5%
//	?     - Toggle help
//	Q     - Quit
package viz
