// Package entry animates items from the dial center out to their slots
// before the interactive phase starts.
package entry

import (
	"fmt"
	"math"

	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseOutBack overshoots slightly before settling, like a dial popping open.
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

var easings = map[string]Easing{
	"linear":         Linear,
	"ease-out-cubic": EaseOutCubic,
	"ease-out-back":  EaseOutBack,
}

// EasingByName resolves a configured easing; empty selects ease-out-cubic.
func EasingByName(name string) (Easing, error) {
	if name == "" {
		return EaseOutCubic, nil
	}
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("entry: unknown easing %q: %w", name, dynamo.ErrConfiguration)
	}
	return e, nil
}

// Animation is a one-shot interpolation from a common origin to per-item
// targets. It is not restartable.
type Animation struct {
	from     geom.Point
	to       []geom.Point
	duration float64
	easing   Easing
	elapsed  float64
	done     bool
	canceled bool
	current  []geom.Point
}

// New prepares an animation. A non-positive duration completes on the
// first Advance.
func New(from geom.Point, to []geom.Point, duration float64, easing Easing) *Animation {
	if easing == nil {
		easing = EaseOutCubic
	}
	a := &Animation{
		from:     from,
		to:       append([]geom.Point(nil), to...),
		duration: duration,
		easing:   easing,
		current:  make([]geom.Point, len(to)),
	}
	for i := range a.current {
		a.current[i] = from
	}
	return a
}

// Advance moves the animation forward by dt and returns the interpolated
// positions and whether the animation has finished.
func (a *Animation) Advance(dt float64) ([]geom.Point, bool) {
	if a.done {
		return a.current, true
	}

	a.elapsed += dt
	t := 1.0
	if a.duration > 0 {
		t = math.Min(a.elapsed/a.duration, 1)
	}
	k := a.easing(t)
	for i, p := range a.to {
		a.current[i] = geom.Lerp(a.from, p, k)
	}
	if t >= 1 {
		// land exactly on the targets regardless of the easing's rounding
		copy(a.current, a.to)
		a.done = true
	}
	return a.current, a.done
}

// Cancel stops the animation where it is. The returned positions are the
// starting state for whatever takes over.
func (a *Animation) Cancel() []geom.Point {
	if !a.done {
		a.done = true
		a.canceled = true
	}
	return a.current
}

func (a *Animation) Done() bool     { return a.done }
func (a *Animation) Canceled() bool { return a.canceled }

// Progress is elapsed time over duration, clamped to [0, 1].
func (a *Animation) Progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	return math.Min(a.elapsed/a.duration, 1)
}
