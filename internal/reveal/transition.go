package reveal

import (
	"fmt"
	"strings"
	"time"
)

// Easing is a CSS cubic-bezier timing function.
type Easing struct {
	Name           string
	X1, Y1, X2, Y2 float64
}

var (
	Linear  = Easing{Name: "ease-linear", X1: 0, Y1: 0, X2: 1, Y2: 1}
	EaseOut = Easing{Name: "ease-out", X1: 0, Y1: 0, X2: 0.58, Y2: 1}
)

// At returns eased progress for linear progress p, clamped to [0, 1].
func (e Easing) At(p float64) float64 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	}
	// x(t) is monotonic on [0, 1] for valid CSS curves, so bisection converges.
	lo, hi := 0.0, 1.0
	t := p
	for i := 0; i < 40; i++ {
		t = (lo + hi) / 2
		if bezier(e.X1, e.X2, t) < p {
			lo = t
		} else {
			hi = t
		}
	}
	return bezier(e.Y1, e.Y2, t)
}

func bezier(p1, p2, t float64) float64 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

// Style is the interpolated visual state of a section.
type Style struct {
	Opacity    float64
	TranslateY float64
}

// Transition describes the animation between Hidden and Visible.
type Transition struct {
	Duration time.Duration
	Easing   Easing
	// Offset is the downward shift of a hidden section, in Tailwind spacing units.
	Offset int
}

// DefaultTransition fades over one second with ease-out, rising 10 units.
var DefaultTransition = Transition{
	Duration: time.Second,
	Easing:   EaseOut,
	Offset:   10,
}

// Target is the resting style for s.
func (t Transition) Target(s State) Style {
	if s == Visible {
		return Style{Opacity: 1, TranslateY: 0}
	}
	return Style{Opacity: 0, TranslateY: float64(t.Offset)}
}

// Frame returns the style elapsed into a transition that started at from and
// heads to the resting style of to.
func (t Transition) Frame(from Style, to State, elapsed time.Duration) Style {
	target := t.Target(to)
	p := 1.0
	if t.Duration > 0 {
		p = float64(elapsed) / float64(t.Duration)
	}
	e := t.Easing.At(p)
	return Style{
		Opacity:    from.Opacity + (target.Opacity-from.Opacity)*e,
		TranslateY: from.TranslateY + (target.TranslateY-from.TranslateY)*e,
	}
}

// StateClasses returns the Tailwind utilities for the resting style of s.
func (t Transition) StateClasses(s State) string {
	if s == Visible {
		return "opacity-100 translate-y-0"
	}
	return fmt.Sprintf("opacity-0 translate-y-%d", t.Offset)
}

// Classes returns extra followed by the transition and state utilities.
func (t Transition) Classes(extra string, s State) string {
	parts := make([]string, 0, 5)
	if extra = strings.TrimSpace(extra); extra != "" {
		parts = append(parts, extra)
	}
	parts = append(parts,
		"transition",
		fmt.Sprintf("duration-%d", t.Duration.Milliseconds()),
		t.Easing.Name,
		t.StateClasses(s),
	)
	return strings.Join(parts, " ")
}
