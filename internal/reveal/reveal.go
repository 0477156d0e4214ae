// Package reveal models sections that fade and slide into place whenever
// they scroll into the viewport, and fade back out when they leave.
//
// A Section owns its visibility state and a single observer subscription.
// The state starts Hidden at mount and only the observer callback changes it,
// so the transition replays on every entry and exit.
package reveal

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/a-h/templ"
)

// State is the visual state of a section.
type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Subscription is a live registration with an Observer.
// Cancel must be safe to call more than once.
type Subscription interface {
	Cancel()
}

// Observer reports how much of a region is inside the viewport.
// onChange receives the intersection ratio in [0, 1].
type Observer interface {
	Subscribe(region string, onChange func(ratio float64)) Subscription
}

// CancelFunc returns a Subscription that runs f on the first Cancel only.
func CancelFunc(f func()) Subscription {
	return &onceSubscription{f: f}
}

type onceSubscription struct {
	once sync.Once
	f    func()
}

func (s *onceSubscription) Cancel() {
	s.once.Do(func() {
		if s.f != nil {
			s.f()
		}
	})
}

// Section wraps content that is revealed on viewport entry.
type Section struct {
	// Region identifies the wrapped element; it is rendered as the element id.
	Region string
	// Class is applied to the container regardless of state.
	Class      string
	Transition Transition

	mu    sync.Mutex
	state State
	sub   Subscription
	gen   uint64
}

// NewSection returns an unmounted, hidden section using DefaultTransition.
func NewSection(region, class string) *Section {
	return &Section{
		Region:     region,
		Class:      class,
		Transition: DefaultTransition,
	}
}

// Mount resets the section to Hidden and subscribes it to obs.
// A nil observer leaves the section permanently hidden.
// Mounting an already mounted section releases the previous subscription first.
func (s *Section) Mount(obs Observer) {
	s.Unmount()

	s.mu.Lock()
	s.state = Hidden
	gen := s.gen
	s.mu.Unlock()

	if obs == nil {
		return
	}

	sub := obs.Subscribe(s.Region, func(ratio float64) {
		s.observe(gen, ratio)
	})

	s.mu.Lock()
	if s.gen != gen {
		// Unmounted while subscribing.
		s.mu.Unlock()
		if sub != nil {
			sub.Cancel()
		}
		return
	}
	s.sub = sub
	s.mu.Unlock()
}

// Unmount cancels the observer subscription. Only the first call after a
// Mount reaches the subscription; later calls do nothing.
func (s *Section) Unmount() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.gen++
	s.state = Hidden
	s.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

func (s *Section) observe(gen uint64, ratio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	if ratio > 0 {
		s.state = Visible
	} else {
		s.state = Hidden
	}
}

// State reports the current visual state.
func (s *Section) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mounted reports whether the section holds a live subscription.
func (s *Section) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub != nil
}

// Classes returns the container class list for the current state.
func (s *Section) Classes() string {
	return s.Transition.Classes(s.Class, s.State())
}

// Component renders child inside the section container in its current state.
// The data attributes carry both state class sets so the browser script can
// toggle them without knowing the transition.
func (s *Section) Component(child templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div id="%s" class="%s" data-reveal data-reveal-hidden="%s" data-reveal-visible="%s">`,
			template.HTMLEscapeString(s.Region),
			template.HTMLEscapeString(s.Classes()),
			template.HTMLEscapeString(s.Transition.StateClasses(Hidden)),
			template.HTMLEscapeString(s.Transition.StateClasses(Visible)),
		)
		if err != nil {
			return err
		}
		if child != nil {
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, "</div>")
		return err
	})
}
