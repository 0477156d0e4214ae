package reveal

import "sync"

// Viewport is an in-process Observer. Callers report intersection ratios per
// region and every live subscriber of that region is notified.
type Viewport struct {
	mu   sync.Mutex
	next uint64
	subs map[string]map[uint64]func(float64)
}

func NewViewport() *Viewport {
	return &Viewport{subs: make(map[string]map[uint64]func(float64))}
}

func (v *Viewport) Subscribe(region string, onChange func(ratio float64)) Subscription {
	v.mu.Lock()
	id := v.next
	v.next++
	if v.subs[region] == nil {
		v.subs[region] = make(map[uint64]func(float64))
	}
	v.subs[region][id] = onChange
	v.mu.Unlock()

	return CancelFunc(func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs[region], id)
		if len(v.subs[region]) == 0 {
			delete(v.subs, region)
		}
	})
}

// Report delivers ratio to the subscribers of region and returns how many
// were notified. Callbacks run outside the lock.
func (v *Viewport) Report(region string, ratio float64) int {
	v.mu.Lock()
	callbacks := make([]func(float64), 0, len(v.subs[region]))
	for _, cb := range v.subs[region] {
		callbacks = append(callbacks, cb)
	}
	v.mu.Unlock()

	for _, cb := range callbacks {
		cb(ratio)
	}
	return len(callbacks)
}

// Active returns the number of live subscriptions across all regions.
func (v *Viewport) Active() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, m := range v.subs {
		n += len(m)
	}
	return n
}
