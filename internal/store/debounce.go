package store

import (
	"sync"
	"time"

	"github.com/samber/lo"
)

// DefaultDebounce is the write-back delay used for state saves
const DefaultDebounce = 200 * time.Millisecond

// Debouncer coalesces rapid updates into a single write of the latest value.
// At most one write is pending at any time; writes never run concurrently.
type Debouncer[T any] struct {
	delay   time.Duration
	write   func(T) error
	OnError func(error)

	writeMu sync.Mutex // held for the duration of a write

	mu      sync.Mutex
	value   T
	pending bool
	fire    func()
	cancel  func()
}

// NewDebouncer returns a debouncer that calls write delay after the last Trigger
func NewDebouncer[T any](delay time.Duration, write func(T) error) *Debouncer[T] {
	d := &Debouncer[T]{delay: delay, write: write}
	d.arm()
	return d
}

// arm installs a fresh lo debounce; a cancelled one never fires again.
// Callers hold d.mu except during construction.
func (d *Debouncer[T]) arm() {
	d.fire, d.cancel = lo.NewDebounce(d.delay, func() {
		if err := d.flush(); err != nil && d.OnError != nil {
			d.OnError(err)
		}
	})
}

// Trigger replaces the pending value and restarts the delay
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.value = v
	d.pending = true
	d.fire()
}

// Pending reports whether a write is scheduled
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush writes the pending value now, if there is one
func (d *Debouncer[T]) Flush() error {
	d.mu.Lock()
	d.cancel()
	d.arm()
	d.mu.Unlock()
	return d.flush()
}

// Stop discards the pending value without writing it
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancel()
	d.arm()
	var zero T
	d.value = zero
	d.pending = false
}

func (d *Debouncer[T]) flush() error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return nil
	}
	v := d.value
	var zero T
	d.value = zero
	d.pending = false
	d.mu.Unlock()

	return d.write(v)
}
