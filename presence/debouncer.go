package presence

import (
	"sync"
	"time"
)

const DefaultTypingDebounce = 500 * time.Millisecond

// Debouncer coalesces Schedule calls into one trailing flush per quiet
// window. The latest scheduled value wins. After Cancel nothing is flushed.
type Debouncer[T any] struct {
	mu        sync.Mutex
	wait      time.Duration
	flush     func(T)
	timer     *time.Timer
	value     T
	gen       uint64
	cancelled bool
	inflight  sync.WaitGroup
}

func NewDebouncer[T any](wait time.Duration, flush func(T)) *Debouncer[T] {
	if wait <= 0 {
		wait = DefaultTypingDebounce
	}
	return &Debouncer[T]{wait: wait, flush: flush}
}

func (d *Debouncer[T]) Schedule(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancelled {
		return
	}
	d.value = value
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// a newer Schedule or a Cancel superseded this timer
	if d.cancelled || gen != d.gen {
		d.mu.Unlock()
		return
	}
	value := d.value
	d.timer = nil
	d.inflight.Add(1)
	d.mu.Unlock()

	defer d.inflight.Done()
	d.flush(value)
}

// Pending reports whether a flush is waiting for its window to elapse.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops any pending flush, disables the debouncer and waits for a
// flush that is already running.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	d.cancelled = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.inflight.Wait()
}
