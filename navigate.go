package scenickit

import (
	"sync"
	"sync/atomic"
)

// Navigation is one deferred redirect command. A forced logout enqueues one
// instead of navigating synchronously, so the request that triggered the
// logout finishes its own error handling first.
type Navigation struct {
	// Target is the destination path, e.g. "/login?expired=true".
	Target string
	// Reason is the logout reason that produced the redirect, when any.
	Reason string
}

// Navigator executes navigation commands for the embedding application.
type Navigator interface {
	Navigate(n Navigation)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(n Navigation)

func (f NavigatorFunc) Navigate(n Navigation) { f(n) }

// NoOpNavigator ignores navigation commands.
type NoOpNavigator struct{}

func (NoOpNavigator) Navigate(Navigation) {}

// Locator resolves the application page the user is currently on.
type Locator interface {
	CurrentPath() string
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func() string

func (f LocatorFunc) CurrentPath() string { return f() }

// Notifier surfaces user-facing notices. Severity is "warn" or "error".
type Notifier interface {
	Notify(severity, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(severity, message string)

func (f NotifierFunc) Notify(severity, message string) { f(severity, message) }

// NavigationConfig controls the deferred-navigation dispatcher. Scheduling
// never blocks; commands beyond the buffer are dropped and counted.
type NavigationConfig struct {
	BufferSize int
}

// navDispatcher decouples redirect scheduling from redirect execution. Only
// the first command after a logout matters; later duplicates from concurrent
// failing requests may be dropped under backpressure.
type navDispatcher struct {
	nav       Navigator
	ch        chan Navigation
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func newNavDispatcher(cfg NavigationConfig, nav Navigator) *navDispatcher {
	if nav == nil {
		nav = NoOpNavigator{}
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}

	d := &navDispatcher{
		nav:  nav,
		ch:   make(chan Navigation, cfg.BufferSize),
		done: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *navDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case n := <-d.ch:
			d.nav.Navigate(n)
		case <-d.done:
			for {
				select {
				case n := <-d.ch:
					d.nav.Navigate(n)
				default:
					return
				}
			}
		}
	}
}

func (d *navDispatcher) Schedule(n Navigation) {
	if d == nil || d.closed.Load() {
		return
	}
	select {
	case d.ch <- n:
	case <-d.done:
	default:
		d.dropped.Add(1)
	}
}

func (d *navDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

func (d *navDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
