// Package connectivity tracks the platform's online/offline state and
// publishes it as a process-wide advisory flag. The flag is informational
// only: the request path does not consult it, since failed calls degrade
// to placeholder data regardless.
package connectivity

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// State represents the monitor's view of network reachability.
type State int

const (
	StateOffline State = iota
	StateOnline
)

func (s State) String() string {
	switch s {
	case StateOffline:
		return "offline"
	case StateOnline:
		return "online"
	default:
		return "unknown"
	}
}

// EventSource supplies platform connectivity events. Implementations wrap
// whatever the runtime offers (an HTTP prober, OS notifications, a test
// harness) so the monitor stays testable without a real network.
type EventSource interface {
	// Online reports the platform's current connectivity.
	Online() bool

	// Listen delivers connectivity observations to fn until ctx is done.
	// Observations may repeat the current state; deduplication is the
	// monitor's job.
	Listen(ctx context.Context, fn func(online bool))
}

// =============================================================================
// Monitor
// =============================================================================

// Monitor is a two-state machine mirroring platform connectivity. It is the
// sole writer of the published flag; any number of goroutines may read it.
type Monitor struct {
	mu sync.Mutex

	source EventSource
	state  State
	flag   atomic.Bool
	log    zerolog.Logger

	subs    map[int]func(online bool)
	nextSub int
}

// NewMonitor creates a monitor seeded with the source's current state.
func NewMonitor(source EventSource, log zerolog.Logger) *Monitor {
	m := &Monitor{
		source: source,
		log:    log,
		subs:   make(map[int]func(online bool)),
	}

	m.state = StateOffline
	if source.Online() {
		m.state = StateOnline
	}
	m.flag.Store(m.state == StateOnline)

	return m
}

// Start consumes events from the source until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	go m.source.Listen(ctx, m.handleEvent)
}

// HandleOnline records a platform "online" event.
func (m *Monitor) HandleOnline() { m.handleEvent(true) }

// HandleOffline records a platform "offline" event.
func (m *Monitor) HandleOffline() { m.handleEvent(false) }

func (m *Monitor) handleEvent(online bool) {
	target := StateOffline
	if online {
		target = StateOnline
	}

	m.mu.Lock()

	// Re-entering the current state is a no-op.
	if m.state == target {
		m.mu.Unlock()
		return
	}

	from := m.state
	m.state = target
	m.flag.Store(online)

	subs := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	m.log.Debug().
		Stringer("from", from).
		Stringer("to", target).
		Msg("connectivity changed")

	for _, fn := range subs {
		fn(online)
	}
}

// Online reports the last published connectivity flag.
func (m *Monitor) Online() bool {
	return m.flag.Load()
}

// State returns the current state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to run on every transition. The returned func
// removes the subscription.
func (m *Monitor) Subscribe(fn func(online bool)) (cancel func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}
