package timer

import (
	"sync"
	"time"
)

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
	Clock        Clock
}

// Timer owns a countdown State and the one ticker that drives it.
//
// A ticker goroutine exists exactly while the state is running with time
// left. Every transition reconciles that rule, so pausing, switching mode,
// resetting, editing settings, expiring and closing each tear the ticker
// down, and starting creates a fresh one. Ticks from a torn-down ticker are
// discarded by generation.
type Timer struct {
	mu         sync.Mutex
	settings   Settings
	state      State
	options    Config
	events     []chan Event
	stopCh     chan struct{}
	generation uint64
	closed     bool
	wg         sync.WaitGroup
}

// New creates a stopped Timer in work mode.
func New(settings Settings, options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = RealClock{}
	}
	settings = settings.Clamp()

	return &Timer{
		settings: settings,
		state:    NewState(settings),
		options:  options,
	}
}

// State returns the current snapshot.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Settings returns the active settings.
func (t *Timer) Settings() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// Ticking reports whether a ticker is currently held.
func (t *Timer) Ticking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopCh != nil
}

// Subscribe registers a new observer channel.
func (t *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		close(ch)
		return ch
	}
	t.events = append(t.events, ch)
	return ch
}

// SwitchMode loads the full duration of mode and stops the countdown.
func (t *Timer) SwitchMode(mode Mode) {
	t.transition(func(state State) State {
		return state.SwitchMode(t.settings, mode)
	})
}

// Toggle starts a stopped countdown or pauses a running one.
func (t *Timer) Toggle() {
	t.transition(State.Toggle)
}

// Start resumes the countdown if it is stopped.
func (t *Timer) Start() {
	t.transition(func(state State) State {
		if state.Running {
			return state
		}
		return state.Toggle()
	})
}

// Pause stops the countdown if it is running.
func (t *Timer) Pause() {
	t.transition(func(state State) State {
		if !state.Running {
			return state
		}
		return state.Toggle()
	})
}

// Reset reloads the full duration of the current mode.
func (t *Timer) Reset() {
	t.transition(func(state State) State {
		return state.Reset(t.settings)
	})
}

// UpdateSettings clamps and applies new durations. It always interrupts
// an active countdown.
func (t *Timer) UpdateSettings(settings Settings) {
	settings = settings.Clamp()
	t.transition(func(state State) State {
		previous := t.settings
		t.settings = settings
		return state.ApplySettings(previous, settings)
	})
}

// Close releases the ticker and closes observers. The Timer is unusable afterwards.
func (t *Timer) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.stopTickerLocked()
	t.state.Running = false
	events := t.events
	t.events = nil
	t.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	t.wg.Wait()
}

func (t *Timer) transition(update func(State) State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	t.state = update(t.state)
	t.reconcileLocked()
	t.emitLocked(Event{
		Type:  EventStateChange,
		State: t.state,
		At:    time.Now(),
	})
}

func (t *Timer) reconcileLocked() {
	needed := t.state.Running && t.state.RemainingSeconds > 0
	switch {
	case needed && t.stopCh == nil:
		t.startTickerLocked()
	case !needed && t.stopCh != nil:
		t.stopTickerLocked()
	}
}

func (t *Timer) startTickerLocked() {
	t.generation++
	stopCh := make(chan struct{})
	t.stopCh = stopCh
	ticker := t.options.Clock.NewTicker(t.options.TickInterval)

	t.wg.Add(1)
	go t.run(ticker, stopCh, t.generation)
}

func (t *Timer) stopTickerLocked() {
	if t.stopCh == nil {
		return
	}
	close(t.stopCh)
	t.stopCh = nil
}

func (t *Timer) run(ticker Ticker, stopCh <-chan struct{}, generation uint64) {
	defer t.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C():
			t.tick(tickTime, generation)
		}
	}
}

func (t *Timer) tick(tickTime time.Time, generation uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.stopCh == nil || generation != t.generation {
		return
	}

	t.state = t.state.Tick()
	if t.state.Expired() {
		t.stopTickerLocked()
		t.emitLocked(Event{
			Type:  EventExpired,
			State: t.state,
			At:    tickTime,
		})
		return
	}
	t.emitLocked(Event{
		Type:  EventTick,
		State: t.state,
		At:    tickTime,
	})
}

func (t *Timer) emitLocked(event Event) {
	for _, ch := range t.events {
		select {
		case ch <- event:
		default:
		}
	}
}
