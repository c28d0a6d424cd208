package timer

import "time"

//go:generate mockgen -source=clock.go -destination=../mocks/timer/mock_clock.go -package=mock_timer

// Clock creates tickers. It exists so tests can deliver ticks by hand.
type Clock interface {
	NewTicker(interval time.Duration) Ticker
}

// Ticker is the subset of time.Ticker the countdown needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// RealClock is backed by time.NewTicker.
type RealClock struct{}

func (RealClock) NewTicker(interval time.Duration) Ticker {
	return realTicker{ticker: time.NewTicker(interval)}
}

type realTicker struct {
	ticker *time.Ticker
}

func (t realTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t realTicker) Stop() {
	t.ticker.Stop()
}
