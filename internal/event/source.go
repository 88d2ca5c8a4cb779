// Package event produces the background events consumed by the terminal
// loop alongside key presses.
package event

import (
	"context"
	"sync"
	"time"
)

// Kind represents the type of event emitted by a Source.
type Kind int

const (
	KindTick Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Event is a single timed notification.
type Event struct {
	Kind Kind
	Time time.Time
}

// Source publishes a tick every interval until stopped.
type Source struct {
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewSource starts a source ticking every interval. Non-positive intervals
// fall back to 250ms.
func NewSource(interval time.Duration) *Source {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Source{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	s.wg.Add(1)
	go s.tick()

	go func() {
		s.wg.Wait()
		close(s.events)
	}()

	return s
}

// Events returns the channel ticks are delivered on. It is closed after Stop
// once the ticker goroutine has exited.
func (s *Source) Events() <-chan Event {
	return s.events
}

// Stop cancels the source.
func (s *Source) Stop() {
	s.cancel()
}

// Wait blocks until the ticker goroutine has exited. Call after Stop when a
// clean shutdown is required.
func (s *Source) Wait() {
	s.wg.Wait()
}

func (s *Source) tick() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-ticker.C:
			select {
			case <-s.ctx.Done():
				return
			case s.events <- Event{Kind: KindTick, Time: now}:
			}
		}
	}
}
