package requestexec

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is the cancellation cause recorded when a newer request
// replaces the one in flight.
var ErrSuperseded = errors.New("superseded by a newer request")

// ErrSessionCancelled is the cancellation cause recorded by Session.Cancel.
var ErrSessionCancelled = errors.New("cancelled by user")

// Session admits at most one generation-class request at a time. Beginning a
// new request cancels the current one (last writer wins) and waits for it to
// settle so two submissions never overlap on the wire.
type Session struct {
	mu      sync.Mutex
	seq     uint64
	current *slot
}

type slot struct {
	id     uint64
	cancel context.CancelCauseFunc
	done   chan struct{}
}

// Begin cancels any predecessor, waits until it has released, and returns a
// context for the new request plus the release func that must be called when
// the request reaches a terminal state. If parent ends while waiting, the
// returned context is already done.
func (s *Session) Begin(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	next := &slot{cancel: cancel, done: make(chan struct{})}

	s.mu.Lock()
	s.seq++
	next.id = s.seq
	prev := s.current
	s.current = next
	s.mu.Unlock()

	if prev != nil {
		prev.cancel(ErrSuperseded)
		select {
		case <-prev.done:
		case <-ctx.Done():
		}
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			cancel(nil)
			s.mu.Lock()
			if s.current != nil && s.current.id == next.id {
				s.current = nil
			}
			s.mu.Unlock()
			// A successor must not start while an older predecessor is still running.
			if prev == nil {
				close(next.done)
				return
			}
			go func() {
				<-prev.done
				close(next.done)
			}()
		})
	}
	return ctx, release
}

// Cancel aborts the request in flight, if any.
func (s *Session) Cancel() {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()
	if cur != nil {
		cur.cancel(ErrSessionCancelled)
	}
}

// Active reports whether a request is in flight.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}
