// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package event

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the number of events the bus buffers before blocking
// senders.
const DefaultCapacity = 64

var (
	// ErrReceiverGone is returned by Send once the consumer closed the bus.
	ErrReceiverGone = errors.New("event receiver is gone")
	// ErrSenderReleased is returned when sending through a released Sender.
	ErrSenderReleased = errors.New("event sender is released")
)

// Bus is a bounded multi-producer / single-consumer FIFO.
//
// Producers obtain a *Sender each and release it when done. Once every sender
// has been released, Recv drains what is left in the buffer and then reports
// that the stream has ended. The consumer calls Close when it stops reading,
// which fails every pending and future blocking Send.
//
// The data channel itself is never closed, so a late send can never panic.
type Bus struct {
	ch chan Event

	mu      sync.Mutex
	senders int
	drained chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// NewBus creates a bus buffering up to capacity events. A non-positive
// capacity falls back to DefaultCapacity.
func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Bus{
		ch:      make(chan Event, capacity),
		drained: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Sender registers a new producer handle. A sender requested after every
// previous one was released is born released: the stream already ended.
func (b *Bus) Sender() *Sender {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &Sender{bus: b}
	if b.isDrained() {
		s.released.Store(true)
		return s
	}

	b.senders++
	return s
}

// Recv blocks until an event is available. It returns false when all
// senders are released and the buffer is empty, when the bus was closed, or
// when ctx is done.
func (b *Bus) Recv(ctx context.Context) (Event, bool) {
	select {
	case ev := <-b.ch:
		return ev, true
	case <-b.drained:
		select {
		case ev := <-b.ch:
			return ev, true
		default:
			return nil, false
		}
	case <-b.done:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// Close marks the receiver as gone. Blocked and future Sends fail with
// ErrReceiverGone, TrySend drops. Safe to call more than once.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}

// Len reports how many events are buffered.
func (b *Bus) Len() int {
	return len(b.ch)
}

// Cap reports the buffer capacity.
func (b *Bus) Cap() int {
	return cap(b.ch)
}

func (b *Bus) release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.senders--
	if b.senders == 0 {
		close(b.drained)
	}
}

func (b *Bus) isDrained() bool {
	select {
	case <-b.drained:
		return true
	default:
		return false
	}
}

// Sender is one producer's handle onto a Bus. Events sent through a single
// Sender are delivered in send order. A Sender is safe for concurrent use.
type Sender struct {
	bus      *Bus
	released atomic.Bool
}

// Clone registers another producer on the same bus.
func (s *Sender) Clone() *Sender {
	return s.bus.Sender()
}

// Send enqueues ev, blocking while the buffer is full. It fails with
// ErrReceiverGone once the consumer closed the bus, or with ctx.Err().
func (s *Sender) Send(ctx context.Context, ev Event) error {
	if s.released.Load() {
		return ErrSenderReleased
	}

	select {
	case <-s.bus.done:
		return ErrReceiverGone
	default:
	}

	select {
	case s.bus.ch <- ev:
		return nil
	case <-s.bus.done:
		return ErrReceiverGone
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend enqueues ev only if there is room right now. It never blocks and
// reports whether the event was accepted; a full buffer drops ev.
func (s *Sender) TrySend(ev Event) bool {
	if s.released.Load() {
		return false
	}

	select {
	case <-s.bus.done:
		return false
	default:
	}

	select {
	case s.bus.ch <- ev:
		return true
	default:
		return false
	}
}

// Release drops this producer. When the last producer is released the
// consumer sees the end of the stream. Releasing twice is a no-op.
func (s *Sender) Release() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}
	s.bus.release()
}
