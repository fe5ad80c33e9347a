package network

import (
	"context"
	"errors"
	"sync"

	"github.com/luca-patrignani/token-ring/message"
)

// ErrClosed is returned by a closed endpoint.
var ErrClosed = errors.New("endpoint closed")

// mailbox is an unbounded FIFO queue with a blocking, cancellable take.
type mailbox struct {
	mu     sync.Mutex
	queue  []message.Message
	closed bool
	notify chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{notify: make(chan struct{}, 1)}
}

func (m *mailbox) put(msg message.Message) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.queue = append(m.queue, msg)
	m.mu.Unlock()
	m.wake()
	return nil
}

func (m *mailbox) take(ctx context.Context) (message.Message, error) {
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			msg := m.queue[0]
			m.queue[0] = message.Message{}
			m.queue = m.queue[1:]
			m.mu.Unlock()
			return msg, nil
		}
		closed := m.closed
		m.mu.Unlock()
		if closed {
			return message.Message{}, ErrClosed
		}
		select {
		case <-ctx.Done():
			return message.Message{}, ctx.Err()
		case <-m.notify:
		}
	}
}

// close drops pending messages and refuses new ones.
func (m *mailbox) close() {
	m.mu.Lock()
	m.closed = true
	m.queue = nil
	m.mu.Unlock()
	m.wake()
}

func (m *mailbox) wake() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}
