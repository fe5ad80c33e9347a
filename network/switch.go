package network

import (
	"context"
	"fmt"

	"github.com/luca-patrignani/token-ring/message"
)

// Switch is an in-memory network connecting n endpoints.
type Switch struct {
	boxes []*mailbox
	retry RetryPolicy
}

type SwitchOption func(Switch) Switch

// WithSwitchRetry replaces DefaultRetryPolicy.
func WithSwitchRetry(policy RetryPolicy) SwitchOption {
	return func(s Switch) Switch {
		s.retry = policy
		return s
	}
}

func NewSwitch(n int, opts ...SwitchOption) *Switch {
	s := Switch{
		boxes: make([]*mailbox, n),
		retry: DefaultRetryPolicy,
	}
	for _, opt := range opts {
		s = opt(s)
	}
	for i := range s.boxes {
		s.boxes[i] = newMailbox()
	}
	return &s
}

// Size returns the number of endpoints.
func (s *Switch) Size() int {
	return len(s.boxes)
}

// Endpoint returns the endpoint of the given rank.
func (s *Switch) Endpoint(rank int) *LocalEndpoint {
	return &LocalEndpoint{rank: rank, sw: s}
}

// LocalEndpoint is the attachment of one rank to a Switch.
type LocalEndpoint struct {
	rank int
	sw   *Switch
}

func (e *LocalEndpoint) Rank() int {
	return e.rank
}

func (e *LocalEndpoint) Send(ctx context.Context, to int, msg message.Message) error {
	if to < 0 || to >= len(e.sw.boxes) {
		return fmt.Errorf("%w: rank %d out of range", ErrDeliveryFailure, to)
	}
	box := e.sw.boxes[to]
	if err := e.sw.retry.Do(ctx, func() error { return box.put(msg) }); err != nil {
		return fmt.Errorf("send %s to %d: %w", msg.Kind, to, err)
	}
	return nil
}

func (e *LocalEndpoint) Receive(ctx context.Context) (message.Message, error) {
	return e.sw.boxes[e.rank].take(ctx)
}

// Close detaches the endpoint: pending messages are dropped and further
// sends to this rank fail.
func (e *LocalEndpoint) Close() error {
	e.sw.boxes[e.rank].close()
	return nil
}
