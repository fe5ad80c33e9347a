package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/luca-patrignani/token-ring/identity"
	"github.com/luca-patrignani/token-ring/ledger"
	"github.com/luca-patrignani/token-ring/message"
	"github.com/luca-patrignani/token-ring/network"
	"github.com/luca-patrignani/token-ring/ring"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type delivery struct {
	to  int
	msg message.Message
}

// scriptedEndpoint records every send and fails the ones to unreachable
// ranks.
type scriptedEndpoint struct {
	mu          sync.Mutex
	rank        int
	sent        []delivery
	unreachable map[int]bool
	inbox       chan message.Message
	closed      bool
}

func newScriptedEndpoint(rank int) *scriptedEndpoint {
	return &scriptedEndpoint{
		rank:        rank,
		unreachable: make(map[int]bool),
		inbox:       make(chan message.Message, 64),
	}
}

func (e *scriptedEndpoint) Rank() int {
	return e.rank
}

func (e *scriptedEndpoint) Send(ctx context.Context, to int, msg message.Message) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.unreachable[to] {
		return fmt.Errorf("send to %d: %w", to, network.ErrDeliveryFailure)
	}
	e.sent = append(e.sent, delivery{to: to, msg: msg})
	return nil
}

func (e *scriptedEndpoint) Receive(ctx context.Context) (message.Message, error) {
	select {
	case msg := <-e.inbox:
		return msg, nil
	case <-ctx.Done():
		return message.Message{}, ctx.Err()
	}
}

func (e *scriptedEndpoint) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// take returns the sends done so far and forgets them.
func (e *scriptedEndpoint) take() []delivery {
	e.mu.Lock()
	defer e.mu.Unlock()
	sent := e.sent
	e.sent = nil
	return sent
}

func (e *scriptedEndpoint) down(ranks ...int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range ranks {
		e.unreachable[r] = true
	}
}

type fixedDecrementer int

func (d fixedDecrementer) Draw(max int) int {
	return min(int(d), max-1)
}

// testIdentity returns identities ordered like k.
func testIdentity(k int) identity.Identity {
	return identity.Identity(fmt.Sprintf("%064x", k))
}

// testDirectory builds a ring where the actor with index i has identity
// ranks[i].
func testDirectory(ranks ...int) *ring.Directory {
	members := make([]ring.Member, len(ranks))
	for i, k := range ranks {
		members[i] = ring.Member{Identity: testIdentity(k), Address: fmt.Sprintf("local:%d", i)}
	}
	return ring.New(members)
}

type memoryRecorder struct {
	mu     sync.Mutex
	events []ledger.Event
}

func (r *memoryRecorder) Record(e ledger.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *memoryRecorder) kinds() []ledger.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kinds []ledger.EventKind
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// testNode returns a node ready to handle messages without running its
// loop.
func testNode(index int, cfg Config, dir *ring.Directory, draw int) (*Node, *scriptedEndpoint, *memoryRecorder) {
	ep := newScriptedEndpoint(index)
	rec := &memoryRecorder{}
	n := NewNode(index, cfg, dir, ep,
		WithLogger(quiet),
		WithRecorder(rec),
		WithDecrementers(func(int) Decrementer { return fixedDecrementer(draw) }),
	)
	return n, ep, rec
}

func kindsSent(sent []delivery) []message.Kind {
	var kinds []message.Kind
	for _, d := range sent {
		kinds = append(kinds, d.msg.Kind)
	}
	return kinds
}

func targets(sent []delivery) map[int]bool {
	to := make(map[int]bool)
	for _, d := range sent {
		to[d.to] = true
	}
	return to
}

// pump moves messages between nodes in send order until none is left and
// returns every message sent. Tokens are kept out of the ring. Deliveries
// matched by hold wait until nothing else is pending.
func pump(t *testing.T, nodes []*Node, endpoints []*scriptedEndpoint, hold func(delivery) bool) []delivery {
	t.Helper()
	var all, queue, held []delivery
	collect := func() {
		for _, ep := range endpoints {
			for _, d := range ep.take() {
				all = append(all, d)
				if d.msg.Kind == message.KindToken {
					continue
				}
				if hold(d) {
					held = append(held, d)
				} else {
					queue = append(queue, d)
				}
			}
		}
	}
	collect()
	for step := 0; step < 1000; step++ {
		if len(queue) == 0 {
			if len(held) == 0 {
				return all
			}
			queue, held = held, nil
		}
		d := queue[0]
		queue = queue[1:]
		nodes[d.to].handle(d.msg)
		collect()
	}
	t.Fatal("messages kept flowing")
	return nil
}
