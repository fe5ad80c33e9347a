package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/luca-patrignani/token-ring/identity"
	"github.com/luca-patrignani/token-ring/ledger"
	"github.com/luca-patrignani/token-ring/message"
	"github.com/luca-patrignani/token-ring/network"
	"github.com/luca-patrignani/token-ring/ring"
	"golang.org/x/sync/errgroup"
)

type state int

const (
	playing state = iota
	eliminated
	won
)

type phase int

const (
	idle phase = iota
	electing
	leaderKnown
)

// Node is one actor of the ring. All its fields are owned by the goroutine
// running Run.
type Node struct {
	index int
	self  identity.Identity
	cfg   Config
	dir   *ring.Directory
	ep    Endpoint
	rec   Recorder
	log   *slog.Logger
	draw  Decrementer

	ctx   context.Context
	state state

	phase        phase
	term         int
	electionTerm int
	participant  bool
	leader       int

	done   bool
	winner int
}

// NewNode creates the actor with the given index. dir must be owned by
// this actor only and ep must be the endpoint of the same index.
func NewNode(index int, cfg Config, dir *ring.Directory, ep Endpoint, opts ...Option) *Node {
	o := applyOptions(opts)
	rec := o.recorder
	if rec == nil {
		rec = discard{}
	}
	return &Node{
		index:  index,
		self:   dir.Identity(index),
		cfg:    cfg,
		dir:    dir,
		ep:     ep,
		rec:    rec,
		log:    o.logger.With("actor", index),
		draw:   o.decrementers(index),
		ctx:    context.Background(),
		leader: -1,
		winner: -1,
	}
}

// Run plays until a winner is known or ctx is done. The endpoint is closed
// when Run returns.
func (n *Node) Run(ctx context.Context) (Result, error) {
	n.ctx = ctx
	defer func() {
		if err := n.ep.Close(); err != nil {
			n.log.Warn("failed to close endpoint", "err", err)
		}
	}()
	switch {
	case n.dir.Live() == 1 && n.dir.IsActive(n.index):
		n.announceWinner(n.index)
	case n.index == 0:
		n.startPlay()
	}
	for !n.done {
		msg, err := n.ep.Receive(ctx)
		if err != nil {
			return n.result(), fmt.Errorf("actor %d: %w", n.index, err)
		}
		n.handle(msg)
	}
	return n.result(), nil
}

func (n *Node) handle(msg message.Message) {
	n.log.Debug("received", "msg", msg)
	switch msg.Kind {
	case message.KindToken:
		n.onToken(msg.Value)
	case message.KindEliminated:
		n.onEliminated(msg.Index)
	case message.KindElection:
		n.onElection(msg)
	case message.KindLeader:
		n.onLeader(msg)
	case message.KindWinner:
		n.onWinner(msg.Index)
	default:
		n.log.Warn("dropping unknown message", "msg", msg)
	}
}

// send delivers msg to one actor. A delivery failure marks the target
// inactive before the error is returned.
func (n *Node) send(to int, msg message.Message) error {
	err := n.ep.Send(n.ctx, to, msg)
	switch {
	case err == nil:
	case errors.Is(err, network.ErrDeliveryFailure):
		n.log.Warn("delivery failure", "to", to, "msg", msg, "err", err)
		n.lost(to)
	default:
		n.log.Debug("send aborted", "to", to, "msg", msg, "err", err)
	}
	return err
}

// forward sends msg to the first reachable active successor. It reports
// false when no other actor is active.
func (n *Node) forward(msg message.Message) bool {
	msg.From = n.index
	for !n.done {
		next, ok := n.dir.NextActive(n.index)
		if !ok {
			return false
		}
		err := n.send(next, msg)
		if !errors.Is(err, network.ErrDeliveryFailure) {
			return true
		}
	}
	return true
}

// broadcast sends msg to every target concurrently and returns the targets
// that could not be reached. The directory is left untouched.
func (n *Node) broadcast(targets []int, msg message.Message) []int {
	var (
		mu     sync.Mutex
		failed []int
		g      errgroup.Group
	)
	for _, to := range targets {
		g.Go(func() error {
			err := n.ep.Send(n.ctx, to, msg)
			if errors.Is(err, network.ErrDeliveryFailure) {
				mu.Lock()
				failed = append(failed, to)
				mu.Unlock()
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		n.log.Debug("broadcast incomplete", "msg", msg, "err", err)
	}
	sort.Ints(failed)
	return failed
}

// others returns the active actors except this one.
func (n *Node) others() []int {
	var targets []int
	for _, i := range n.dir.Active() {
		if i != n.index {
			targets = append(targets, i)
		}
	}
	return targets
}

func (n *Node) record(e ledger.Event) {
	e.Actor = n.index
	e.Live = n.dir.Live()
	if err := n.rec.Record(e); err != nil {
		n.log.Warn("failed to record event", "kind", e.Kind, "err", err)
	}
}

type discard struct{}

func (discard) Record(ledger.Event) error { return nil }
