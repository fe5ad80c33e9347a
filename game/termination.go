package game

import (
	"fmt"

	"github.com/luca-patrignani/token-ring/identity"
	"github.com/luca-patrignani/token-ring/ledger"
	"github.com/luca-patrignani/token-ring/message"
)

// Completion is how the game ended for one actor.
type Completion int

const (
	Unfinished Completion = iota
	Won
	Lost
	GameEnded
)

func (c Completion) String() string {
	switch c {
	case Unfinished:
		return "unfinished"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case GameEnded:
		return "game ended"
	default:
		return fmt.Sprintf("completion(%d)", int(c))
	}
}

type Result struct {
	Index      int
	Identity   identity.Identity
	Completion Completion
	// Winner is -1 when the game did not end.
	Winner int
}

func (n *Node) result() Result {
	r := Result{Index: n.index, Identity: n.self, Winner: n.winner}
	switch {
	case !n.done:
		r.Completion = Unfinished
	case n.winner == n.index:
		r.Completion = Won
	case n.state == eliminated:
		r.Completion = Lost
	default:
		r.Completion = GameEnded
	}
	return r
}

// announceWinner ends the game for this actor and notifies every other
// actor, eliminated ones included. Only the first call has an effect.
func (n *Node) announceWinner(w int) {
	if n.done {
		return
	}
	n.finish(w)
	var targets []int
	for i := 0; i < n.dir.Len(); i++ {
		if i != n.index {
			targets = append(targets, i)
		}
	}
	if failed := n.broadcast(targets, message.NewWinner(n.index, w)); len(failed) > 0 {
		n.log.Debug("winner not delivered", "to", failed)
	}
}

func (n *Node) onWinner(w int) {
	if n.done {
		n.log.Debug("duplicate winner", "winner", w)
		return
	}
	n.finish(w)
}

func (n *Node) finish(w int) {
	n.done = true
	n.winner = w
	if w == n.index {
		n.state = won
	}
	n.record(ledger.Event{Kind: ledger.EventWinner, Subject: w})
	if w == n.index {
		n.log.Info(fmt.Sprintf("actor %d is the winner", n.index))
	} else {
		n.log.Debug("game over", "winner", w)
	}
}
