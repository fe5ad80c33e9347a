package game

import (
	"fmt"

	"github.com/luca-patrignani/token-ring/ledger"
	"github.com/luca-patrignani/token-ring/message"
)

// startPlay puts a fresh token with the initial value in the ring. It is
// used by actor 0 at bootstrap and by a leader after an elimination.
func (n *Node) startPlay() {
	if n.dir.Live() == 1 {
		n.announceWinner(n.index)
		return
	}
	v := n.cfg.InitialToken
	n.record(ledger.Event{Kind: ledger.EventToken, Received: v, Result: v})
	n.log.Info(fmt.Sprintf("actor %d; token received: %d; token result: %d", n.index, v, v))
	n.passToken(v)
}

func (n *Node) onToken(value int) {
	if n.state != playing {
		n.forward(message.NewToken(n.index, value))
		return
	}
	if n.dir.Live() == 1 {
		n.announceWinner(n.index)
		return
	}
	result := value - n.draw.Draw(n.cfg.MaxDecrement)
	n.record(ledger.Event{Kind: ledger.EventToken, Received: value, Result: result})
	n.log.Info(fmt.Sprintf("actor %d; token received: %d; token result: %d", n.index, value, result))
	if result < 0 {
		n.eliminate()
		return
	}
	n.passToken(result)
}

func (n *Node) passToken(value int) {
	if !n.forward(message.NewToken(n.index, value)) && !n.done {
		n.announceWinner(n.index)
	}
}
