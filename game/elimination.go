package game

import (
	"fmt"

	"github.com/luca-patrignani/token-ring/ledger"
	"github.com/luca-patrignani/token-ring/message"
)

// eliminate takes this actor out of the game and tells every other active
// actor about it.
func (n *Node) eliminate() {
	n.state = eliminated
	_, sole := n.dir.MarkInactive(n.index)
	n.record(ledger.Event{Kind: ledger.EventEliminated, Subject: n.index})
	n.log.Info(fmt.Sprintf("actor %d is eliminated", n.index))
	for _, to := range n.broadcast(n.others(), message.NewEliminated(n.index, n.index)) {
		n.lost(to)
	}
	if sole {
		n.announceSurvivor()
	}
}

func (n *Node) onEliminated(index int) {
	changed, sole := n.dir.MarkInactive(index)
	if !changed {
		n.log.Debug("duplicate elimination", "index", index)
		return
	}
	n.log.Debug("actor eliminated", "index", index, "live", n.dir.Live())
	if sole {
		n.announceSurvivor()
		return
	}
	if n.state != playing {
		return
	}
	switch {
	case n.leader < 0 || index == n.leader:
		n.startElection(n.term+1, index)
	case n.leader == n.index && n.phase != electing:
		n.startPlay()
	}
}

// lost handles an actor that could not be reached: it is considered out of
// the game, without restarting play.
func (n *Node) lost(index int) {
	changed, sole := n.dir.MarkInactive(index)
	if !changed {
		return
	}
	n.record(ledger.Event{Kind: ledger.EventUnreachable, Subject: index})
	if sole {
		n.announceSurvivor()
		return
	}
	if n.state == playing && index == n.leader {
		n.startElection(n.term+1, index)
	}
}

func (n *Node) announceSurvivor() {
	if w, ok := n.dir.Survivor(); ok {
		n.announceWinner(w)
	}
}
