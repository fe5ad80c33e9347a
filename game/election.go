package game

import (
	"fmt"

	"github.com/luca-patrignani/token-ring/identity"
	"github.com/luca-patrignani/token-ring/ledger"
	"github.com/luca-patrignani/token-ring/message"
)

// startElection circulates this actor's identity as candidate for term.
// cause is the eliminated actor that made the election necessary, or -1.
// It does nothing if an election for the same or a later term is running.
func (n *Node) startElection(term, cause int) {
	if n.state != playing || n.done || term <= n.term {
		return
	}
	if n.phase == electing && n.electionTerm >= term {
		return
	}
	n.phase = electing
	n.electionTerm = term
	n.participant = true
	n.log.Debug("starting election", "term", term)
	n.forward(message.NewElection(n.index, n.self, term, cause))
}

func (n *Node) onElection(m message.Message) {
	if n.state != playing {
		n.forward(m)
		return
	}
	// The new leader restarts play for the cause, so its own Eliminated
	// copy must find it already out of the ring.
	if changed, sole := n.dir.MarkInactive(m.Index); changed {
		n.log.Debug("actor eliminated", "index", m.Index, "live", n.dir.Live())
		if sole {
			n.announceSurvivor()
			return
		}
	}
	if m.Term <= n.term {
		return
	}
	if n.phase != electing || m.Term > n.electionTerm {
		n.phase = electing
		n.electionTerm = m.Term
		n.participant = false
	}
	if m.Term < n.electionTerm {
		return
	}
	switch identity.Compare(m.Identity, n.self) {
	case 1:
		n.participant = true
		n.forward(m)
	case -1:
		if !n.participant {
			n.participant = true
			n.forward(message.NewElection(n.index, n.self, m.Term, m.Index))
		}
	default:
		n.announceLeader(m.Term)
	}
}

func (n *Node) announceLeader(term int) {
	n.term = term
	n.phase = leaderKnown
	n.leader = n.index
	n.participant = false
	n.record(ledger.Event{Kind: ledger.EventLeader, Subject: n.index, Term: term})
	n.log.Info(fmt.Sprintf("actor %d is the new leader", n.index), "term", term)
	for _, to := range n.broadcast(n.others(), message.NewLeader(n.index, n.self, term)) {
		n.lost(to)
	}
	if !n.done {
		n.startPlay()
	}
}

func (n *Node) onLeader(m message.Message) {
	if n.state != playing || m.Term <= n.term {
		return
	}
	if n.phase == electing && m.Term < n.electionTerm {
		return
	}
	leader, ok := n.dir.IndexOf(m.Identity)
	if !ok {
		n.log.Warn("leader with unknown identity", "identity", m.Identity.Short())
		return
	}
	n.term = m.Term
	n.phase = leaderKnown
	n.leader = leader
	n.participant = false
	n.log.Debug("new leader", "leader", leader, "term", m.Term)
	if !n.dir.IsActive(leader) {
		n.startElection(n.term+1, leader)
	}
}
