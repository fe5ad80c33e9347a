// Package message defines the messages exchanged by the actors of the ring.
package message

import (
	"fmt"

	"github.com/luca-patrignani/token-ring/identity"
)

type Kind string

const (
	KindToken      Kind = "token"
	KindEliminated Kind = "eliminated"
	KindElection   Kind = "election"
	KindLeader     Kind = "leader"
	KindWinner     Kind = "winner"
)

// Message is the envelope of every protocol message. Which fields are set
// depends on Kind:
//   - token: Value
//   - eliminated: Index of the eliminated actor
//   - election: Identity of the candidate, the Term being elected and the
//     Index of the eliminated actor that made the election necessary, or -1
//   - leader: Identity of the leader and its Term
//   - winner: Index of the winning actor
type Message struct {
	Kind     Kind              `json:"kind"`
	From     int               `json:"from"`
	Value    int               `json:"value,omitempty"`
	Index    int               `json:"index,omitempty"`
	Identity identity.Identity `json:"identity,omitempty"`
	Term     int               `json:"term,omitempty"`
}

func NewToken(from, value int) Message {
	return Message{Kind: KindToken, From: from, Value: value}
}

func NewEliminated(from, index int) Message {
	return Message{Kind: KindEliminated, From: from, Index: index}
}

// NewElection returns a candidacy for term. cause is the actor whose
// elimination started the election, -1 when no elimination did.
func NewElection(from int, candidate identity.Identity, term, cause int) Message {
	return Message{Kind: KindElection, From: from, Identity: candidate, Term: term, Index: cause}
}

func NewLeader(from int, leader identity.Identity, term int) Message {
	return Message{Kind: KindLeader, From: from, Identity: leader, Term: term}
}

func NewWinner(from, index int) Message {
	return Message{Kind: KindWinner, From: from, Index: index}
}

// Validate rejects messages that no handler can interpret.
func (m Message) Validate() error {
	switch m.Kind {
	case KindToken, KindEliminated, KindWinner:
		return nil
	case KindElection, KindLeader:
		if m.Identity == "" {
			return fmt.Errorf("%s message without identity", m.Kind)
		}
		return nil
	default:
		return fmt.Errorf("unknown message kind %q", m.Kind)
	}
}

func (m Message) String() string {
	switch m.Kind {
	case KindToken:
		return fmt.Sprintf("token(%d) from %d", m.Value, m.From)
	case KindEliminated, KindWinner:
		return fmt.Sprintf("%s(%d) from %d", m.Kind, m.Index, m.From)
	case KindElection, KindLeader:
		return fmt.Sprintf("%s(%s, term %d) from %d", m.Kind, m.Identity.Short(), m.Term, m.From)
	default:
		return fmt.Sprintf("%s from %d", m.Kind, m.From)
	}
}
