package ledger

import "github.com/google/uuid"

type EventKind string

const (
	EventGenesis     EventKind = "genesis"
	EventToken       EventKind = "token"
	EventEliminated  EventKind = "eliminated"
	EventUnreachable EventKind = "unreachable"
	EventLeader      EventKind = "leader"
	EventWinner      EventKind = "winner"
)

// Event is a single observation of an actor. Subject is the actor the event
// is about (the eliminated or unreachable actor, the leader or the winner);
// Live is the number of active actors seen by Actor right after the event.
type Event struct {
	Kind     EventKind `json:"kind"`
	Actor    int       `json:"actor"`
	Received int       `json:"received,omitempty"`
	Result   int       `json:"result,omitempty"`
	Subject  int       `json:"subject,omitempty"`
	Term     int       `json:"term,omitempty"`
	Live     int       `json:"live,omitempty"`
}

type Block struct {
	Index     int       `json:"index"`
	Timestamp int64     `json:"timestamp"`
	PrevHash  string    `json:"prev_hash"`
	Hash      string    `json:"hash"`
	Session   uuid.UUID `json:"session"`
	Event     Event     `json:"event"`
}
