package message

import (
	"encoding/json"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := []Message{
		NewToken(0, 10),
		NewEliminated(1, 1),
		NewElection(2, "ab", 1, 0),
		NewLeader(3, "cd", 2),
		NewWinner(0, 3),
	}
	for _, m := range valid {
		if err := m.Validate(); err != nil {
			t.Errorf("%v: unexpected error %v", m, err)
		}
	}

	invalid := []Message{
		{Kind: "ping"},
		{Kind: KindElection, Term: 1},
		{Kind: KindLeader, Term: 1},
	}
	for _, m := range invalid {
		if err := m.Validate(); err == nil {
			t.Errorf("%v: expected an error", m)
		}
	}
}

// A zero index must survive the wire even though the field is omitted.
func TestEliminatedZeroIndexOnTheWire(t *testing.T) {
	b, err := json.Marshal(NewEliminated(3, 0))
	if err != nil {
		t.Fatal(err)
	}
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m.Kind != KindEliminated || m.Index != 0 || m.From != 3 {
		t.Fatalf("unexpected message %+v", m)
	}
}

func TestString(t *testing.T) {
	if s := NewToken(2, 7).String(); s != "token(7) from 2" {
		t.Fatalf("unexpected %q", s)
	}
	if s := NewWinner(1, 4).String(); s != "winner(4) from 1" {
		t.Fatalf("unexpected %q", s)
	}
}
