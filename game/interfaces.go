package game

import (
	"context"

	"github.com/luca-patrignani/token-ring/ledger"
	"github.com/luca-patrignani/token-ring/message"
)

// Endpoint abstracts the transport of one actor.
// Implementations must allow concurrent calls to Send.
type Endpoint interface {
	// Rank returns the index of the actor owning the endpoint.
	Rank() int

	// Send delivers msg to the actor with index to. It gives up after a
	// bounded number of attempts and returns an error wrapping
	// network.ErrDeliveryFailure.
	Send(ctx context.Context, to int, msg message.Message) error

	// Receive blocks until a message arrives or ctx is done.
	Receive(ctx context.Context) (message.Message, error)

	// Close releases the endpoint. Later sends to this actor fail.
	Close() error
}

// Recorder keeps the journal of what the actors did.
type Recorder interface {
	Record(e ledger.Event) error
}

// Decrementer draws the amount subtracted from the token.
type Decrementer interface {
	// Draw returns a value in [0, max).
	Draw(max int) int
}
