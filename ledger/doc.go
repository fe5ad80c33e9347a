// Package ledger implements an append-only journal of the protocol events
// of one game.
//
// # Core Components
//
// Ledger: the chain of blocks shared by every actor of a session. Each
// block is hash-chained to its predecessor so any later modification is
// detected by Verify.
//
// Event: what an actor observed or decided (a token draw, an elimination,
// an unreachable peer, an elected leader, the winner).
//
// # Usage
//
// Create a ledger for the session, hand it to the actors as their recorder
// and inspect it once the game is over:
//
//	l := ledger.New(session)
//	...
//	if err := l.Verify(); err != nil { ... }
//	winners := l.Events(ledger.EventWinner)
package ledger
