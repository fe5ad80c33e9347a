// Package game implements the token ring elimination game.
//
// Every actor runs a Node: a single goroutine that receives messages from
// its endpoint and handles them one at a time. The token starts at actor 0
// and travels clockwise over the active actors. Each actor subtracts a
// random amount in [0, M) and is eliminated when the result goes negative.
//
// # Protocol
//
// Token: the only message that carries game state. An eliminated actor
// relays it unchanged to the next actor it believes active.
//
// Eliminated: broadcast by an actor that leaves the game. The leader
// restarts play with the initial token value once it learns about an
// elimination; the loss of the leader triggers a new election.
//
// Election and Leader: Chang and Roberts election over the active actors,
// numbered by term. The actor with the greatest identity becomes the
// leader of the term and restarts play.
//
// Winner: sent to every actor by whoever sees the live count reach one.
// The first Winner received ends the loop; later ones are ignored.
//
// # Bootstrap
//
// Play wires a complete game in one process: identities, endpoints over
// the chosen transport, one ring directory per actor and the ledger where
// every actor records what it did.
package game
