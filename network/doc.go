// Package network delivers protocol messages between the actors of a ring.
// Every actor owns an endpoint with an unbounded mailbox: sending never
// waits for the receiver to make progress, and receiving blocks until a
// message arrives or the context is cancelled.
//
// # Endpoints
//
// Switch: in-process network. Each rank gets a LocalEndpoint and messages
// are moved between mailboxes in memory.
//
// Peer: HTTP based endpoint. Each rank serves its own listener and messages
// travel as JSON POST requests. Peers can use mutual TLS with
// WithCertificate and WithLimitedCAs.
//
// # Delivery failures
//
// Delivery is best effort. A send that does not succeed within the bounded
// retry window of the RetryPolicy returns an error wrapping
// ErrDeliveryFailure, which callers treat as evidence that the target has
// left the game. Ordering between different messages to the same target is
// not guaranteed.
package network
