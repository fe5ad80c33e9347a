// Package ring implements the directory shared by the actors of a token ring.
//
// # Directory
//
// A Directory holds one entry per actor, addressed by its ring index. Every
// entry carries the identity and the address assigned at bootstrap, which
// never change, and a liveness flag, which flips from active to inactive at
// most once.
//
// # Ring order
//
// Actors are ordered by index. NextActive walks the ring clockwise from a
// given position and skips inactive entries, wrapping around at most once.
//
// # Concurrency
//
// Liveness flags and the live count are atomics, so a Directory can be read
// and updated by many goroutines without locking. MarkInactive is
// idempotent: only the first call for an index has an effect.
package ring
