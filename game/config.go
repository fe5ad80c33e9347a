package game

import "fmt"

// MaxPeers is the largest ring Play accepts.
const MaxPeers = 100

// Config holds the parameters shared by every actor of a game.
type Config struct {
	// Peers is the number of actors in the ring.
	Peers int
	// InitialToken is the value the token is (re)started with.
	InitialToken int
	// MaxDecrement is the exclusive upper bound of a single draw.
	MaxDecrement int
}

func (c Config) Validate() error {
	if c.Peers < 1 || c.Peers > MaxPeers {
		return fmt.Errorf("%w: number of peers must be between 1 and %d, %d given", ErrInvalidConfig, MaxPeers, c.Peers)
	}
	if c.InitialToken <= 0 {
		return fmt.Errorf("%w: initial token must be positive, %d given", ErrInvalidConfig, c.InitialToken)
	}
	if c.MaxDecrement <= 0 {
		return fmt.Errorf("%w: maximum decrement must be positive, %d given", ErrInvalidConfig, c.MaxDecrement)
	}
	return nil
}
