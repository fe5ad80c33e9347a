package game

import (
	"encoding/binary"
	"math/rand/v2"

	"go.dedis.ch/kyber/v4/util/random"
)

type randomDecrementer struct {
	rng *rand.Rand
}

// NewRandomDecrementer returns a uniform Decrementer backed by a PCG
// generator seeded from the system randomness.
func NewRandomDecrementer() Decrementer {
	var seed [16]byte
	random.New().XORKeyStream(seed[:], seed[:])
	src := rand.NewPCG(binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:]))
	return &randomDecrementer{rng: rand.New(src)}
}

func (d *randomDecrementer) Draw(max int) int {
	return d.rng.IntN(max)
}
