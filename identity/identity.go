// Package identity generates the identities used to break ties in leader
// elections. An identity is the hex encoding of a freshly generated Ed25519
// public point, so identities are unpredictable, fixed length and totally
// ordered by plain string comparison.
package identity

import (
	"encoding/hex"
	"fmt"
	"strings"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/suites"
)

var suite suites.Suite = suites.MustFind("Ed25519")

// Identity is a process unique, totally ordered actor identity.
type Identity string

// Generate picks a random secret scalar and returns the identity derived
// from the matching public point.
func Generate() (Identity, error) {
	secret := suite.Scalar().Pick(suite.RandomStream())
	return FromPoint(suite.Point().Mul(secret, nil))
}

// FromPoint encodes a public point as an identity.
func FromPoint(p kyber.Point) (Identity, error) {
	b, err := p.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to marshal point: %w", err)
	}
	return Identity(hex.EncodeToString(b)), nil
}

// Distinct generates n pairwise distinct identities.
func Distinct(n int) ([]Identity, error) {
	ids := make([]Identity, 0, n)
	seen := make(map[Identity]struct{}, n)
	for len(ids) < n {
		id, err := Generate()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal
// to or after b.
func Compare(a, b Identity) int {
	return strings.Compare(string(a), string(b))
}

// Short returns a prefix suitable for log lines.
func (id Identity) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}
