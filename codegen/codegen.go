// Package codegen provides numeric short-code generation.
// Generators should be safe for concurrent use.
package codegen

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Generator draws candidate short codes.
// Implementations should be safe for concurrent use.
type Generator interface {
	// Pick returns a uniformly random integer in [1, upper].
	Pick(upper int64) (int64, error)
}

// cryptoGenerator implements Generator on top of crypto/rand.
// It is safe for concurrent use.
type cryptoGenerator struct{}

// NewRandom returns a new crypto/rand backed code generator.
func NewRandom() Generator {
	return &cryptoGenerator{}
}

// Pick returns a uniformly random integer in [1, upper].
func (g *cryptoGenerator) Pick(upper int64) (int64, error) {
	if upper <= 0 {
		return 0, errors.New("upper bound must be positive")
	}

	n, err := rand.Int(rand.Reader, big.NewInt(upper))
	if err != nil {
		return 0, err
	}

	return n.Int64() + 1, nil
}
