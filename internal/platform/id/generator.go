package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs used to correlate one command run across log lines.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}

	return value.String(), nil
}
