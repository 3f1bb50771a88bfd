package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates identifiers for newly persisted records.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (version 4) UUID strings.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return value.String(), nil
}

// Valid reports whether value parses as a UUID.
func Valid(value string) bool {
	return uuid.Validate(value) == nil
}
