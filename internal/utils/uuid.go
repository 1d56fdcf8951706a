package utils

import "github.com/google/uuid"

// UUIDGenerator issues trace identifiers for outgoing host requests. Version 7
// UUIDs are time-ordered, so identifiers sort by request time when digging
// through logs on the host side.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a fresh identifier, falling back to a random v4 UUID when
// the clock-based v7 cannot be built.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
