package utils

import "github.com/google/uuid"

// UUIDGenerator issues profile identifiers. V7 UUIDs keep the local table
// roughly insertion-ordered; V4 is the fallback if the clock misbehaves.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
