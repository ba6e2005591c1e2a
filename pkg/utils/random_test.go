package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestSubsystemRNG_Deterministic(t *testing.T) {
	r1 := SubsystemRNG(42, 3, "hazards")
	r2 := SubsystemRNG(42, 3, "hazards")
	r3 := SubsystemRNG(42, 3, "pickups")

	a, b, c := r1.Int63(), r2.Int63(), r3.Int63()
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestResolveSeed(t *testing.T) {
	assert.Equal(t, int64(7), ResolveSeed(7))
	assert.NotZero(t, ResolveSeed(0))
}
