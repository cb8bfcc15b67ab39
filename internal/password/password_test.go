package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	tests := []string{"Abcdef1!", "another-Secret9", "ÜnicØde#1x"}
	for _, plain := range tests {
		t.Run(plain, func(t *testing.T) {
			digest, err := h.Hash(plain)
			assert.NoError(t, err)
			assert.NotEqual(t, plain, digest)

			assert.True(t, h.Verify(plain, digest))
			assert.False(t, h.Verify(plain+"x", digest))
			assert.False(t, h.Verify("", digest))
		})
	}
}

func TestBcryptHasher_SaltedDigests(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("Abcdef1!")
	assert.NoError(t, err)
	second, err := h.Hash("Abcdef1!")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}

func TestBcryptHasher_VerifyGarbageDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("Abcdef1!", "not-a-bcrypt-digest"))
}
