package verification

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

func TestRandomCodeGenerator(t *testing.T) {
	gen := RandomCodeGenerator{}

	for i := 0; i < 200; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, code, domain.VerificationCodeLength)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, domain.VerificationCodeMin)
		assert.LessOrEqual(t, n, domain.VerificationCodeMax)
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("384920")
	require.NoError(t, err)

	assert.True(t, h.Matches(hash, "384920"))
	assert.False(t, h.Matches(hash, "384921"))
	assert.False(t, h.Matches("", "384920"))
	assert.False(t, h.Matches(hash, ""))
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
}
