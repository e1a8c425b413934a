package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// RandomCodeGenerator выдаёт 6-значные коды из crypto/rand
type RandomCodeGenerator struct{}

// Generate возвращает код в диапазоне [100000, 999999]
func (RandomCodeGenerator) Generate() (string, error) {
	span := big.NewInt(domain.VerificationCodeMax - domain.VerificationCodeMin + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+domain.VerificationCodeMin), nil
}

// BcryptHasher хранит только bcrypt-хэш кода
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher создает хэшер; cost вне допустимого диапазона заменяется на bcrypt.DefaultCost
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Matches(hash, code string) bool {
	if hash == "" || code == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
