package user

import (
	"crypto/rand"
	"math/big"
	"unicode"
)

// IsStrongPassword enforces the registration policy: at least 8 characters
// with an uppercase letter, a lowercase letter, a digit and one of !@#$%^&*.
func IsStrongPassword(p string) bool {
	if len(p) < 8 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case isSpecial(r):
			special = true
		}
	}

	return upper && lower && digit && special
}

func isSpecial(r rune) bool {
	switch r {
	case '!', '@', '#', '$', '%', '^', '&', '*':
		return true
	}
	return false
}

// GenerateVerificationCode returns a random 6-digit numeric code
// (100000-999999).
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return (n.Add(n, big.NewInt(100000))).String(), nil
}
