package services

import (
	"crypto/rand"
	"errors"
	"math/big"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var ErrWeakPassword = errors.New("password must be at least 6 characters and include an uppercase letter, a number, and a special character")

// PasswordService hashes credentials and enforces the account password
// policy.
type PasswordService struct {
	cost int
}

func NewPasswordService() *PasswordService {
	return &PasswordService{cost: bcrypt.DefaultCost}
}

func (s *PasswordService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *PasswordService) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Validate checks the password policy: minimum length plus at least one
// uppercase letter, one digit, and one special character.
func (s *PasswordService) Validate(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	var hasUpper, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasNumber || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}

// GenerateTemporary produces a random password satisfying the policy,
// used when provisioning client accounts.
func (s *PasswordService) GenerateTemporary() (string, error) {
	const (
		upper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
		lower   = "abcdefghijkmnpqrstuvwxyz"
		digits  = "23456789"
		special = "!@#$%&*"
		all     = upper + lower + digits + special
	)
	pick := func(set string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return 0, err
		}
		return set[n.Int64()], nil
	}

	buf := make([]byte, 12)
	sets := []string{upper, digits, special}
	for i := range buf {
		set := all
		if i < len(sets) {
			set = sets[i]
		}
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}
	return string(buf), nil
}
