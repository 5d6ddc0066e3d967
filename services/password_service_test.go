package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordValidate(t *testing.T) {
	svc := NewPasswordService()

	valid := []string{"Abc1!x", "Str0ng#Password", "Xy9$zz"}
	for _, p := range valid {
		assert.NoError(t, svc.Validate(p), p)
	}

	invalid := []string{
		"Ab1!",       // too short
		"abc123!x",   // no uppercase
		"Abcdef!x",   // no digit
		"Abcdef1x",   // no special
		"",
	}
	for _, p := range invalid {
		assert.ErrorIs(t, svc.Validate(p), ErrWeakPassword, p)
	}
}

func TestPasswordHashCompare(t *testing.T) {
	svc := NewPasswordService()
	hash, err := svc.Hash("Str0ng#Password")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng#Password", hash)

	assert.NoError(t, svc.Compare(hash, "Str0ng#Password"))
	assert.Error(t, svc.Compare(hash, "wrong-password"))
}

func TestGenerateTemporarySatisfiesPolicy(t *testing.T) {
	svc := NewPasswordService()
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		p, err := svc.GenerateTemporary()
		require.NoError(t, err)
		assert.NoError(t, svc.Validate(p), p)
		assert.False(t, seen[p], "temporary passwords should not repeat")
		seen[p] = true
	}
}
