package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := &PasswordHasher{Iterations: 1000}

	stored, err := h.Hash("correct horse battery")
	require.NoError(t, err)

	parts := strings.Split(stored, "$")
	require.Len(t, parts, 3)
	assert.Equal(t, "1000", parts[0])
	assert.Len(t, parts[1], saltLength*2)
	assert.Len(t, parts[2], keyLength*2)

	assert.True(t, h.Verify("correct horse battery", stored))
	assert.False(t, h.Verify("correct horse battery!", stored))
	assert.False(t, h.Verify("", stored))
}

func TestPasswordHasher_FreshSalt(t *testing.T) {
	h := &PasswordHasher{Iterations: 1000}

	a, err := h.Hash("secret123")
	require.NoError(t, err)
	b, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("secret123", a))
	assert.True(t, h.Verify("secret123", b))
}

func TestPasswordHasher_UsesStoredIterations(t *testing.T) {
	stored, err := (&PasswordHasher{Iterations: 500}).Hash("pw-abcdefg")
	require.NoError(t, err)

	// A hasher configured differently still verifies older hashes.
	assert.True(t, (&PasswordHasher{Iterations: 2000}).Verify("pw-abcdefg", stored))
}

func TestPasswordHasher_DefaultIterations(t *testing.T) {
	assert.Equal(t, DefaultIterations, NewPasswordHasher().Iterations)
}

func TestPasswordHasher_Malformed(t *testing.T) {
	h := &PasswordHasher{Iterations: 1000}

	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"two_fields", "1000$abcd"},
		{"four_fields", "1000$ab$cd$ef"},
		{"non_integer_iterations", "many$abcd$abcd"},
		{"zero_iterations", "0$abcd$abcd"},
		{"negative_iterations", "-5$abcd$abcd"},
		{"bad_salt_hex", "1000$zz$abcd"},
		{"bad_hash_hex", "1000$abcd$zz"},
		{"empty_hash", "1000$abcd$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, h.Verify("anything", tt.stored))
			})
		})
	}
}
