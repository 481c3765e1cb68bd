package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		account string
		want    string
	}{
		{"alice@example.com", "alice"},
		{"bob.smith@corp.example.com", "bob.smith"},
		{"carol@a@b", "carol"}, // first @ wins
		{"dave", "dave"},       // no @ at all: whole string is the local part
	}
	for _, c := range cases {
		got, err := Resolve(c.account)
		require.NoError(t, err, c.account)
		assert.Equal(t, c.want, got)
	}
}

func TestResolveDeterministic(t *testing.T) {
	a, err := Resolve("alice@example.com")
	require.NoError(t, err)
	b, err := Resolve("alice@other.org")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestResolveInvalid(t *testing.T) {
	for _, account := range []string{"", "@example.com"} {
		_, err := Resolve(account)
		assert.ErrorIs(t, err, ErrInvalidIdentity, "account %q", account)
	}
}
