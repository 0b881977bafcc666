package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Deterministic(t *testing.T) {
	h1 := HashPassword("fixedsalt", "password")
	h2 := HashPassword("fixedsalt", "password")
	require.Equal(t, h1, h2)

	// snapshot of the expected digest, sha256("fixedsalt" + "password")
	require.Equal(t, "446d390e15e38fbcd21b1a94dd041877838709df12f28678944d49e4eb12a4cd", h1)
}

func TestHashPassword_SaltIsPrepended(t *testing.T) {
	// salt+password and password+salt must not collide; a silent order flip
	// would break every existing login
	require.NotEqual(t, HashPassword("ab", "cd"), HashPassword("cd", "ab"))
	require.Equal(t, "8a68cff17526dc0feb616f64b0a5c1ba308c2097a97799dd081462a749d9cf32",
		HashPassword("salt", "secret1"))
}

func TestHashPassword_DifferentInputs(t *testing.T) {
	base := HashPassword("salt-1", "secret")
	assert.NotEqual(t, base, HashPassword("salt-2", "secret"))
	assert.NotEqual(t, base, HashPassword("salt-1", "secre"))
}

func TestGenerateSalt_LengthAndAlphabet(t *testing.T) {
	s, err := GenerateSalt()
	require.NoError(t, err)
	require.Len(t, s, SaltLength)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(saltAlphabet, r), "unexpected salt char %q", r)
	}
}

func TestGenerateSalt_EntropyHint(t *testing.T) {
	a, err := GenerateSalt()
	require.NoError(t, err)
	b, err := GenerateSalt()
	require.NoError(t, err)
	if a == b {
		t.Logf("warning: two generated salts are identical; extremely unlikely")
	}
}
