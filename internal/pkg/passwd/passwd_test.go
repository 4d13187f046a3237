package passwd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func cheapArgon2id() Argon2id {
	return Argon2id{Time: 1, Memory: 1024, Threads: 1, SaltLen: 16, KeyLen: 32}
}

func TestArgon2idRoundTrip(t *testing.T) {
	encoded, err := cheapArgon2id().Hash("secret")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotContains(t, encoded, "secret")

	ok, err := Verify("secret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("Secret", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2idSaltsDiffer(t *testing.T) {
	h := cheapArgon2id()
	a, err := h.Hash("secret")
	require.NoError(t, err)
	b, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcryptRoundTrip(t *testing.T) {
	encoded, err := Bcrypt{Cost: bcrypt.MinCost}.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", encoded)

	ok, err := Verify("secret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("other", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	testCases := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{name: "plaintext", encoded: "secret", wantErr: ErrUnknownAlgorithm},
		{name: "truncated argon2id", encoded: "$argon2id$v=19$m=1024,t=1,p=1$abc", wantErr: ErrMalformedHash},
		{name: "bad params", encoded: "$argon2id$v=19$garbage$c2FsdA$aGFzaA", wantErr: ErrMalformedHash},
		{name: "bad salt", encoded: "$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA", wantErr: ErrMalformedHash},
		{name: "wrong version", encoded: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrMalformedHash},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := Verify("secret", tc.encoded)
			assert.False(t, ok)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNew(t *testing.T) {
	h, err := New(AlgorithmArgon2id)
	require.NoError(t, err)
	assert.IsType(t, Argon2id{}, h)

	h, err = New(AlgorithmBcrypt)
	require.NoError(t, err)
	assert.IsType(t, Bcrypt{}, h)

	_, err = New("md5")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}
