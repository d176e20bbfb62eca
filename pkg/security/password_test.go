package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_HashProducesDistinctDigests(t *testing.T) {
	hasher := NewPasswordHasher(4) // low cost keeps the test fast

	digest1, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	digest2, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)

	// Random salt: same plaintext, different digests, both verifiable.
	assert.NotEqual(t, digest1, digest2)
	assert.True(t, hasher.Verify("s3cret-password", digest1))
	assert.True(t, hasher.Verify("s3cret-password", digest2))
}

func TestPasswordHasher_VerifyRejectsWrongPassword(t *testing.T) {
	hasher := NewPasswordHasher(4)

	digest, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	assert.False(t, hasher.Verify("wrong-password", digest))
	assert.False(t, hasher.Verify("", digest))
	assert.False(t, hasher.Verify("correct-password", "not-a-bcrypt-digest"))
}

func TestNewPasswordHasher_ClampsInvalidCost(t *testing.T) {
	hasher := NewPasswordHasher(99)

	digest, err := hasher.Hash("password")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("password", digest))
}
