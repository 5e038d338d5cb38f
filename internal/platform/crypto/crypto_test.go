package crypto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, VerifyPassword(hash, "Sup3rSecret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.ErrorIs(t, ValidatePasswordStrength("Ab1"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePasswordStrength("alllower1"), ErrPasswordNoUpper)
	assert.ErrorIs(t, ValidatePasswordStrength("ALLUPPER1"), ErrPasswordNoLower)
	assert.ErrorIs(t, ValidatePasswordStrength("NoNumbers"), ErrPasswordNoNumber)
	assert.NoError(t, ValidatePasswordStrength("GoodPass1"))
}

func TestGenerateAndParseToken(t *testing.T) {
	token, jti, err := GenerateToken(testSecret, "user-1", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, jti, claims.ID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateToken(testSecret, "user-1", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, _, err := GenerateToken(testSecret, "user-1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestResetToken_RoundTrip(t *testing.T) {
	token, err := GenerateResetToken(testSecret, "reader@example.com", time.Hour)
	require.NoError(t, err)

	email, err := VerifyResetToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", email)
}

func TestResetToken_Expired(t *testing.T) {
	token, err := GenerateResetToken(testSecret, "reader@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyResetToken(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetToken_RejectsAccessToken(t *testing.T) {
	// An access token signed with the same secret must not pass as a reset token.
	token, _, err := GenerateToken(testSecret, "user-1", time.Hour)
	require.NoError(t, err)

	_, err = VerifyResetToken(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}
