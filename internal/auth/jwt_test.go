package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm, err := NewTokenManager("test-secret", time.Hour)
	assert.NoError(t, err)

	token, err := tm.Issue("user-1", "maria@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "maria@example.com", claims.Email)
}

func TestTokenManager_RejectsEmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", time.Hour)
	verifier, _ := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue("user-1", "maria@example.com")
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm, _ := NewTokenManager("test-secret", time.Hour)
	tm.ttl = -time.Minute

	token, err := tm.Issue("user-1", "maria@example.com")
	assert.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm, _ := NewTokenManager("test-secret", time.Hour)
	_, err := tm.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
