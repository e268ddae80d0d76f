package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	tok, exp, err := m.GenerateAccessToken("manufacturer-test-001")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "manufacturer-test-001", claims.Principal)
	assert.Equal(t, "manufacturer-test-001", claims.Subject)
	assert.Same(t, m, DefaultJWT())
}

func TestJWTRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tok, _, err := m.GenerateAccessToken("p1")
	require.NoError(t, err)

	other := NewJWTManager("other", time.Hour)
	_, err = other.ParseAccessToken(tok)
	assert.Error(t, err, "wrong secret")

	expired := NewJWTManager("secret", -time.Minute)
	old, _, err := expired.GenerateAccessToken("p1")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(old)
	assert.Error(t, err, "expired")

	_, err = m.ParseAccessToken("not-a-token")
	assert.Error(t, err)

	_, _, err = m.GenerateAccessToken("  ")
	assert.Error(t, err)
}
