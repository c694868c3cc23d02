package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Binaergewitter/datefinder/internal/model"
)

var testUser = model.User{ID: 7, Username: "alice", DisplayName: "Alice"}

func TestGenerateAndDecode(t *testing.T) {
	auth := NewAuthenticator("test-secret", time.Hour)

	token, err := auth.Generate(testUser)
	require.NoError(t, err)

	claims, err := auth.Decode(token)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "Alice", claims.DisplayName)
}

func TestDecode_WrongSecret(t *testing.T) {
	token, err := NewAuthenticator("one-secret", time.Hour).Generate(testUser)
	require.NoError(t, err)

	_, err = NewAuthenticator("other-secret", time.Hour).Decode(token)
	require.Error(t, err)
}

func TestDecode_ExpiredToken(t *testing.T) {
	auth := NewAuthenticator("test-secret", -time.Minute)

	token, err := auth.Generate(testUser)
	require.NoError(t, err)

	_, err = auth.Decode(token)
	require.Error(t, err)
}

func TestDecode_Garbage(t *testing.T) {
	auth := NewAuthenticator("test-secret", time.Hour)

	_, err := auth.Decode("not.a.token")
	require.Error(t, err)
}
