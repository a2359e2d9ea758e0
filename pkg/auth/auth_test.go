package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arnavshah/rotation-api-go/pkg/config"
	"github.com/arnavshah/rotation-api-go/pkg/database"
)

func newTestAuth() *Authenticator {
	a := New(config.Config{JWTSecret: "jwt-secret", APIMasterSecret: "master"})
	a.BcryptCost = bcrypt.MinCost
	return a
}

func TestHMACKey(t *testing.T) {
	a := newTestAuth()
	key := a.GenerateHMACKey("ward-7")

	userID, err := a.VerifyHMACKey(key)
	require.NoError(t, err)
	assert.Equal(t, "ward-7", userID)

	other := New(config.Config{APIMasterSecret: "different"})
	_, err = other.VerifyHMACKey(key)
	assert.Error(t, err)

	for _, bad := range []string{"", "nodot", ".sig", "a.b.c", "ward-7.deadbeef"} {
		_, err := a.VerifyHMACKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestToken(t *testing.T) {
	a := newTestAuth()
	token, err := a.CreateToken("admin")
	require.NoError(t, err)

	claims, err := a.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	_, err = New(config.Config{JWTSecret: "other"}).VerifyToken(token)
	assert.Error(t, err)

	a.TokenTTL = -time.Minute
	expired, err := a.CreateToken("admin")
	require.NoError(t, err)
	_, err = a.VerifyToken(expired)
	assert.Error(t, err)
}

func TestEnsureAdminExists(t *testing.T) {
	db, err := database.OpenSQLite("file:auth_admin?mode=memory&cache=shared")
	require.NoError(t, err)
	a := newTestAuth()

	require.NoError(t, a.EnsureAdminExists(db, "boss", "pw", zap.NewNop()))
	require.NoError(t, a.EnsureAdminExists(db, "someone-else", "pw2", zap.NewNop()))

	var users []database.MasterUser
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "boss", users[0].Username)
	assert.True(t, CheckPasswordHash("pw", users[0].PasswordHash))
	assert.False(t, CheckPasswordHash("pw2", users[0].PasswordHash))
}
