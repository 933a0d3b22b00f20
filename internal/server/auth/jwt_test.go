package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalinins/commportal/internal/portal"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")
	user := portal.User{ID: "u1", Email: "maija@portal.test", Name: "Maija Ozola", Role: portal.RoleBoard, Phone: "+371 2611 0001"}

	token, err := GenerateToken(user, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := UserFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserFromToken_WrongSecret(t *testing.T) {
	user := portal.User{ID: "u1", Email: "maija@portal.test", Role: portal.RoleMember}

	token, err := GenerateToken(user, []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = UserFromToken(token, []byte("secret-b"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserFromToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	user := portal.User{ID: "u1", Email: "maija@portal.test", Role: portal.RoleMember}

	token, err := GenerateToken(user, secret, -time.Minute)
	require.NoError(t, err)

	_, err = UserFromToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserFromToken_Garbage(t *testing.T) {
	_, err := UserFromToken("not-a-token", []byte("test-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
