package service

import (
	"context"
	"testing"

	"nutrifit/fitness-platform/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	user, err := e.auth.Register(ctx, "Ana", "ana@example.com", "s3cret-pw", domain.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, user.Role)
	assert.Equal(t, domain.StatusAwaitingAssignment, user.Status)
	assert.Empty(t, user.PasswordHash)
	assert.False(t, user.ID.IsZero())

	token, logged, err := e.auth.Login(ctx, "ana@example.com", "s3cret-pw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)

	// The token must verify against the configured secret and carry the uid.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(e.auth.GetJWTSecret()), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, domain.RoleClient, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	_, err := e.auth.Register(ctx, "Ana", "ana@example.com", "s3cret-pw", domain.RoleClient)
	require.NoError(t, err)

	_, _, err = e.auth.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = e.auth.Login(ctx, "nobody@example.com", "s3cret-pw")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	_, err := e.auth.Register(ctx, "Ana", "ana@example.com", "pw-one", domain.RoleClient)
	require.NoError(t, err)

	_, err = e.auth.Register(ctx, "Other Ana", "ana@example.com", "pw-two", domain.RoleTrainer)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_AdministratorRejected(t *testing.T) {
	e := newEnv()
	_, err := e.auth.Register(context.Background(), "Eve", "eve@example.com", "pw", domain.RoleAdministrator)
	assert.ErrorIs(t, err, ErrRoleNotRegistrable)
}

func TestRegisterAdmin(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := e.addUser(domain.RoleAdministrator)
	trainer := e.addUser(domain.RoleTrainer)

	created, err := e.auth.RegisterAdmin(ctx, admin, "Root Two", "root2@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdministrator, created.Role)

	_, err = e.auth.RegisterAdmin(ctx, trainer, "Sneaky", "sneaky@example.com", "pw")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
