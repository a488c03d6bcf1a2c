package service

import (
	"context"
	"testing"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/session"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testSecret = []byte("test-secret")

func newAuthService(t *testing.T) (*authService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := NewAuthService(
		unitofwork.NewRepositoryFactory(db),
		memory.NewTokenDenylist(),
		testSecret,
		time.Hour,
		logger.NewNopLogger(),
	).(*authService)
	svc.bcryptCost = bcrypt.MinCost
	return svc, db
}

func TestAuthService_LoginProvisionsUnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc, db := newAuthService(t)

	res, err := svc.Login(ctx, &dto.LoginRequest{Email: "Ada@Example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, "ada", res.User.Name)

	claims, err := session.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.Id.String(), claims.UserId)
	assert.Equal(t, res.ExpiresAt.Unix(), claims.ExpiresAt.Unix())

	user, err := unitofwork.NewUnitOfWork(db).UserRepository().FindOne(ctx, specification.ByEmail{Email: "ada@example.com"})
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "hunter2", *user.PasswordHash)
}

func TestAuthService_LoginExistingUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	first, err := svc.Login(ctx, &dto.LoginRequest{Email: "bob@example.com", Password: "pw"})
	require.NoError(t, err)

	second, err := svc.Login(ctx, &dto.LoginRequest{Email: "bob@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, first.User.Id, second.User.Id)
	assert.NotEqual(t, first.Token, second.Token)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "bob@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestAuthService_LoginAdoptsFirstPassword(t *testing.T) {
	ctx := context.Background()
	svc, db := newAuthService(t)
	existing := testutil.CreateUser(t, db)

	res, err := svc.Login(ctx, &dto.LoginRequest{Email: existing.Email, Password: "first"})
	require.NoError(t, err)
	assert.Equal(t, existing.Id, res.User.Id)
	assert.Equal(t, existing.Name, res.User.Name)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: existing.Email, Password: "second"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestAuthService_LoginRequiresCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "  ", Password: "x"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAuthService_Session(t *testing.T) {
	ctx := context.Background()
	svc, db := newAuthService(t)
	user := testutil.CreateUser(t, db)

	res, err := svc.Session(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, user.Email, res.Email)

	_, err = svc.Session(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestAuthService_LogoutRevokesUntilExpiry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	require.NoError(t, svc.Logout(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err := svc.denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, svc.Logout(ctx, "jti-old", time.Now().Add(-time.Minute)))
	revoked, err = svc.denylist.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.ErrorIs(t, svc.Logout(ctx, "", time.Now().Add(time.Hour)), apperror.ErrUnauthenticated)
}
