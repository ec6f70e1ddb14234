package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hearbill/internal/config"
	"hearbill/internal/domain"
	"hearbill/internal/service"
	"hearbill/mocks"
)

var testJWT = config.JWTConfig{
	Secret:             "test-secret-key-for-unit-tests",
	AccessTokenExpiry:  15 * time.Minute,
	RefreshTokenExpiry: 7 * 24 * time.Hour,
	Issuer:             "hearbill-test",
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "admin@hearwell.in",
		PasswordHash: string(hash),
		FullName:     "Clinic Admin",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	user := testUser(t, "correct-horse-1")
	repo.On("GetByEmail", mock.Anything, "admin@hearwell.in").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@hearwell.in",
		Password: "correct-horse-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	repo.On("GetByEmail", mock.Anything, "admin@hearwell.in").Return(testUser(t, "correct-horse-1"), nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@hearwell.in",
		Password: "wrong-password",
	})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	repo.On("GetByEmail", mock.Anything, "nobody@hearwell.in").Return(nil, domain.ErrNotFound)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@hearwell.in",
		Password: "whatever123",
	})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	user := testUser(t, "correct-horse-1")
	user.IsActive = false
	repo.On("GetByEmail", mock.Anything, "admin@hearwell.in").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@hearwell.in",
		Password: "correct-horse-1",
	})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	user := testUser(t, "correct-horse-1")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-1",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := svc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	user := testUser(t, "correct-horse-1")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-1",
	})
	require.NoError(t, err)

	// The audiences are disjoint; an access token must not mint new tokens.
	refreshed, err := svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.Nil(t, refreshed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_RefreshTokenRejected(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	user := testUser(t, "correct-horse-1")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-1",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.RefreshToken)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_TamperedSecret(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	otherCfg := testJWT
	otherCfg.Secret = "a-completely-different-secret"
	otherSvc := service.NewAuthService(repo, otherCfg)

	user := testUser(t, "correct-horse-1")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-1",
	})
	require.NoError(t, err)

	claims, err := otherSvc.ValidateToken(pair.AccessToken)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken_DeactivatedSinceIssue(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	user := testUser(t, "correct-horse-1")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-1",
	})
	require.NoError(t, err)

	deactivated := *user
	deactivated.IsActive = false
	repo.On("GetByID", mock.Anything, user.ID).Return(&deactivated, nil)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.Nil(t, refreshed)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}
