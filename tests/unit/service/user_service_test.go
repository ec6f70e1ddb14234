package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"hearbill/internal/domain"
	"hearbill/internal/service"
	"hearbill/mocks"
)

func TestUserService_Create_HashesPassword(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "staff@hearwell.in",
		Password: "supersecret1",
		FullName: "Staff Member",
		Role:     domain.RoleStaff,
	})

	assert.NoError(t, err)
	assert.NotEqual(t, "supersecret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret1")))
	assert.True(t, user.IsActive)
	repo.AssertExpectations(t)
}

func TestUserService_Create_UnknownRoleRejected(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "staff@hearwell.in",
		Password: "supersecret1",
		FullName: "Staff Member",
		Role:     domain.UserRole("superuser"),
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicateEmail)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "staff@hearwell.in",
		Password: "supersecret1",
		FullName: "Staff Member",
		Role:     domain.RoleStaff,
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserService_Update_Deactivate(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()
	repo.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:       userID,
		Email:    "staff@hearwell.in",
		Role:     domain.RoleStaff,
		IsActive: true,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return !u.IsActive
	})).Return(nil)

	inactive := false
	user, err := svc.Update(context.Background(), userID, service.UpdateUserInput{IsActive: &inactive})

	assert.NoError(t, err)
	assert.False(t, user.IsActive)
	repo.AssertExpectations(t)
}

func TestUserService_Update_UnknownRoleRejected(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()
	repo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Role: domain.RoleStaff}, nil)

	role := domain.UserRole("owner")
	user, err := svc.Update(context.Background(), userID, service.UpdateUserInput{Role: &role})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
