package services

import (
	"testing"

	"github.com/campushire/placement_service/internal/apperr"
	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/helper"
	"github.com/campushire/placement_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repository.NewUserRepository(db), helper.SetupAuth("test-secret"))
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	err := svc.Register(dto.RegisterRequest{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "secret1",
		Role:     domain.RoleStudent,
	})
	require.NoError(t, err)

	user, err := svc.Login(dto.UserLogin{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	input := dto.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret1",
		Role:     domain.RoleStudent,
	}
	require.NoError(t, svc.Register(input))

	err := svc.Register(input)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	err := svc.Register(dto.RegisterRequest{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "secret1",
		Role:     domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestRegisterShortPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	err := svc.Register(dto.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "abc",
		Role:     domain.RoleStudent,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	require.NoError(t, svc.Register(dto.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret1",
		Role:     domain.RoleStudent,
	}))

	_, err := svc.Login(dto.UserLogin{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	_, err := svc.Login(dto.UserLogin{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
