package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/campushire/placement_service/internal/apperr"
	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/helper"
	"github.com/campushire/placement_service/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	Register(input dto.RegisterRequest) error
	Login(input dto.UserLogin) (*domain.User, error)
	GetProfile(userID uint) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
	auth helper.Auth
}

func NewUserService(repo repository.UserRepository, auth helper.Auth) UserService {
	return &userService{repo: repo, auth: auth}
}

func (u *userService) Register(input dto.RegisterRequest) error {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	name := strings.TrimSpace(input.Name)
	role := strings.TrimSpace(strings.ToLower(input.Role))

	if email == "" || strings.TrimSpace(input.Password) == "" || name == "" {
		return fmt.Errorf("%w: name, email and password are required", apperr.ErrInvalidInput)
	}
	// admins are provisioned out of band, never self-registered
	if role != domain.RoleStudent && role != domain.RoleCompany {
		return fmt.Errorf("%w: invalid role", apperr.ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", apperr.ErrInvalidInput)
	}

	existing, err := u.repo.FindUserByEmail(email)
	if err == nil && existing != nil && existing.ID != 0 {
		return fmt.Errorf("%w: email already exists", apperr.ErrConflict)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	hashed, err := u.auth.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	newUser := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}

	if _, err := u.repo.CreateUser(newUser); err != nil {
		return fmt.Errorf("%w: failed to create user", apperr.ErrInternal)
	}
	return nil
}

func (u *userService) Login(input dto.UserLogin) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: invalid email or password", apperr.ErrInvalidInput)
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		return nil, fmt.Errorf("%w: invalid email or password", apperr.ErrForbidden)
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", apperr.ErrForbidden)
	}

	return user, nil
}

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrInvalidInput)
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	}
	return user, nil
}
