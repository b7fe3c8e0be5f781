package usecase

import (
	"context"
	"errors"

	"main/model"
	"main/repository"
	"main/services"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService struct {
	UsersRepo *repository.UserRepo
}

func (s *UserService) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:   uuid.New().String(),
		Email:    email,
		Name:     name,
		Password: hashed,
	}

	if err := s.UsersRepo.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials without revealing whether the email
// or the password was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.UsersRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if !services.ComparePasswords(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
