package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nmaksimov/estore/internal/hash"
	"github.com/nmaksimov/estore/internal/logging"
	"github.com/nmaksimov/estore/internal/models"
)

type UserService struct {
	DB *gorm.DB
}

// NormalizeEmail lowercases the domain part of the address. The local part
// is left untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func (s *UserService) CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.create_user")

	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email must not be empty", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("create_user_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		IsActive:     true,
	}

	var existing models.User
	err = s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrValidation)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		l.Error("create_user_error", "error", err)
		return nil, err
	}
	return &user, nil
}

func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.CreateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = true
	if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks a user up by normalized email and verifies the
// password. A miss of either kind returns (nil, nil) so callers produce the
// same generic response for unknown email and wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil
	}
	return &user, nil
}
