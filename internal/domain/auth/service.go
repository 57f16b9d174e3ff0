package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for identity and access.
type Service struct {
	users UserRepository
	jwt   TokenIssuer
}

func NewService(users UserRepository, jwt TokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

// Register creates a pending sub-admin and issues a token immediately.
// The token encodes identity only; approval status gates login and every
// downstream operation, not token issuance.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	// Emails are stored lowercased; the uniqueness check must see the same
	// form or mixed-case input would slip past it.
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleSubAdmin,
		Status:       StatusPending,
		CompanyName:  strings.TrimSpace(req.CompanyName),
		Phone:        strings.TrimSpace(req.Phone),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &TokenResponse{Token: token, User: user}, nil
}

// Login verifies credentials. The error is uniform for unknown email and
// wrong password to avoid user enumeration.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsApproved() {
		return nil, ErrNotApproved
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &TokenResponse{Token: token, User: user}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateDetails(ctx context.Context, userID int64, req UpdateDetailsRequest) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(req.Name) != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.CompanyName) != "" {
		user.CompanyName = strings.TrimSpace(req.CompanyName)
	}
	if strings.TrimSpace(req.Phone) != "" {
		user.Phone = strings.TrimSpace(req.Phone)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword re-hashes the credential and reissues a token.
func (s *Service) UpdatePassword(ctx context.Context, userID int64, req UpdatePasswordRequest) (*TokenResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return nil, ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &TokenResponse{Token: token, User: user}, nil
}
