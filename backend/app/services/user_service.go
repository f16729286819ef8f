package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smart-pantry/backend/app/apperr"
	"smart-pantry/backend/app/dto"
	jwtutil "smart-pantry/backend/app/jwt"
	"smart-pantry/backend/app/models"
	"smart-pantry/backend/app/repo"

	"github.com/google/uuid"
)

const (
	msgCredentialsRequired = "Email and password required"
	msgUserExists          = "User already exists"
	msgInvalidCredentials  = "Invalid credentials"
	msgInvalidRole         = "Invalid role"
)

type UserService struct {
	users  repo.UserStore
	signer *jwtutil.Signer
	// AllowSignupRole lets clients pick their role at signup. When false every
	// new account is a plain user.
	AllowSignupRole bool
	Now             func() time.Time
}

func NewUserService(users repo.UserStore, signer *jwtutil.Signer) *UserService {
	return &UserService{users: users, signer: signer, AllowSignupRole: true}
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// Signup registers a new account and returns a session for it.
func (s *UserService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperr.InvalidInput(msgCredentialsRequired)
	}
	role := models.RoleUser
	if s.AllowSignupRole && req.Role != "" {
		if !models.ValidRole(req.Role) {
			return nil, apperr.InvalidInput(msgInvalidRole)
		}
		role = req.Role
	}

	hash, salt, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    models.Instant(s.now()),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Conflict(msgUserExists)
		}
		return nil, fmt.Errorf("signup: %w", err)
	}
	return s.session(u)
}

// Login answers the same error for an unknown email and a wrong password.
func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		derivePassword(req.Password, dummySalt)
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !verifyPassword(req.Password, u.PasswordHash, u.Salt) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	return s.session(u)
}

func (s *UserService) session(u *models.User) (*dto.AuthResponse, error) {
	token, err := s.signer.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: dto.User{ID: u.ID, Email: u.Email, Role: u.Role}}, nil
}
