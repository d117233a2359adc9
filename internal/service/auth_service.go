package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/dkoss/relay/internal/domain"
	"github.com/dkoss/relay/internal/repository"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrUserNameTaken    = errors.New("user already registered")
	ErrInvalidCreds     = errors.New("incorrect user or password")
	ErrWrongPassword    = errors.New("incorrect current password")
	ErrPasswordMismatch = errors.New("new password and confirm password do not match")
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	notifier  Notifier
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

// SetNotifier wires the realtime layer in after construction, breaking the
// hub/service dependency cycle at startup.
func (s *AuthService) SetNotifier(n Notifier) {
	s.notifier = n
}

type SignupInput struct {
	Email    string `json:"email"`
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type LoginInput struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// Signup registers a new user. The email check runs before the user_name
// check, so a request duplicating both reports the email conflict.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.userRepo.GetByUserName(ctx, input.UserName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserNameTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		UserName:     input.UserName,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues an access token bound to the
// identity {user_id, user_name}. On success it announces the login over the
// realtime layer; delivery failure does not fail the login.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.userRepo.GetByUserName(ctx, input.UserName)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCreds
	}

	if !verifyPassword(input.Password, user.PasswordHash) {
		return "", ErrInvalidCreds
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyLoginSuccess(user.ID)
	}

	return token, nil
}

// ChangePassword replaces the caller's digest after re-verifying the current
// password and the new/confirm match.
func (s *AuthService) ChangePassword(ctx context.Context, identity domain.Identity, current, newPassword, confirm string) error {
	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if user == nil || !verifyPassword(current, user.PasswordHash) {
		return ErrWrongPassword
	}

	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"name": user.UserName,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}
