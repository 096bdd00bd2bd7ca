package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskcore/task-tracker-api/internal/model"
	"github.com/taskcore/task-tracker-api/internal/repo"
	"github.com/taskcore/task-tracker-api/internal/validation"
)

const (
	DefaultRole = "user"

	minPasswordLen = 6
	bcryptCost     = 10
)

// AuthService issues and verifies credentials. Resource services never see
// tokens; they only receive the already-resolved user id.
type AuthService struct {
	users    repo.UserRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(users repo.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), tokenTTL: tokenTTL, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, username, password, role string) (model.PublicUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.PublicUser{}, newValidationError([]validation.Violation{
			{Field: "username", Code: "INVALID_USERNAME", Message: "username is required"},
		})
	}
	if len(password) < minPasswordLen {
		return model.PublicUser{}, ErrWeakPassword
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return model.PublicUser{}, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrorNotFound) {
		return model.PublicUser{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.PublicUser{}, err
	}

	if role == "" {
		role = DefaultRole
	}
	created, err := s.users.Create(ctx, model.User{
		Username:     username,
		Role:         role,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, repo.ErrorConflict) {
			return model.PublicUser{}, ErrUsernameTaken
		}
		return model.PublicUser{}, err
	}
	return created.Public(), nil
}

// Login verifies the credentials and returns a signed token. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, model.PublicUser, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return "", model.PublicUser{}, ErrInvalidCredentials
		}
		return "", model.PublicUser{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", model.PublicUser{}, ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"role":     u.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", model.PublicUser{}, err
	}
	return token, u.Public(), nil
}

// VerifyToken parses a bearer token and returns the subject user id.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidCredentials
	}
	return sub, nil
}
