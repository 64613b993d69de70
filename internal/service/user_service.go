// Package service holds the business logic behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gramhealth-go/internal/model"
	"gramhealth-go/internal/repository"
	"gramhealth-go/pkg/hash"
	"gramhealth-go/pkg/log"
	"gramhealth-go/pkg/token"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// LoginResult is an authenticated session and the tokens that carry it.
type LoginResult struct {
	Session      model.Session
	AccessToken  string
	RefreshToken string
}

// UserService is the auth gate: signup, login and session verification.
type UserService interface {
	Register(username, password, confirmPassword string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Authenticate(ctx context.Context, accessToken string) (model.Session, error)
	Logout(ctx context.Context, accessToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResult, error)
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtManager  *token.JWTManager
}

// NewUserService creates a UserService.
func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
	}
}

// Register creates a credential. The confirmation is checked before anything
// touches the store; a taken username yields repository.ErrDuplicateUsername.
func (s *userService) Register(username, password, confirmPassword string) (*model.User, error) {
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, repository.ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	digest, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{Username: username, Password: digest}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	log.Infof("[UserService] registered user %q", username)
	return user, nil
}

// Login checks the password digest and opens a session.
func (s *userService) Login(_ context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user.Username)
}

func (s *userService) issue(username string) (*LoginResult, error) {
	access, err := s.jwtManager.GenerateToken(username)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(username)
	if err != nil {
		return nil, err
	}
	claims, err := s.jwtManager.VerifyToken(access)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Session:      model.Session{Username: username, Authenticated: true, TokenID: claims.ID},
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Authenticate turns a bearer access token into a session.
func (s *userService) Authenticate(ctx context.Context, accessToken string) (model.Session, error) {
	claims, err := s.verify(ctx, accessToken, token.KindAccess)
	if err != nil {
		return model.Anonymous, err
	}
	if _, err := s.userRepo.FindByUsername(claims.Username); err != nil {
		return model.Anonymous, ErrInvalidCredentials
	}
	return model.Session{Username: claims.Username, Authenticated: true, TokenID: claims.ID}, nil
}

func (s *userService) verify(ctx context.Context, tok, kind string) (*token.SessionClaims, error) {
	claims, err := s.jwtManager.VerifyKind(tok, kind)
	if err != nil {
		return nil, err
	}
	revoked, err := s.sessionRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the access token for the rest of its lifetime.
func (s *userService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtManager.VerifyKind(accessToken, token.KindAccess)
	if err != nil {
		return err
	}
	return s.sessionRepo.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

// RefreshToken rotates a refresh token: the old one is revoked and a new pair issued.
func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.verify(ctx, refreshToken, token.KindRefresh)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(claims.Username); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.sessionRepo.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	return s.issue(claims.Username)
}
