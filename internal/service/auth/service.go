// Package auth registers users, checks credentials and issues access tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/livestockcare/internal/config"
	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
)

// Service owns the users collection for authentication purposes.
type Service struct {
	store  repository.Records
	tokens *Tokens
	cfg    config.AuthConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the auth service.
func NewService(store repository.Records, cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		tokens: NewTokens(cfg.JWTSecret),
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates an active account and signs the caller in. Admin accounts
// cannot be self-registered.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	switch {
	case !req.Role.Valid() || req.Role == models.RoleGuest:
		return nil, models.NewError(models.ErrValidation, "Invalid role")
	case req.Role == models.RoleAdmin:
		return nil, models.NewError(models.ErrForbidden, "Admin accounts cannot self-register")
	}

	user, err := s.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.respond(user)
}

// CreateUser stores a new user with a hashed password. It is also used to
// bootstrap admin accounts from the command line.
func (s *Service) CreateUser(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Phone = strings.TrimSpace(req.Phone)
	n, err := s.store.Count(ctx, repository.CollUsers, bson.M{"phone": req.Phone})
	if err != nil {
		return nil, fmt.Errorf("check phone: %w", err)
	}
	if n > 0 {
		return nil, models.NewError(models.ErrConflict, "Phone number already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Role:         req.Role,
		Village:      req.Village,
		District:     req.District,
		State:        req.State,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, repository.CollUsers, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login checks the phone, password and expected role.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	var user models.User
	if err := s.store.FindOne(ctx, repository.CollUsers, bson.M{"phone": strings.TrimSpace(req.Phone)}, &user); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrUnauthorized, "Invalid credentials")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.NewError(models.ErrUnauthorized, "Invalid credentials")
	}
	if user.Role != req.Role {
		return nil, models.NewError(models.ErrUnauthorized, "Invalid role for this user")
	}
	if !user.IsActive {
		return nil, models.NewError(models.ErrForbidden, "Account is deactivated")
	}
	if user.IsLocked {
		return nil, models.NewError(models.ErrForbidden, "Account is locked")
	}
	return s.respond(&user)
}

// GuestSession issues a short-lived guest token. No user record is stored.
func (s *Service) GuestSession() (*models.TokenResponse, error) {
	guestID := uuid.NewString()
	token, expires, err := s.tokens.Issue(guestID, "Guest", models.RoleGuest, s.cfg.GuestExpiration)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   expires,
		GuestID:     guestID,
	}, nil
}

// Verify resolves a bearer token into the calling principal. Registered users
// must still exist, be active and not be locked.
func (s *Service) Verify(ctx context.Context, raw string) (models.Principal, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return models.Principal{}, err
	}
	if claims.Role == models.RoleGuest {
		return models.Principal{ID: claims.Subject, Name: claims.Name, Role: models.RoleGuest, Guest: true}, nil
	}

	var user models.User
	if err := s.store.FindOne(ctx, repository.CollUsers, bson.M{"id": claims.Subject}, &user); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Principal{}, models.NewError(models.ErrUnauthorized, "User not found")
		}
		return models.Principal{}, fmt.Errorf("load user: %w", err)
	}
	switch {
	case !user.IsActive:
		return models.Principal{}, models.NewError(models.ErrUnauthorized, "Account is deactivated")
	case user.IsLocked:
		return models.Principal{}, models.NewError(models.ErrUnauthorized, "Account is locked")
	}
	return models.Principal{ID: user.ID, Name: user.Name, Phone: user.Phone, Role: user.Role}, nil
}

// Me returns the stored user behind the principal, or a synthetic record for guests.
func (s *Service) Me(ctx context.Context, p models.Principal) (*models.User, error) {
	if p.Guest {
		return &models.User{ID: p.ID, Name: p.Name, Role: models.RoleGuest, IsActive: true}, nil
	}
	var user models.User
	if err := s.store.FindOne(ctx, repository.CollUsers, bson.M{"id": p.ID}, &user); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func (s *Service) respond(user *models.User) (*models.TokenResponse, error) {
	token, expires, err := s.tokens.Issue(user.ID, user.Name, user.Role, s.cfg.TokenExpiration)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   expires,
		User:        user,
	}, nil
}
