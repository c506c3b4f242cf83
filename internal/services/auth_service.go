package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/stocktrail/backend/internal/auth"
	"github.com/stocktrail/backend/internal/config"
	"github.com/stocktrail/backend/internal/models"
	"github.com/stocktrail/backend/internal/repositories"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo *repositories.UserRepo
	cfg      *config.Config
	log      *zap.Logger
}

func NewAuthService(userRepo *repositories.UserRepo, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg, log: log}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	hash, err := auth.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if isPgCode(err, pgUniqueViolation) {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("username", u.Username))
	return u, nil
}

// Login verifies credentials and returns a signed JWT plus the user.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if isNoRows(err) {
			return "", nil, fmt.Errorf("%w: invalid username or password", ErrForbidden)
		}
		return "", nil, err
	}

	ok, err := auth.CheckPassword(u.PasswordHash, password)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, fmt.Errorf("%w: invalid username or password", ErrForbidden)
	}

	token, err := auth.GenerateJWT(s.cfg.JWTSecret, u.ID, u.Username, s.cfg.JWTExpiration)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
