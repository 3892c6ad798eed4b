package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	revoker    auth.Revoker
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	// Revoker is optional; without it logout only affects the client.
	Revoker auth.Revoker
	Logger  *zap.Logger
}

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	Name       string  `json:"name" validate:"required,notblank"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=6"`
	Phone      *string `json:"phone" validate:"omitnil,max=32"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
	Company    *string `json:"company"`
}

// LoginInput carries credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the outcome of a successful login or registration.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		revoker:    deps.Revoker,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// Register creates a client account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewConflict("Email already registered", map[string]any{"email": "Email already registered"})
	} else if !repository.IsNotFound(err) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleClient,
		Profile: domain.Profile{
			Name:       in.Name,
			Phone:      optionalText(in.Phone),
			Address:    optionalText(in.Address),
			City:       optionalText(in.City),
			PostalCode: optionalText(in.PostalCode),
			Country:    optionalText(in.Country),
			Company:    optionalText(in.Company),
		},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("Email already registered", map[string]any{"email": "Email already registered"})
		}
		return nil, apperrors.MapError(err)
	}

	return s.session(user)
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, in.Password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("password comparison failed", zap.Int64("user_id", user.ID), zap.Error(err))
		}
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}

	return s.session(user)
}

// Logout revokes the token described by claims until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.NewUnauthorized("Authentication required")
	}
	if s.revoker == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.logger.Warn("token revocation failed", zap.Int64("user_id", claims.UserID), zap.Error(err))
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) session(user *domain.User) (*Session, error) {
	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// optionalText trims v and maps blank values to nil.
func optionalText(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
