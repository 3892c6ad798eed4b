package service

import (
	"context"
	"strings"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// UserService exposes account reads and profile edits.
type UserService struct {
	users repository.UserRepository
}

// ProfileInput is a partial profile update; nil fields are left unchanged and
// blank optional fields are cleared.
type ProfileInput struct {
	Name       *string `json:"name" validate:"omitnil,notblank"`
	Phone      *string `json:"phone" validate:"omitnil,max=32"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
	Company    *string `json:"company"`
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Profile returns the caller's account.
func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.Get(ctx, userID)
}

// UpdateProfile applies in to the caller's profile. Email and role never
// change here.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (*domain.User, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	applyOptional(&user.Phone, in.Phone)
	applyOptional(&user.Address, in.Address)
	applyOptional(&user.City, in.City)
	applyOptional(&user.PostalCode, in.PostalCode)
	applyOptional(&user.Country, in.Country)
	applyOptional(&user.Company, in.Company)

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns every account, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Get returns one account.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func applyOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	*dst = optionalText(v)
}
