package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if err := args.Error(0); err != nil {
		return err
	}
	user.ID = 1
	return nil
}

func (m *userRepoMock) UpdateProfile(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userRepoMock) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *userRepoMock) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

type offeringRepoMock struct{ mock.Mock }

func (m *offeringRepoMock) Create(ctx context.Context, offering *domain.Offering) error {
	args := m.Called(ctx, offering)
	if err := args.Error(0); err != nil {
		return err
	}
	offering.ID = 10
	return nil
}

func (m *offeringRepoMock) Update(ctx context.Context, offering *domain.Offering) error {
	return m.Called(ctx, offering).Error(0)
}

func (m *offeringRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *offeringRepoMock) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	args := m.Called(ctx, id)
	offering, _ := args.Get(0).(*domain.Offering)
	return offering, args.Error(1)
}

func (m *offeringRepoMock) List(ctx context.Context) ([]domain.Offering, error) {
	args := m.Called(ctx)
	offerings, _ := args.Get(0).([]domain.Offering)
	return offerings, args.Error(1)
}

type projectRepoMock struct{ mock.Mock }

func (m *projectRepoMock) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	if err := args.Error(0); err != nil {
		return err
	}
	project.ID = 20
	return nil
}

func (m *projectRepoMock) Update(ctx context.Context, project *domain.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *projectRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *projectRepoMock) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	project, _ := args.Get(0).(*domain.Project)
	return project, args.Error(1)
}

func (m *projectRepoMock) List(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	projects, _ := args.Get(0).([]domain.Project)
	return projects, args.Error(1)
}

type subscriptionRepoMock struct{ mock.Mock }

func (m *subscriptionRepoMock) Create(ctx context.Context, sub *domain.Subscription) error {
	args := m.Called(ctx, sub)
	if err := args.Error(0); err != nil {
		return err
	}
	sub.ID = 30
	return nil
}

func (m *subscriptionRepoMock) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	args := m.Called(ctx, id)
	sub, _ := args.Get(0).(*domain.Subscription)
	return sub, args.Error(1)
}

func (m *subscriptionRepoMock) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	args := m.Called(ctx, userID)
	subs, _ := args.Get(0).([]domain.Subscription)
	return subs, args.Error(1)
}

func (m *subscriptionRepoMock) ListAll(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)
	subs, _ := args.Get(0).([]domain.Subscription)
	return subs, args.Error(1)
}

func (m *subscriptionRepoMock) MarkCancelled(ctx context.Context, id int64, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func listPtr(items ...string) *[]string { return &items }
