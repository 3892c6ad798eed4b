package http

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// memStore backs the repository interfaces with maps for router tests.
type memStore struct {
	mu            sync.Mutex
	nextID        int64
	users         map[int64]domain.User
	offerings     map[int64]domain.Offering
	projects      map[int64]domain.Project
	subscriptions map[int64]domain.Subscription
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[int64]domain.User{},
		offerings:     map[int64]domain.Offering{},
		projects:      map[int64]domain.Project{},
		subscriptions: map[int64]domain.Subscription{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r memUsers) UpdateProfile(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = *user
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memUsers) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memOfferings struct{ *memStore }

func (r memOfferings) Create(_ context.Context, offering *domain.Offering) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	offering.ID = r.id()
	r.offerings[offering.ID] = *offering
	return nil
}

func (r memOfferings) Update(_ context.Context, offering *domain.Offering) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offerings[offering.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.offerings[offering.ID] = *offering
	return nil
}

func (r memOfferings) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offerings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.offerings, id)
	return nil
}

func (r memOfferings) GetByID(_ context.Context, id int64) (*domain.Offering, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offering, ok := r.offerings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &offering, nil
}

func (r memOfferings) List(_ context.Context) ([]domain.Offering, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Offering, 0, len(r.offerings))
	for _, offering := range r.offerings {
		out = append(out, offering)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memProjects struct{ *memStore }

func (r memProjects) Create(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	project.ID = r.id()
	r.projects[project.ID] = *project
	return nil
}

func (r memProjects) Update(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.projects[project.ID] = *project
	return nil
}

func (r memProjects) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.projects, id)
	return nil
}

func (r memProjects) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &project, nil
}

func (r memProjects) List(_ context.Context) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Project, 0, len(r.projects))
	for _, project := range r.projects {
		out = append(out, project)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memSubscriptions struct{ *memStore }

func (r memSubscriptions) Create(_ context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.ID = r.id()
	r.subscriptions[sub.ID] = *sub
	return nil
}

func (r memSubscriptions) join(sub domain.Subscription) domain.Subscription {
	if offering, ok := r.offerings[sub.ServiceID]; ok {
		sub.Service = &offering
	}
	if user, ok := r.users[sub.UserID]; ok {
		sub.User = &domain.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return sub
}

func (r memSubscriptions) GetByID(_ context.Context, id int64) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subscriptions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	sub = r.join(sub)
	return &sub, nil
}

func (r memSubscriptions) ListByUser(_ context.Context, userID int64) ([]domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Subscription
	for _, sub := range r.subscriptions {
		if sub.UserID == userID {
			joined := r.join(sub)
			joined.User = nil
			out = append(out, joined)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memSubscriptions) ListAll(_ context.Context) ([]domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Subscription, 0, len(r.subscriptions))
	for _, sub := range r.subscriptions {
		out = append(out, r.join(sub))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memSubscriptions) MarkCancelled(_ context.Context, id int64, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subscriptions[id]
	if !ok {
		return false, pgx.ErrNoRows
	}
	if !sub.Cancel(at) {
		return false, nil
	}
	r.subscriptions[id] = sub
	return true, nil
}
