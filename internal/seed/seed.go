// Package seed loads demo accounts, the service catalog and sample projects.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
)

// Repositories the seeder writes through.
type Repositories struct {
	Users         repository.UserRepository
	Offerings     repository.OfferingRepository
	Projects      repository.ProjectRepository
	Subscriptions repository.SubscriptionRepository
}

// Account is a seeded login.
type Account struct {
	Email    string
	Password string
	Role     domain.Role
	Profile  domain.Profile
}

// Summary counts what Run created.
type Summary struct {
	Users         int
	Offerings     int
	Projects      int
	Subscriptions int
}

// Run inserts missing demo rows. Existing users, offerings and projects are
// matched by email, title+category and name respectively and left untouched,
// so running it twice is safe.
func Run(ctx context.Context, repos Repositories, bcryptCost int, logger *zap.Logger) (Summary, error) {
	var sum Summary

	users := make(map[string]*domain.User, len(Accounts))
	for _, acct := range Accounts {
		user, created, err := ensureUser(ctx, repos.Users, acct, bcryptCost)
		if err != nil {
			return sum, fmt.Errorf("seed user %s: %w", acct.Email, err)
		}
		if created {
			sum.Users++
			logger.Info("user created", zap.String("email", user.Email), zap.String("role", string(user.Role)))
		}
		users[acct.Email] = user
	}

	existing, err := repos.Offerings.List(ctx)
	if err != nil {
		return sum, fmt.Errorf("list offerings: %w", err)
	}
	byTitle := make(map[string]*domain.Offering, len(Offerings))
	for i := range existing {
		byTitle[offeringKey(&existing[i])] = &existing[i]
	}
	for i := range Offerings {
		o := Offerings[i]
		if found, ok := byTitle[offeringKey(&o)]; ok {
			byTitle[o.Title] = found
			continue
		}
		if err := repos.Offerings.Create(ctx, &o); err != nil {
			return sum, fmt.Errorf("seed offering %s: %w", o.Title, err)
		}
		sum.Offerings++
		byTitle[offeringKey(&o)] = &o
		byTitle[o.Title] = &o
		logger.Info("service created", zap.String("title", o.Title))
	}

	projects, err := repos.Projects.List(ctx)
	if err != nil {
		return sum, fmt.Errorf("list projects: %w", err)
	}
	names := make(map[string]bool, len(projects))
	for _, p := range projects {
		names[p.Name] = true
	}
	for i := range Projects {
		p := Projects[i]
		if names[p.Name] {
			continue
		}
		if err := repos.Projects.Create(ctx, &p); err != nil {
			return sum, fmt.Errorf("seed project %s: %w", p.Name, err)
		}
		sum.Projects++
		logger.Info("project created", zap.String("name", p.Name))
	}

	client := users[clientEmail]
	if client == nil {
		return sum, nil
	}
	current, err := repos.Subscriptions.ListByUser(ctx, client.ID)
	if err != nil {
		return sum, fmt.Errorf("list subscriptions: %w", err)
	}
	if len(current) > 0 {
		return sum, nil
	}
	for _, s := range sampleSubscriptions {
		offering := byTitle[s.title]
		if offering == nil {
			continue
		}
		sub := domain.NewSubscription(client.ID, offering, s.start)
		if err := repos.Subscriptions.Create(ctx, sub); err != nil {
			return sum, fmt.Errorf("seed subscription %s: %w", s.title, err)
		}
		sum.Subscriptions++
		logger.Info("subscription created", zap.String("service", s.title))
	}
	return sum, nil
}

func ensureUser(ctx context.Context, users repository.UserRepository, acct Account, cost int) (*domain.User, bool, error) {
	user, err := users.GetByEmail(ctx, acct.Email)
	if err == nil {
		return user, false, nil
	}
	if !repository.IsNotFound(err) {
		return nil, false, err
	}

	hash, err := auth.HashPassword(acct.Password, cost)
	if err != nil {
		return nil, false, err
	}
	user = &domain.User{
		Email:        acct.Email,
		PasswordHash: hash,
		Role:         acct.Role,
		Profile:      acct.Profile,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func offeringKey(o *domain.Offering) string {
	return o.Category + "\x00" + o.Title
}

const clientEmail = "cliente@example.com"

func text(s string) *string { return &s }

// Accounts are the demo logins.
var Accounts = []Account{
	{
		Email:    "admin@example.com",
		Password: "admin123",
		Role:     domain.RoleAdmin,
		Profile:  domain.Profile{Name: "Administrador"},
	},
	{
		Email:    clientEmail,
		Password: "cliente123",
		Role:     domain.RoleClient,
		Profile: domain.Profile{
			Name:       "Cliente Demo",
			Phone:      text("+34 600 123 456"),
			Address:    text("Calle Ejemplo 123"),
			City:       text("Madrid"),
			PostalCode: text("28001"),
			Country:    text("España"),
			Company:    text("Empresa Demo S.L."),
		},
	},
}

var sampleSubscriptions = []struct {
	title string
	start time.Time
}{
	{"Hosting con Dominio Custom", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	{"Desarrollo Web", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
}
