package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// SubscriptionRepository encapsulates subscription persistence. Reads join
// the linked service (and user where noted) so callers never issue follow-up
// lookups.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	// GetByID joins the user summary and the full service.
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)
	// ListByUser joins the full service, newest first.
	ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error)
	// ListAll joins user and service summaries, newest first.
	ListAll(ctx context.Context) ([]domain.Subscription, error)
	// MarkCancelled cancels an active subscription. It reports false when the
	// row was not active any more.
	MarkCancelled(ctx context.Context, id int64, at time.Time) (bool, error)
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository instantiates repository.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

const subscriptionColumns = `s.id, s.user_id, s.service_id, s.status, s.start_date, s.end_date, s.price, s.period,
               s.cancelled_at, s.created_at, s.updated_at`

const joinedServiceColumns = `sv.id, sv.category, sv.title, sv.description, sv.features, sv.price, sv.period,
               sv.popular, sv.created_at, sv.updated_at`

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	const query = `
        INSERT INTO subscriptions (user_id, service_id, status, start_date, end_date, price, period)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sub.UserID,
		sub.ServiceID,
		sub.Status,
		sub.StartDate,
		sub.EndDate,
		sub.Price,
		sub.Period,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	query := `
        SELECT ` + subscriptionColumns + `,
               u.id, u.name, u.email,
               ` + joinedServiceColumns + `
        FROM subscriptions s
        JOIN users u ON u.id = s.user_id
        JOIN services sv ON sv.id = s.service_id
        WHERE s.id=$1`

	var sub domain.Subscription
	var user domain.UserSummary
	var service domain.Offering
	dest := append(subscriptionDest(&sub), &user.ID, &user.Name, &user.Email)
	dest = append(dest, offeringDest(&service)...)
	if err := r.pool.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		return nil, err
	}
	sub.User = &user
	sub.Service = &service
	return &sub, nil
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	query := `
        SELECT ` + subscriptionColumns + `,
               ` + joinedServiceColumns + `
        FROM subscriptions s
        JOIN services sv ON sv.id = s.service_id
        WHERE s.user_id=$1
        ORDER BY s.created_at DESC, s.id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Subscription{}
	for rows.Next() {
		var sub domain.Subscription
		var service domain.Offering
		dest := append(subscriptionDest(&sub), offeringDest(&service)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		sub.Service = &service
		result = append(result, sub)
	}
	return result, rows.Err()
}

func (r *subscriptionRepository) ListAll(ctx context.Context) ([]domain.Subscription, error) {
	query := `
        SELECT ` + subscriptionColumns + `,
               u.id, u.name, u.email,
               sv.id, sv.title, sv.category
        FROM subscriptions s
        JOIN users u ON u.id = s.user_id
        JOIN services sv ON sv.id = s.service_id
        ORDER BY s.created_at DESC, s.id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Subscription{}
	for rows.Next() {
		var sub domain.Subscription
		var user domain.UserSummary
		var service domain.Offering
		dest := append(subscriptionDest(&sub),
			&user.ID, &user.Name, &user.Email,
			&service.ID, &service.Title, &service.Category,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		sub.User = &user
		sub.Service = &service
		result = append(result, sub)
	}
	return result, rows.Err()
}

// MarkCancelled relies on single-row update atomicity: of two concurrent
// cancellations only one matches the status predicate.
func (r *subscriptionRepository) MarkCancelled(ctx context.Context, id int64, at time.Time) (bool, error) {
	const query = `
        UPDATE subscriptions SET status=$1, cancelled_at=$2, updated_at=NOW()
        WHERE id=$3 AND status=$4`
	cmd, err := r.pool.Exec(ctx, query,
		domain.SubscriptionCancelled,
		at,
		id,
		domain.SubscriptionActive,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func subscriptionDest(sub *domain.Subscription) []any {
	return []any{
		&sub.ID,
		&sub.UserID,
		&sub.ServiceID,
		&sub.Status,
		&sub.StartDate,
		&sub.EndDate,
		&sub.Price,
		&sub.Period,
		&sub.CancelledAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	}
}

func offeringDest(o *domain.Offering) []any {
	return []any{
		&o.ID,
		&o.Category,
		&o.Title,
		&o.Description,
		&o.Features,
		&o.Price,
		&o.Period,
		&o.Popular,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}
