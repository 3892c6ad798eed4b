package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// OfferingRepository manages the services catalog.
type OfferingRepository interface {
	Create(ctx context.Context, offering *domain.Offering) error
	Update(ctx context.Context, offering *domain.Offering) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Offering, error)
	List(ctx context.Context) ([]domain.Offering, error)
}

type offeringRepository struct {
	pool *pgxpool.Pool
}

// NewOfferingRepository builds the repository.
func NewOfferingRepository(pool *pgxpool.Pool) OfferingRepository {
	return &offeringRepository{pool: pool}
}

const offeringColumns = `id, category, title, description, features, price, period, popular, created_at, updated_at`

func (r *offeringRepository) Create(ctx context.Context, offering *domain.Offering) error {
	const query = `
        INSERT INTO services (category, title, description, features, price, period, popular)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		offering.Category,
		offering.Title,
		offering.Description,
		offering.Features,
		offering.Price,
		offering.Period,
		offering.Popular,
	).Scan(&offering.ID, &offering.CreatedAt, &offering.UpdatedAt)
}

func (r *offeringRepository) Update(ctx context.Context, offering *domain.Offering) error {
	const query = `
        UPDATE services SET category=$1, title=$2, description=$3, features=$4, price=$5, period=$6, popular=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		offering.Category,
		offering.Title,
		offering.Description,
		offering.Features,
		offering.Price,
		offering.Period,
		offering.Popular,
		offering.ID,
	).Scan(&offering.UpdatedAt)
}

func (r *offeringRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *offeringRepository) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM services WHERE id=$1`
	return scanOffering(r.pool.QueryRow(ctx, query, id))
}

func (r *offeringRepository) List(ctx context.Context) ([]domain.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM services ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Offering{}
	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *offering)
	}
	return result, rows.Err()
}

func scanOffering(row pgx.Row) (*domain.Offering, error) {
	var o domain.Offering
	if err := row.Scan(
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
	); err != nil {
		return nil, err
	}
	return &o, nil
}
