package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// ProjectRepository manages portfolio entries.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository builds the repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectColumns = `id, name, description, technologies, image, preview_url, details_url, created_at, updated_at`

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (name, description, technologies, image, preview_url, details_url)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.Technologies,
		project.Image,
		project.PreviewURL,
		project.DetailsURL,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET name=$1, description=$2, technologies=$3, image=$4, preview_url=$5, details_url=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.Technologies,
		project.Image,
		project.PreviewURL,
		project.DetailsURL,
		project.ID,
	).Scan(&project.UpdatedAt)
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id=$1`
	return scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *project)
	}
	return result, rows.Err()
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Technologies,
		&p.Image,
		&p.PreviewURL,
		&p.DetailsURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
