package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/licitation-service/internal/domain"
)

// LicitationRepository defines persistence access for licitations.
type LicitationRepository interface {
	Create(ctx context.Context, licitation *domain.Licitation) error
	Update(ctx context.Context, licitation *domain.Licitation) error
	GetByID(ctx context.Context, id string) (*domain.Licitation, error)
	List(ctx context.Context) ([]domain.Licitation, error)
	Delete(ctx context.Context, id string) error
}

type licitationRepository struct {
	pool *pgxpool.Pool
}

// NewLicitationRepository returns a Postgres-backed implementation.
func NewLicitationRepository(pool *pgxpool.Pool) LicitationRepository {
	return &licitationRepository{pool: pool}
}

func (r *licitationRepository) Create(ctx context.Context, licitation *domain.Licitation) error {
	const query = `
        INSERT INTO licitations (title, description, start_date, end_date, is_lowest_price, user_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		licitation.Title,
		licitation.Description,
		licitation.StartDate,
		licitation.EndDate,
		licitation.IsLowestPrice,
		licitation.CreatorID,
	).Scan(&licitation.ID, &licitation.CreatedAt, &licitation.UpdatedAt)
}

func (r *licitationRepository) Update(ctx context.Context, licitation *domain.Licitation) error {
	const query = `
        UPDATE licitations
        SET title=$1, description=$2, start_date=$3, end_date=$4, is_lowest_price=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		licitation.Title,
		licitation.Description,
		licitation.StartDate,
		licitation.EndDate,
		licitation.IsLowestPrice,
		licitation.ID,
	).Scan(&licitation.UpdatedAt)
}

const licitationSelect = `
        SELECT l.id, l.title, l.description, l.start_date, l.end_date, l.is_lowest_price,
               l.user_id, l.created_at, l.updated_at,
               u.id, u.username, u.email
        FROM licitations l
        LEFT JOIN users u ON u.id = l.user_id`

func (r *licitationRepository) GetByID(ctx context.Context, id string) (*domain.Licitation, error) {
	row := r.pool.QueryRow(ctx, licitationSelect+` WHERE l.id=$1`, id)
	licitation, err := scanLicitation(row)
	if err != nil {
		return nil, err
	}
	return licitation, nil
}

func (r *licitationRepository) List(ctx context.Context) ([]domain.Licitation, error) {
	rows, err := r.pool.Query(ctx, licitationSelect+` ORDER BY l.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	licitations := []domain.Licitation{}
	for rows.Next() {
		licitation, err := scanLicitation(rows)
		if err != nil {
			return nil, err
		}
		licitations = append(licitations, *licitation)
	}
	return licitations, rows.Err()
}

func (r *licitationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM licitations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanLicitation(row pgx.Row) (*domain.Licitation, error) {
	var (
		licitation      domain.Licitation
		creatorID       *string
		creatorUsername *string
		creatorEmail    *string
	)
	if err := row.Scan(
		&licitation.ID,
		&licitation.Title,
		&licitation.Description,
		&licitation.StartDate,
		&licitation.EndDate,
		&licitation.IsLowestPrice,
		&licitation.CreatorID,
		&licitation.CreatedAt,
		&licitation.UpdatedAt,
		&creatorID,
		&creatorUsername,
		&creatorEmail,
	); err != nil {
		return nil, err
	}
	if creatorID != nil {
		licitation.Creator = &domain.PublicUser{
			ID:       *creatorID,
			Username: *creatorUsername,
			Email:    *creatorEmail,
		}
	}
	return &licitation, nil
}
