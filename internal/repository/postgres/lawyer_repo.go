package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"matterdesk/internal/domain"
	"matterdesk/internal/port"
)

type lawyerRepo struct {
	db *sqlx.DB
}

// NewLawyerRepo creates a new PostgreSQL-backed LawyerRepository.
func NewLawyerRepo(db *sqlx.DB) port.LawyerRepository {
	return &lawyerRepo{db: db}
}

func (r *lawyerRepo) Create(ctx context.Context, l *domain.Lawyer) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO lawyers (id, first_name, last_name, company_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.FirstName, l.LastName, l.CompanyName, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("lawyerRepo.Create: %w", err)
	}
	return nil
}

func (r *lawyerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lawyer, error) {
	var l domain.Lawyer
	err := r.db.GetContext(ctx, &l, "SELECT * FROM lawyers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLawyerNotFound
		}
		return nil, fmt.Errorf("lawyerRepo.GetByID: %w", err)
	}
	return &l, nil
}

func (r *lawyerRepo) List(ctx context.Context, offset, limit int) ([]domain.Lawyer, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM lawyers"); err != nil {
		return nil, 0, fmt.Errorf("lawyerRepo.List count: %w", err)
	}

	var lawyers []domain.Lawyer
	err := r.db.SelectContext(ctx, &lawyers,
		"SELECT * FROM lawyers ORDER BY last_name, first_name LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("lawyerRepo.List: %w", err)
	}
	return lawyers, total, nil
}

func (r *lawyerRepo) Update(ctx context.Context, l *domain.Lawyer) error {
	l.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE lawyers SET first_name = $1, last_name = $2, company_name = $3, updated_at = $4
		 WHERE id = $5`,
		l.FirstName, l.LastName, l.CompanyName, l.UpdatedAt, l.ID)
	if err != nil {
		return fmt.Errorf("lawyerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrLawyerNotFound
	}
	return nil
}

func (r *lawyerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM lawyers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("lawyerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrLawyerNotFound
	}
	return nil
}
