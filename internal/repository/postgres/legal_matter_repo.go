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

type legalMatterRepo struct {
	db *sqlx.DB
}

// NewLegalMatterRepo creates a new PostgreSQL-backed LegalMatterRepository.
func NewLegalMatterRepo(db *sqlx.DB) port.LegalMatterRepository {
	return &legalMatterRepo{db: db}
}

func (r *legalMatterRepo) Create(ctx context.Context, m *domain.LegalMatter) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO legal_matters (id, matter_name, contract_type, parties, effective_date, expiration_date,
			governing_law, contract_value, currency, status, description, lawyer_id, extraction_id,
			created_at, updated_at)
		 VALUES (:id, :matter_name, :contract_type, :parties, :effective_date, :expiration_date,
			:governing_law, :contract_value, :currency, :status, :description, :lawyer_id, :extraction_id,
			:created_at, :updated_at)`, m)
	if err != nil {
		return fmt.Errorf("legalMatterRepo.Create: %w", err)
	}
	return nil
}

func (r *legalMatterRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalMatter, error) {
	var m domain.LegalMatter
	err := r.db.GetContext(ctx, &m, "SELECT * FROM legal_matters WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatterNotFound
		}
		return nil, fmt.Errorf("legalMatterRepo.GetByID: %w", err)
	}
	return &m, nil
}

func (r *legalMatterRepo) List(ctx context.Context, offset, limit int) ([]domain.LegalMatter, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	var matters []domain.LegalMatter
	err = r.db.SelectContext(ctx, &matters,
		"SELECT * FROM legal_matters ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("legalMatterRepo.List: %w", err)
	}
	return matters, total, nil
}

func (r *legalMatterRepo) ListByLawyer(ctx context.Context, lawyerID uuid.UUID) ([]domain.LegalMatter, error) {
	var matters []domain.LegalMatter
	err := r.db.SelectContext(ctx, &matters,
		"SELECT * FROM legal_matters WHERE lawyer_id = $1 ORDER BY created_at DESC", lawyerID)
	if err != nil {
		return nil, fmt.Errorf("legalMatterRepo.ListByLawyer: %w", err)
	}
	return matters, nil
}

func (r *legalMatterRepo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM legal_matters"); err != nil {
		return 0, fmt.Errorf("legalMatterRepo.Count: %w", err)
	}
	return total, nil
}

func (r *legalMatterRepo) Update(ctx context.Context, m *domain.LegalMatter) error {
	m.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx,
		`UPDATE legal_matters SET matter_name = :matter_name, contract_type = :contract_type,
			parties = :parties, effective_date = :effective_date, expiration_date = :expiration_date,
			governing_law = :governing_law, contract_value = :contract_value, currency = :currency,
			status = :status, description = :description, lawyer_id = :lawyer_id,
			extraction_id = :extraction_id, updated_at = :updated_at
		 WHERE id = :id`, m)
	if err != nil {
		return fmt.Errorf("legalMatterRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMatterNotFound
	}
	return nil
}

func (r *legalMatterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM legal_matters WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("legalMatterRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMatterNotFound
	}
	return nil
}

func (r *legalMatterRepo) AssignLawyer(ctx context.Context, lawyerID uuid.UUID, matterIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("legalMatterRepo.AssignLawyer begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for _, id := range matterIDs {
		result, err := tx.ExecContext(ctx,
			"UPDATE legal_matters SET lawyer_id = $1, updated_at = $2 WHERE id = $3",
			lawyerID, now, id)
		if err != nil {
			return fmt.Errorf("legalMatterRepo.AssignLawyer: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.ErrMatterNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("legalMatterRepo.AssignLawyer commit: %w", err)
	}
	return nil
}
