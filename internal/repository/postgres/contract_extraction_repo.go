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

type contractExtractionRepo struct {
	db *sqlx.DB
}

// NewContractExtractionRepo creates a new PostgreSQL-backed ContractExtractionRepository.
func NewContractExtractionRepo(db *sqlx.DB) port.ContractExtractionRepository {
	return &contractExtractionRepo{db: db}
}

func (r *contractExtractionRepo) Create(ctx context.Context, e *domain.ContractExtraction) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contract_extractions (id, source, source_kind, storage_key, model, page_count,
			character_count, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Source, e.SourceKind, e.StorageKey, e.Model, e.PageCount,
		e.CharacterCount, e.Result, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("contractExtractionRepo.Create: %w", err)
	}
	return nil
}

func (r *contractExtractionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContractExtraction, error) {
	var e domain.ContractExtraction
	err := r.db.GetContext(ctx, &e, "SELECT * FROM contract_extractions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExtractionNotFound
		}
		return nil, fmt.Errorf("contractExtractionRepo.GetByID: %w", err)
	}
	return &e, nil
}

// List omits the result payload; use GetByID for the full record.
func (r *contractExtractionRepo) List(ctx context.Context, offset, limit int) ([]domain.ContractExtraction, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM contract_extractions"); err != nil {
		return nil, 0, fmt.Errorf("contractExtractionRepo.List count: %w", err)
	}

	var extractions []domain.ContractExtraction
	err := r.db.SelectContext(ctx, &extractions,
		`SELECT id, source, source_kind, storage_key, model, page_count, character_count,
			'null'::jsonb AS result, created_at
		 FROM contract_extractions ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("contractExtractionRepo.List: %w", err)
	}
	return extractions, total, nil
}

func (r *contractExtractionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM contract_extractions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("contractExtractionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExtractionNotFound
	}
	return nil
}
