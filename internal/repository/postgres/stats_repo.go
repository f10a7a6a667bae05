package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"matterdesk/internal/domain"
	"matterdesk/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const statsQuery = `SELECT
	COUNT(*) AS total_matters,
	COUNT(CASE WHEN status = 'Draft' THEN 1 END) AS matters_draft,
	COUNT(CASE WHEN status = 'Active' THEN 1 END) AS matters_active,
	COUNT(CASE WHEN status = 'Expired' THEN 1 END) AS matters_expired,
	COUNT(CASE WHEN status = 'Closed' THEN 1 END) AS matters_closed,
	COUNT(CASE WHEN lawyer_id IS NULL THEN 1 END) AS unassigned_matters,
	(SELECT COUNT(*) FROM lawyers) AS total_lawyers,
	(SELECT COUNT(*) FROM contract_extractions) AS total_extractions
FROM legal_matters`

func (r *statsRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, statsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats: %w", err)
	}
	return &stats, nil
}
