package port

import (
	"context"

	"github.com/google/uuid"

	"matterdesk/internal/domain"
)

// LawyerRepository defines the contract for lawyer persistence.
type LawyerRepository interface {
	Create(ctx context.Context, lawyer *domain.Lawyer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lawyer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Lawyer, int, error)
	Update(ctx context.Context, lawyer *domain.Lawyer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LegalMatterRepository defines the contract for legal matter persistence.
type LegalMatterRepository interface {
	Create(ctx context.Context, matter *domain.LegalMatter) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalMatter, error)
	List(ctx context.Context, offset, limit int) ([]domain.LegalMatter, int, error)
	ListByLawyer(ctx context.Context, lawyerID uuid.UUID) ([]domain.LegalMatter, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, matter *domain.LegalMatter) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AssignLawyer sets the lawyer of every listed matter in one transaction.
	// It fails with ErrMatterNotFound if any matter does not exist.
	AssignLawyer(ctx context.Context, lawyerID uuid.UUID, matterIDs []uuid.UUID) error
}

// ContractExtractionRepository defines the contract for extraction persistence.
type ContractExtractionRepository interface {
	Create(ctx context.Context, extraction *domain.ContractExtraction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ContractExtraction, error)
	List(ctx context.Context, offset, limit int) ([]domain.ContractExtraction, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
