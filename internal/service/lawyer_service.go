package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"matterdesk/internal/domain"
	"matterdesk/internal/port"
)

// CreateLawyerInput is the DTO for creating a lawyer.
type CreateLawyerInput struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	CompanyName string `json:"company_name"`
}

// UpdateLawyerInput is the DTO for updating a lawyer.
type UpdateLawyerInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	CompanyName *string `json:"company_name"`
}

// LawyerService defines the lawyer management contract.
type LawyerService interface {
	Create(ctx context.Context, input CreateLawyerInput) (*domain.Lawyer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lawyer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Lawyer, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateLawyerInput) (*domain.Lawyer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Matters(ctx context.Context, id uuid.UUID) ([]domain.LegalMatter, error)
	AssignMatters(ctx context.Context, id uuid.UUID, matterIDs []uuid.UUID) ([]domain.LegalMatter, error)
}

type lawyerService struct {
	repo       port.LawyerRepository
	matterRepo port.LegalMatterRepository
}

// NewLawyerService creates a new LawyerService implementation.
func NewLawyerService(repo port.LawyerRepository, matterRepo port.LegalMatterRepository) LawyerService {
	return &lawyerService{repo: repo, matterRepo: matterRepo}
}

func (s *lawyerService) Create(ctx context.Context, input CreateLawyerInput) (*domain.Lawyer, error) {
	lawyer := &domain.Lawyer{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		CompanyName: strings.TrimSpace(input.CompanyName),
	}
	if err := validateLawyer(lawyer); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, lawyer); err != nil {
		return nil, err
	}
	return lawyer, nil
}

func (s *lawyerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lawyer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *lawyerService) List(ctx context.Context, offset, limit int) ([]domain.Lawyer, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *lawyerService) Update(ctx context.Context, id uuid.UUID, input UpdateLawyerInput) (*domain.Lawyer, error) {
	lawyer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		lawyer.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		lawyer.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.CompanyName != nil {
		lawyer.CompanyName = strings.TrimSpace(*input.CompanyName)
	}
	if err := validateLawyer(lawyer); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, lawyer); err != nil {
		return nil, err
	}
	return lawyer, nil
}

func (s *lawyerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *lawyerService) Matters(ctx context.Context, id uuid.UUID) ([]domain.LegalMatter, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.matterRepo.ListByLawyer(ctx, id)
}

func (s *lawyerService) AssignMatters(ctx context.Context, id uuid.UUID, matterIDs []uuid.UUID) ([]domain.LegalMatter, error) {
	if len(matterIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one matter is required", domain.ErrInvalidMatter)
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.matterRepo.AssignLawyer(ctx, id, matterIDs); err != nil {
		return nil, err
	}
	return s.matterRepo.ListByLawyer(ctx, id)
}

func validateLawyer(l *domain.Lawyer) error {
	if l.FirstName == "" || l.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", domain.ErrInvalidLawyer)
	}
	return nil
}
