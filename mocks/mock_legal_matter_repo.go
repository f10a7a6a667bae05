package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"matterdesk/internal/domain"
)

// MockLegalMatterRepo is a mock implementation of port.LegalMatterRepository.
type MockLegalMatterRepo struct {
	mock.Mock
}

func (m *MockLegalMatterRepo) Create(ctx context.Context, matter *domain.LegalMatter) error {
	args := m.Called(ctx, matter)
	return args.Error(0)
}

func (m *MockLegalMatterRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalMatter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalMatter), args.Error(1)
}

func (m *MockLegalMatterRepo) List(ctx context.Context, offset, limit int) ([]domain.LegalMatter, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.LegalMatter), args.Int(1), args.Error(2)
}

func (m *MockLegalMatterRepo) ListByLawyer(ctx context.Context, lawyerID uuid.UUID) ([]domain.LegalMatter, error) {
	args := m.Called(ctx, lawyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LegalMatter), args.Error(1)
}

func (m *MockLegalMatterRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLegalMatterRepo) Update(ctx context.Context, matter *domain.LegalMatter) error {
	args := m.Called(ctx, matter)
	return args.Error(0)
}

func (m *MockLegalMatterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLegalMatterRepo) AssignLawyer(ctx context.Context, lawyerID uuid.UUID, matterIDs []uuid.UUID) error {
	args := m.Called(ctx, lawyerID, matterIDs)
	return args.Error(0)
}
