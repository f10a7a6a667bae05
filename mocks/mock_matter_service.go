package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"matterdesk/internal/domain"
	"matterdesk/internal/service"
)

// MockMatterService is a mock implementation of service.MatterService.
type MockMatterService struct {
	mock.Mock
}

func (m *MockMatterService) Create(ctx context.Context, input service.CreateMatterInput) (*domain.LegalMatter, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalMatter), args.Error(1)
}

func (m *MockMatterService) GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalMatter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalMatter), args.Error(1)
}

func (m *MockMatterService) List(ctx context.Context, offset, limit int) ([]domain.LegalMatter, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.LegalMatter), args.Int(1), args.Error(2)
}

func (m *MockMatterService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockMatterService) Update(ctx context.Context, id uuid.UUID, input service.UpdateMatterInput) (*domain.LegalMatter, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalMatter), args.Error(1)
}

func (m *MockMatterService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMatterService) ListByLawyer(ctx context.Context, lawyerID uuid.UUID) ([]domain.LegalMatter, error) {
	args := m.Called(ctx, lawyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LegalMatter), args.Error(1)
}

func (m *MockMatterService) AssignLawyer(ctx context.Context, id, lawyerID uuid.UUID) (*domain.LegalMatter, error) {
	args := m.Called(ctx, id, lawyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalMatter), args.Error(1)
}

func (m *MockMatterService) UnassignLawyer(ctx context.Context, id uuid.UUID) (*domain.LegalMatter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalMatter), args.Error(1)
}

func (m *MockMatterService) CreateFromExtraction(ctx context.Context, extractionID uuid.UUID) (*domain.LegalMatter, error) {
	args := m.Called(ctx, extractionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalMatter), args.Error(1)
}

func (m *MockMatterService) ExportCSV(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
