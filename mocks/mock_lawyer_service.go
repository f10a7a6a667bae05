package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"matterdesk/internal/domain"
	"matterdesk/internal/service"
)

// MockLawyerService is a mock implementation of service.LawyerService.
type MockLawyerService struct {
	mock.Mock
}

func (m *MockLawyerService) Create(ctx context.Context, input service.CreateLawyerInput) (*domain.Lawyer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lawyer), args.Error(1)
}

func (m *MockLawyerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lawyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lawyer), args.Error(1)
}

func (m *MockLawyerService) List(ctx context.Context, offset, limit int) ([]domain.Lawyer, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Lawyer), args.Int(1), args.Error(2)
}

func (m *MockLawyerService) Update(ctx context.Context, id uuid.UUID, input service.UpdateLawyerInput) (*domain.Lawyer, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lawyer), args.Error(1)
}

func (m *MockLawyerService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLawyerService) Matters(ctx context.Context, id uuid.UUID) ([]domain.LegalMatter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LegalMatter), args.Error(1)
}

func (m *MockLawyerService) AssignMatters(ctx context.Context, id uuid.UUID, matterIDs []uuid.UUID) ([]domain.LegalMatter, error) {
	args := m.Called(ctx, id, matterIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LegalMatter), args.Error(1)
}
