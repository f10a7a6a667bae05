package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"matterdesk/internal/domain"
)

// MockLawyerRepo is a mock implementation of port.LawyerRepository.
type MockLawyerRepo struct {
	mock.Mock
}

func (m *MockLawyerRepo) Create(ctx context.Context, lawyer *domain.Lawyer) error {
	args := m.Called(ctx, lawyer)
	return args.Error(0)
}

func (m *MockLawyerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lawyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lawyer), args.Error(1)
}

func (m *MockLawyerRepo) List(ctx context.Context, offset, limit int) ([]domain.Lawyer, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Lawyer), args.Int(1), args.Error(2)
}

func (m *MockLawyerRepo) Update(ctx context.Context, lawyer *domain.Lawyer) error {
	args := m.Called(ctx, lawyer)
	return args.Error(0)
}

func (m *MockLawyerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
