package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"matterdesk/internal/domain"
)

// MockContractExtractionRepo is a mock implementation of port.ContractExtractionRepository.
type MockContractExtractionRepo struct {
	mock.Mock
}

func (m *MockContractExtractionRepo) Create(ctx context.Context, extraction *domain.ContractExtraction) error {
	args := m.Called(ctx, extraction)
	return args.Error(0)
}

func (m *MockContractExtractionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContractExtraction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractExtraction), args.Error(1)
}

func (m *MockContractExtractionRepo) List(ctx context.Context, offset, limit int) ([]domain.ContractExtraction, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ContractExtraction), args.Int(1), args.Error(2)
}

func (m *MockContractExtractionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
