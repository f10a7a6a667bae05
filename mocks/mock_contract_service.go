package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"matterdesk/internal/document"
	"matterdesk/internal/domain"
	"matterdesk/internal/service"
)

// MockContractService is a mock implementation of service.ContractService.
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) RetrieveDefault(ctx context.Context) (*document.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockContractService) ExtractDefault(ctx context.Context) (*service.ExtractionOutput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractionOutput), args.Error(1)
}

func (m *MockContractService) ExtractFromText(ctx context.Context, text string) (*service.ExtractionOutput, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractionOutput), args.Error(1)
}

func (m *MockContractService) ExtractFromFile(ctx context.Context, name string, data []byte) (*service.ExtractionOutput, error) {
	args := m.Called(ctx, name, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractionOutput), args.Error(1)
}

func (m *MockContractService) Get(ctx context.Context, id uuid.UUID) (*service.ExtractionOutput, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractionOutput), args.Error(1)
}

func (m *MockContractService) List(ctx context.Context, offset, limit int) ([]domain.ContractExtraction, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ContractExtraction), args.Int(1), args.Error(2)
}

func (m *MockContractService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContractService) Export(ctx context.Context, id uuid.UUID, w io.Writer) (*domain.ContractExtraction, error) {
	args := m.Called(ctx, id, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractExtraction), args.Error(1)
}

func (m *MockContractService) Ask(ctx context.Context, id uuid.UUID, input service.AskInput) (*service.AskOutput, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AskOutput), args.Error(1)
}
