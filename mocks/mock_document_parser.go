package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"matterdesk/internal/document"
	"matterdesk/internal/domain"
)

// MockDocumentExtractor is a mock implementation of port.DocumentExtractor.
type MockDocumentExtractor struct {
	mock.Mock
}

func (m *MockDocumentExtractor) ExtractText(ctx context.Context, data []byte) (*document.Document, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

// MockContractParser is a mock implementation of port.ContractParser.
type MockContractParser struct {
	mock.Mock
}

func (m *MockContractParser) Extract(ctx context.Context, doc *document.Document) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

func (m *MockContractParser) Model() string {
	args := m.Called()
	return args.String(0)
}
