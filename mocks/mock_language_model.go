package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"matterdesk/internal/domain"
)

// MockLanguageModel is a mock implementation of port.LanguageModel.
type MockLanguageModel struct {
	mock.Mock
}

func (m *MockLanguageModel) Generate(ctx context.Context, model, prompt string) (string, error) {
	args := m.Called(ctx, model, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLanguageModel) Chat(ctx context.Context, model, message string) (string, error) {
	args := m.Called(ctx, model, message)
	return args.String(0), args.Error(1)
}

func (m *MockLanguageModel) IsHealthy(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockLanguageModel) ListModels(ctx context.Context) ([]domain.LLMModel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LLMModel), args.Error(1)
}

func (m *MockLanguageModel) DefaultModel() string {
	args := m.Called()
	return args.String(0)
}
