package port

import (
	"context"

	"matterdesk/internal/domain"
)

// LanguageModel abstracts the locally hosted model server.
type LanguageModel interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
	Chat(ctx context.Context, model, message string) (string, error)
	IsHealthy(ctx context.Context) bool
	ListModels(ctx context.Context) ([]domain.LLMModel, error)
	DefaultModel() string
}
