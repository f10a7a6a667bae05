package port

import (
	"context"

	"matterdesk/internal/document"
	"matterdesk/internal/domain"
)

// DocumentExtractor turns the raw bytes of a contract into page-indexed text.
type DocumentExtractor interface {
	ExtractText(ctx context.Context, data []byte) (*document.Document, error)
}

// ContractParser extracts the structured fields of a contract document.
type ContractParser interface {
	Extract(ctx context.Context, doc *document.Document) (*domain.ExtractionResult, error)
	Model() string
}
