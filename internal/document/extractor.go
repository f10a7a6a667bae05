package document

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"matterdesk/internal/config"
)

// Extractor turns the raw bytes of a document into page-indexed text.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte) (*Document, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.DocumentConfig) (Extractor, error) {
	switch cfg.Provider {
	case "native", "":
		return NewNative(), nil
	case "pdftotext":
		return NewPdfToText(cfg.PdfToTextPath), nil
	default:
		return nil, eris.Errorf("document: unknown provider %q", cfg.Provider)
	}
}

// finish validates the extracted pages and logs the outcome.
func finish(provider string, size int, texts []string) (*Document, error) {
	doc := New(texts)
	if !doc.HasText() {
		return nil, ErrNoText
	}
	zap.L().Info("extracted document text",
		zap.String("provider", provider),
		zap.Int("bytes", size),
		zap.Int("pages", doc.TotalPages()),
		zap.Int("characters", doc.TotalCharacterCount()),
	)
	return doc, nil
}

func parseFailure(err error) error {
	return eris.Wrapf(ErrParseFailure, "%v", err)
}
