package extraction

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"matterdesk/internal/config"
	"matterdesk/internal/document"
	"matterdesk/internal/domain"
)

const defaultConcurrency = 4

// Generator sends one prompt to a language model and returns its answer.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Pipeline extracts every field of an ExtractionResult from a contract with
// one prompt per field.
type Pipeline struct {
	llm         Generator
	model       string
	concurrency int
	now         func() time.Time
}

// NewPipeline creates a Pipeline. model may be empty to use the generator's
// default model.
func NewPipeline(llm Generator, model string, cfg config.ExtractionConfig) *Pipeline {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Pipeline{
		llm:         llm,
		model:       model,
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Model returns the model name sent with every prompt.
func (p *Pipeline) Model() string {
	return p.model
}

// ExtractText wraps text as a single-page document and extracts it.
func (p *Pipeline) ExtractText(ctx context.Context, text string) (*domain.ExtractionResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, eris.Wrap(domain.ErrEmptyContractText, "extraction: failed to extract contract information")
	}
	return p.Extract(ctx, document.NewText(text))
}

// Extract runs every field prompt against the document text. A field whose
// prompt or parse fails keeps its default value; only a missing source text
// or a canceled context fails the whole call.
func (p *Pipeline) Extract(ctx context.Context, doc *document.Document) (*domain.ExtractionResult, error) {
	if doc == nil || !doc.HasText() {
		return nil, eris.Wrap(domain.ErrEmptyContractText, "extraction: failed to extract contract information")
	}

	text := doc.FullText()
	result := domain.NewExtractionResult(text, p.now())
	start := time.Now()

	zap.L().Info("starting contract extraction",
		zap.Int("pages", doc.TotalPages()),
		zap.Int("characters", doc.TotalCharacterCount()),
		zap.Int("fields", len(fieldSpecs)),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i := range fieldSpecs {
		spec := &fieldSpecs[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.extractField(gctx, spec, text, result)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "extraction: failed to extract contract information")
	}

	zap.L().Info("contract extraction complete",
		zap.Int("pages", doc.TotalPages()),
		zap.Int("characters", doc.TotalCharacterCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// extractField runs one prompt and writes only its own field of result.
func (p *Pipeline) extractField(ctx context.Context, spec *fieldSpec, text string, result *domain.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("field extraction panicked, using default",
				zap.String("field", string(spec.Field)),
				zap.Any("panic", r),
			)
		}
	}()

	response, err := p.llm.Generate(ctx, p.model, spec.prompt(text))
	if err != nil {
		zap.L().Warn("field extraction failed, using default",
			zap.String("field", string(spec.Field)),
			zap.Error(err),
		)
		return
	}

	switch spec.Strategy {
	case strategyList:
		items := parseList(response, spec.isSentinel)
		switch spec.Field {
		case FieldParties:
			result.Parties = items
		case FieldKeyObligations:
			result.KeyObligations = items
		case FieldTerminationClauses:
			result.TerminationClauses = items
		case FieldIPClauses:
			result.IntellectualPropertyClauses = items
		case FieldConfidentialityTerms:
			result.ConfidentialityTerms = items
		}
	case strategyDates:
		result.KeyDates = parseDates(response, spec.isSentinel)
	case strategyFinancial:
		result.FinancialTerms = parseFinancialTerms(response, spec.isSentinel)
	case strategyScalar:
		value := parseScalar(response, spec.Default)
		switch spec.Field {
		case FieldGoverningLaw:
			result.GoverningLaw = value
		case FieldContractType:
			result.ContractType = value
		case FieldSummary:
			result.Summary = value
		}
	}

	zap.L().Debug("field extracted", zap.String("field", string(spec.Field)), zap.Int("response_length", len(response)))
}
