package extraction

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matterdesk/internal/config"
	"matterdesk/internal/document"
	"matterdesk/internal/domain"
)

// stubGenerator answers by the label a prompt ends with.
type stubGenerator struct {
	mu      sync.Mutex
	answers map[string]string
	fail    map[string]error
	panics  map[string]bool
	calls   int32
	models  []string
}

func (s *stubGenerator) Generate(_ context.Context, model, prompt string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	s.mu.Lock()
	s.models = append(s.models, model)
	s.mu.Unlock()
	for label := range s.panics {
		if strings.HasSuffix(prompt, label+":") {
			panic("generator blew up on " + label)
		}
	}
	for label, err := range s.fail {
		if strings.HasSuffix(prompt, label+":") {
			return "", err
		}
	}
	for label, answer := range s.answers {
		if strings.HasSuffix(prompt, label+":") {
			return answer, nil
		}
	}
	return "", nil
}

func sampleAnswers() map[string]string {
	return map[string]string{
		"Parties":                       "Acme Corp, Inc.\nBeta LLC",
		"Key Dates":                     "2024-01-01|Effective date|commencing January 1, 2024\nsoon|Renewal|renews soon",
		"Financial Terms":               "$1,000.00|USD|Monthly fee|pay $1,000 monthly|true|monthly",
		"Key Obligations":               "Provider delivers monthly reports",
		"Termination Clauses":           "Either party may terminate with 30 days notice",
		"Intellectual Property Clauses": "No intellectual property clauses specified",
		"Confidentiality Terms":         "Both parties keep pricing confidential",
		"Governing Law":                 "Delaware",
		"Contract Type":                 "Service Agreement",
		"Summary":                       "A monthly services agreement between Acme and Beta.",
	}
}

const sampleContract = "THIS SERVICE AGREEMENT is made between Acme Corp, Inc. and Beta LLC."

func newTestPipeline(gen Generator) *Pipeline {
	p := NewPipeline(gen, "llama3.2:1b", config.ExtractionConfig{Concurrency: 3})
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestPipeline_ExtractText_AllFields(t *testing.T) {
	gen := &stubGenerator{answers: sampleAnswers()}
	p := newTestPipeline(gen)

	res, err := p.ExtractText(context.Background(), sampleContract)

	require.NoError(t, err)
	assert.Equal(t, sampleContract, res.RawText)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), res.ExtractedAt)
	assert.Equal(t, []string{"Acme Corp, Inc.", "Beta LLC"}, res.Parties)
	require.Len(t, res.KeyDates, 1)
	assert.Equal(t, "Effective date", res.KeyDates[0].Description)
	require.Len(t, res.FinancialTerms, 1)
	assert.Equal(t, "monthly", res.FinancialTerms[0].PaymentFrequency)
	assert.Equal(t, []string{"Provider delivers monthly reports"}, res.KeyObligations)
	assert.Equal(t, []string{"Either party may terminate with 30 days notice"}, res.TerminationClauses)
	assert.Empty(t, res.IntellectualPropertyClauses)
	assert.NotNil(t, res.IntellectualPropertyClauses)
	assert.Equal(t, []string{"Both parties keep pricing confidential"}, res.ConfidentialityTerms)
	assert.Equal(t, "Delaware", res.GoverningLaw)
	assert.Equal(t, "Service Agreement", res.ContractType)
	assert.Equal(t, "A monthly services agreement between Acme and Beta.", res.Summary)

	assert.Equal(t, int32(10), atomic.LoadInt32(&gen.calls))
	for _, m := range gen.models {
		assert.Equal(t, "llama3.2:1b", m)
	}
}

func TestPipeline_OneFieldFailureKeepsOthers(t *testing.T) {
	gen := &stubGenerator{
		answers: sampleAnswers(),
		fail:    map[string]error{"Governing Law": errors.New("connection reset")},
	}
	p := newTestPipeline(gen)

	res, err := p.ExtractText(context.Background(), sampleContract)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoverningLaw, res.GoverningLaw)
	assert.Equal(t, "Service Agreement", res.ContractType)
	assert.Equal(t, []string{"Acme Corp, Inc.", "Beta LLC"}, res.Parties)
	assert.Len(t, res.FinancialTerms, 1)
}

func TestPipeline_FieldPanicKeepsDefaultAndOthers(t *testing.T) {
	gen := &stubGenerator{
		answers: sampleAnswers(),
		panics:  map[string]bool{"Financial Terms": true},
	}
	p := newTestPipeline(gen)

	var res *domain.ExtractionResult
	var err error
	require.NotPanics(t, func() {
		res, err = p.ExtractText(context.Background(), sampleContract)
	})

	require.NoError(t, err)
	assert.Empty(t, res.FinancialTerms)
	assert.Equal(t, "Service Agreement", res.ContractType)
	assert.Equal(t, "Delaware", res.GoverningLaw)
	assert.Equal(t, []string{"Acme Corp, Inc.", "Beta LLC"}, res.Parties)
	assert.EqualValues(t, len(sampleAnswers()), atomic.LoadInt32(&gen.calls))
}

func TestPipeline_EveryFieldFailingYieldsDefaults(t *testing.T) {
	boom := errors.New("ollama down")
	fail := map[string]error{}
	for label := range sampleAnswers() {
		fail[label] = boom
	}
	p := newTestPipeline(&stubGenerator{fail: fail})

	res, err := p.ExtractText(context.Background(), sampleContract)

	require.NoError(t, err)
	assert.Equal(t, domain.NewExtractionResult(sampleContract, res.ExtractedAt), res)
}

func TestPipeline_BlankScalarResponsesUseDefaults(t *testing.T) {
	answers := sampleAnswers()
	answers["Governing Law"] = "   "
	answers["Contract Type"] = ""
	answers["Summary"] = "\n"
	p := newTestPipeline(&stubGenerator{answers: answers})

	res, err := p.ExtractText(context.Background(), sampleContract)

	require.NoError(t, err)
	assert.Equal(t, "Not specified", res.GoverningLaw)
	assert.Equal(t, "General Contract", res.ContractType)
	assert.Equal(t, "Summary not available", res.Summary)
}

func TestPipeline_EmptyTextFailsWithoutCallingModel(t *testing.T) {
	gen := &stubGenerator{answers: sampleAnswers()}
	p := newTestPipeline(gen)

	_, err := p.ExtractText(context.Background(), "  \n\t ")
	assert.ErrorIs(t, err, domain.ErrEmptyContractText)

	_, err = p.Extract(context.Background(), document.New([]string{"", " "}))
	assert.ErrorIs(t, err, domain.ErrEmptyContractText)

	_, err = p.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyContractText)

	assert.Equal(t, int32(0), atomic.LoadInt32(&gen.calls))
}

func TestPipeline_UsesFullTextOfAllPages(t *testing.T) {
	var prompts []string
	var mu sync.Mutex
	gen := generatorFunc(func(_ context.Context, _, prompt string) (string, error) {
		mu.Lock()
		prompts = append(prompts, prompt)
		mu.Unlock()
		return "", nil
	})
	p := newTestPipeline(gen)

	res, err := p.Extract(context.Background(), document.New([]string{"Page one.", "Page two."}))

	require.NoError(t, err)
	assert.Equal(t, "Page one.\n\nPage two.", res.RawText)
	require.Len(t, prompts, 10)
	for _, prompt := range prompts {
		assert.Contains(t, prompt, "Contract text:\nPage one.\n\nPage two.\n\n")
	}
}

func TestPipeline_CanceledContextFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := &stubGenerator{answers: sampleAnswers()}
	p := newTestPipeline(gen)

	_, err := p.ExtractText(ctx, sampleContract)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), atomic.LoadInt32(&gen.calls))
}

func TestPipeline_SameInputSameOutput(t *testing.T) {
	p := newTestPipeline(&stubGenerator{answers: sampleAnswers()})

	first, err := p.ExtractText(context.Background(), sampleContract)
	require.NoError(t, err)
	second, err := p.ExtractText(context.Background(), sampleContract)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewPipeline_DefaultConcurrency(t *testing.T) {
	p := NewPipeline(&stubGenerator{}, "", config.ExtractionConfig{})
	assert.Equal(t, defaultConcurrency, p.concurrency)
	assert.Empty(t, p.Model())
}

type generatorFunc func(ctx context.Context, model, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, model, prompt string) (string, error) {
	return f(ctx, model, prompt)
}
