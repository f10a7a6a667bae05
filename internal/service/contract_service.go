package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"matterdesk/internal/config"
	"matterdesk/internal/document"
	"matterdesk/internal/domain"
	"matterdesk/internal/port"
	"matterdesk/internal/xlsxexport"
)

// ExtractTextInput is the DTO for extracting fields from pasted contract text.
type ExtractTextInput struct {
	Text string `json:"text" binding:"required"`
}

// AskInput is the DTO for a free-form question about an extracted contract.
type AskInput struct {
	Question string `json:"question" binding:"required"`
}

// ExtractionOutput pairs the persisted record with its decoded result.
type ExtractionOutput struct {
	Extraction *domain.ContractExtraction `json:"extraction"`
	Result     *domain.ExtractionResult   `json:"result"`
}

// AskOutput is the answer to a question about an extracted contract.
type AskOutput struct {
	ExtractionID uuid.UUID `json:"extraction_id"`
	Model        string    `json:"model"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
}

// ContractService defines the contract extraction contract.
type ContractService interface {
	RetrieveDefault(ctx context.Context) (*document.Document, error)
	ExtractDefault(ctx context.Context) (*ExtractionOutput, error)
	ExtractFromText(ctx context.Context, text string) (*ExtractionOutput, error)
	ExtractFromFile(ctx context.Context, name string, data []byte) (*ExtractionOutput, error)
	Get(ctx context.Context, id uuid.UUID) (*ExtractionOutput, error)
	List(ctx context.Context, offset, limit int) ([]domain.ContractExtraction, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context, id uuid.UUID, w io.Writer) (*domain.ContractExtraction, error)
	Ask(ctx context.Context, id uuid.UUID, input AskInput) (*AskOutput, error)
}

type contractService struct {
	repo      port.ContractExtractionRepository
	storage   port.ObjectStorage
	bucket    string
	extractor port.DocumentExtractor
	parser    port.ContractParser
	llm       port.LanguageModel
	cfg       config.ContractConfig
	now       func() time.Time
}

// NewContractService creates a new ContractService implementation.
func NewContractService(
	repo port.ContractExtractionRepository,
	storage port.ObjectStorage,
	bucket string,
	extractor port.DocumentExtractor,
	parser port.ContractParser,
	llm port.LanguageModel,
	cfg config.ContractConfig,
) ContractService {
	return &contractService{
		repo:      repo,
		storage:   storage,
		bucket:    bucket,
		extractor: extractor,
		parser:    parser,
		llm:       llm,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *contractService) RetrieveDefault(ctx context.Context) (*document.Document, error) {
	key := s.cfg.DefaultKey
	ft, ok := domain.FileTypeFromName(key)
	if !ok {
		return nil, fmt.Errorf("%w: default contract %q", domain.ErrUnsupportedFileType, key)
	}

	data, err := s.storage.Download(ctx, s.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("downloading default contract %q: %w", key, err)
	}

	doc, err := s.toDocument(ctx, ft, data)
	if err != nil {
		return nil, fmt.Errorf("reading default contract %q: %w", key, err)
	}

	zap.L().Info("contractService.RetrieveDefault: retrieved",
		zap.String("key", key),
		zap.Int("pages", doc.TotalPages()),
		zap.Int("characters", doc.TotalCharacterCount()),
	)
	return doc, nil
}

func (s *contractService) ExtractDefault(ctx context.Context) (*ExtractionOutput, error) {
	doc, err := s.RetrieveDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract contract information: %w", err)
	}
	return s.run(ctx, s.cfg.DefaultKey, domain.SourceKindDefault, "", doc)
}

func (s *contractService) ExtractFromText(ctx context.Context, text string) (*ExtractionOutput, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyContractText
	}
	return s.run(ctx, "pasted text", domain.SourceKindText, "", document.NewText(text))
}

func (s *contractService) ExtractFromFile(ctx context.Context, name string, data []byte) (*ExtractionOutput, error) {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	ft, ok := domain.FileTypeFromName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, name)
	}
	if len(data) == 0 {
		return nil, domain.ErrEmptyFile
	}
	if limit := s.cfg.MaxFileSizeBytes(); limit > 0 && int64(len(data)) > limit {
		return nil, domain.ErrFileTooLarge
	}

	doc, err := s.toDocument(ctx, ft, data)
	if err != nil {
		return nil, err
	}

	var storageKey string
	if s.cfg.ArchiveUploads {
		storageKey = fmt.Sprintf("uploads/%s/%s", uuid.New(), name)
		if _, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.bucket,
			Key:         storageKey,
			Body:        bytes.NewReader(data),
			ContentType: contentType(ft),
			Size:        int64(len(data)),
		}); err != nil {
			zap.L().Error("contractService.ExtractFromFile: archive failed", zap.String("key", storageKey), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
	}

	kind := domain.SourceKindPDF
	if ft == domain.FileTypeTXT {
		kind = domain.SourceKindTXT
	}
	return s.run(ctx, name, kind, storageKey, doc)
}

func (s *contractService) Get(ctx context.Context, id uuid.UUID) (*ExtractionOutput, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := rec.Decode()
	if err != nil {
		return nil, fmt.Errorf("decoding extraction %s: %w", id, err)
	}
	return &ExtractionOutput{Extraction: rec, Result: res}, nil
}

func (s *contractService) List(ctx context.Context, offset, limit int) ([]domain.ContractExtraction, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *contractService) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if rec.StorageKey != "" {
		if err := s.storage.Delete(ctx, s.bucket, rec.StorageKey); err != nil {
			zap.L().Warn("contractService.Delete: archived upload not removed",
				zap.String("key", rec.StorageKey), zap.Error(err))
		}
	}
	return nil
}

func (s *contractService) Export(ctx context.Context, id uuid.UUID, w io.Writer) (*domain.ContractExtraction, error) {
	out, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := xlsxexport.WriteExtraction(w, out.Extraction, out.Result); err != nil {
		return nil, fmt.Errorf("exporting extraction %s: %w", id, err)
	}
	return out.Extraction, nil
}

const askPromptTemplate = `You are reviewing the following contract. Answer the question using only the contract text. If the contract does not answer it, say so.

Contract:
%s

Question: %s`

func (s *contractService) Ask(ctx context.Context, id uuid.UUID, input AskInput) (*AskOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	out, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Result.RawText) == "" {
		return nil, domain.ErrEmptyContractText
	}

	model := out.Extraction.Model
	if model == "" {
		model = s.llm.DefaultModel()
	}
	answer, err := s.llm.Chat(ctx, model, fmt.Sprintf(askPromptTemplate, out.Result.RawText, question))
	if err != nil {
		return nil, fmt.Errorf("asking about extraction %s: %w", id, err)
	}

	return &AskOutput{
		ExtractionID: id,
		Model:        model,
		Question:     question,
		Answer:       strings.TrimSpace(answer),
	}, nil
}

// run executes the pipeline over doc and persists the result.
func (s *contractService) run(
	ctx context.Context, source string, kind domain.SourceKind, storageKey string, doc *document.Document,
) (*ExtractionOutput, error) {
	res, err := s.parser.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encoding extraction result: %w", err)
	}

	rec := &domain.ContractExtraction{
		ID:             uuid.New(),
		Source:         source,
		SourceKind:     kind,
		StorageKey:     storageKey,
		Model:          s.parser.Model(),
		PageCount:      doc.TotalPages(),
		CharacterCount: doc.TotalCharacterCount(),
		Result:         raw,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	zap.L().Info("contractService: extraction stored",
		zap.String("extraction_id", rec.ID.String()),
		zap.String("source", source),
		zap.String("source_kind", string(kind)),
		zap.Int("parties", len(res.Parties)),
		zap.Int("key_dates", len(res.KeyDates)),
		zap.Int("financial_terms", len(res.FinancialTerms)),
	)
	return &ExtractionOutput{Extraction: rec, Result: res}, nil
}

// toDocument turns file bytes into a document. Text files are used as-is;
// PDFs go through the configured extractor.
func (s *contractService) toDocument(ctx context.Context, ft domain.FileType, data []byte) (*document.Document, error) {
	if ft == domain.FileTypeTXT {
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: text file is not valid UTF-8", domain.ErrContractUnreadable)
		}
		doc := document.NewText(string(data))
		if !doc.HasText() {
			return nil, domain.ErrNoContractText
		}
		return doc, nil
	}
	return s.extractor.ExtractText(ctx, data)
}

func contentType(ft domain.FileType) string {
	if ft == domain.FileTypePDF {
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}
