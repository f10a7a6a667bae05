package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"matterdesk/internal/csvexport"
	"matterdesk/internal/domain"
	"matterdesk/internal/port"
)

const (
	maxMatterNameLength   = 300
	maxContractTypeLength = 200
	maxGoverningLawLength = 200
	exportBatchSize       = 500
)

// CreateMatterInput is the DTO for creating a legal matter.
type CreateMatterInput struct {
	MatterName     string              `json:"matter_name" binding:"required"`
	ContractType   string              `json:"contract_type"`
	Parties        string              `json:"parties"`
	EffectiveDate  *time.Time          `json:"effective_date"`
	ExpirationDate *time.Time          `json:"expiration_date"`
	GoverningLaw   string              `json:"governing_law"`
	ContractValue  *decimal.Decimal    `json:"contract_value"`
	Currency       string              `json:"currency"`
	Status         domain.MatterStatus `json:"status"`
	Description    string              `json:"description"`
	LawyerID       *uuid.UUID          `json:"lawyer_id"`
}

// UpdateMatterInput is the DTO for updating a legal matter. Nil fields are
// left unchanged.
type UpdateMatterInput struct {
	MatterName     *string              `json:"matter_name"`
	ContractType   *string              `json:"contract_type"`
	Parties        *string              `json:"parties"`
	EffectiveDate  *time.Time           `json:"effective_date"`
	ExpirationDate *time.Time           `json:"expiration_date"`
	GoverningLaw   *string              `json:"governing_law"`
	ContractValue  *decimal.Decimal     `json:"contract_value"`
	Currency       *string              `json:"currency"`
	Status         *domain.MatterStatus `json:"status"`
	Description    *string              `json:"description"`
}

// MatterService defines the legal matter management contract.
type MatterService interface {
	Create(ctx context.Context, input CreateMatterInput) (*domain.LegalMatter, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalMatter, error)
	List(ctx context.Context, offset, limit int) ([]domain.LegalMatter, int, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateMatterInput) (*domain.LegalMatter, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByLawyer(ctx context.Context, lawyerID uuid.UUID) ([]domain.LegalMatter, error)
	AssignLawyer(ctx context.Context, id, lawyerID uuid.UUID) (*domain.LegalMatter, error)
	UnassignLawyer(ctx context.Context, id uuid.UUID) (*domain.LegalMatter, error)
	CreateFromExtraction(ctx context.Context, extractionID uuid.UUID) (*domain.LegalMatter, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type matterService struct {
	repo           port.LegalMatterRepository
	lawyerRepo     port.LawyerRepository
	extractionRepo port.ContractExtractionRepository
	now            func() time.Time
}

// NewMatterService creates a new MatterService implementation.
func NewMatterService(
	repo port.LegalMatterRepository,
	lawyerRepo port.LawyerRepository,
	extractionRepo port.ContractExtractionRepository,
) MatterService {
	return &matterService{
		repo:           repo,
		lawyerRepo:     lawyerRepo,
		extractionRepo: extractionRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *matterService) Create(ctx context.Context, input CreateMatterInput) (*domain.LegalMatter, error) {
	matter := &domain.LegalMatter{
		MatterName:     strings.TrimSpace(input.MatterName),
		ContractType:   strings.TrimSpace(input.ContractType),
		Parties:        strings.TrimSpace(input.Parties),
		EffectiveDate:  input.EffectiveDate,
		ExpirationDate: input.ExpirationDate,
		GoverningLaw:   strings.TrimSpace(input.GoverningLaw),
		ContractValue:  input.ContractValue,
		Currency:       input.Currency,
		Status:         input.Status,
		Description:    input.Description,
		LawyerID:       input.LawyerID,
	}
	if matter.Status == "" {
		matter.Status = domain.MatterStatusDraft
	}
	if err := validateMatter(matter); err != nil {
		return nil, err
	}
	if matter.LawyerID != nil {
		if _, err := s.lawyerRepo.GetByID(ctx, *matter.LawyerID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, matter); err != nil {
		return nil, err
	}
	return matter, nil
}

func (s *matterService) GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalMatter, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *matterService) List(ctx context.Context, offset, limit int) ([]domain.LegalMatter, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *matterService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *matterService) Update(ctx context.Context, id uuid.UUID, input UpdateMatterInput) (*domain.LegalMatter, error) {
	matter, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.MatterName != nil {
		matter.MatterName = strings.TrimSpace(*input.MatterName)
	}
	if input.ContractType != nil {
		matter.ContractType = strings.TrimSpace(*input.ContractType)
	}
	if input.Parties != nil {
		matter.Parties = strings.TrimSpace(*input.Parties)
	}
	if input.EffectiveDate != nil {
		matter.EffectiveDate = input.EffectiveDate
	}
	if input.ExpirationDate != nil {
		matter.ExpirationDate = input.ExpirationDate
	}
	if input.GoverningLaw != nil {
		matter.GoverningLaw = strings.TrimSpace(*input.GoverningLaw)
	}
	if input.ContractValue != nil {
		matter.ContractValue = input.ContractValue
	}
	if input.Currency != nil {
		matter.Currency = *input.Currency
	}
	if input.Status != nil {
		matter.Status = *input.Status
	}
	if input.Description != nil {
		matter.Description = *input.Description
	}
	if err := validateMatter(matter); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, matter); err != nil {
		return nil, err
	}
	return matter, nil
}

func (s *matterService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *matterService) ListByLawyer(ctx context.Context, lawyerID uuid.UUID) ([]domain.LegalMatter, error) {
	if _, err := s.lawyerRepo.GetByID(ctx, lawyerID); err != nil {
		return nil, err
	}
	return s.repo.ListByLawyer(ctx, lawyerID)
}

func (s *matterService) AssignLawyer(ctx context.Context, id, lawyerID uuid.UUID) (*domain.LegalMatter, error) {
	matter, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.lawyerRepo.GetByID(ctx, lawyerID); err != nil {
		return nil, err
	}

	matter.LawyerID = &lawyerID
	if err := s.repo.Update(ctx, matter); err != nil {
		return nil, err
	}
	return matter, nil
}

func (s *matterService) UnassignLawyer(ctx context.Context, id uuid.UUID) (*domain.LegalMatter, error) {
	matter, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	matter.LawyerID = nil
	if err := s.repo.Update(ctx, matter); err != nil {
		return nil, err
	}
	return matter, nil
}

func (s *matterService) CreateFromExtraction(ctx context.Context, extractionID uuid.UUID) (*domain.LegalMatter, error) {
	extraction, err := s.extractionRepo.GetByID(ctx, extractionID)
	if err != nil {
		return nil, err
	}
	result, err := extraction.Decode()
	if err != nil {
		return nil, fmt.Errorf("matterService.CreateFromExtraction decode: %w", err)
	}

	matter := MatterFromExtraction(result, s.now())
	matter.ExtractionID = &extraction.ID
	if err := validateMatter(matter); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, matter); err != nil {
		return nil, err
	}
	return matter, nil
}

// ExportCSV writes every matter as CSV, fetching them in batches.
func (s *matterService) ExportCSV(ctx context.Context, w io.Writer) error {
	lawyers, err := s.lawyerNames(ctx)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("matterService.ExportCSV: %w", err)
	}
	cw := csvexport.NewWriter(w, lawyers)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("matterService.ExportCSV: %w", err)
	}

	for offset := 0; ; offset += exportBatchSize {
		matters, total, err := s.repo.List(ctx, offset, exportBatchSize)
		if err != nil {
			return err
		}
		if err := cw.WriteMatters(matters); err != nil {
			return fmt.Errorf("matterService.ExportCSV: %w", err)
		}
		if len(matters) < exportBatchSize || offset+len(matters) >= total {
			break
		}
	}

	cw.Flush()
	return cw.Error()
}

func (s *matterService) lawyerNames(ctx context.Context) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for offset := 0; ; offset += exportBatchSize {
		lawyers, total, err := s.lawyerRepo.List(ctx, offset, exportBatchSize)
		if err != nil {
			return nil, err
		}
		for i := range lawyers {
			names[lawyers[i].ID] = lawyers[i].FullName()
		}
		if len(lawyers) < exportBatchSize || offset+len(lawyers) >= total {
			return names, nil
		}
	}
}

// Key date descriptions that mark the start and end of a contract.
var (
	effectiveDateKeywords  = []string{"effective", "commence", "start"}
	expirationDateKeywords = []string{"expir", "terminat", "end date", "ending", "ends"}
)

// MatterFromExtraction maps the extracted fields of a contract onto a new
// legal matter. A matter whose expiration date is before now is Expired,
// otherwise Active. Text is cut to the column limits, and an expiration date
// found before the effective date is dropped.
func MatterFromExtraction(res *domain.ExtractionResult, now time.Time) *domain.LegalMatter {
	matter := &domain.LegalMatter{
		MatterName:     matterName(res),
		ContractType:   truncateRunes(res.ContractType, maxContractTypeLength),
		Parties:        strings.Join(res.Parties, "; "),
		EffectiveDate:  findDate(res.KeyDates, effectiveDateKeywords),
		ExpirationDate: findDate(res.KeyDates, expirationDateKeywords),
		Currency:       domain.DefaultCurrency,
		Status:         domain.MatterStatusActive,
		Description:    res.Summary,
	}
	if res.GoverningLaw != domain.DefaultGoverningLaw {
		matter.GoverningLaw = truncateRunes(res.GoverningLaw, maxGoverningLawLength)
	}
	if value, cur, ok := contractValue(res.FinancialTerms); ok {
		matter.ContractValue = &value
		matter.Currency = cur
	}
	if matter.EffectiveDate != nil && matter.ExpirationDate != nil &&
		matter.ExpirationDate.Before(*matter.EffectiveDate) {
		matter.ExpirationDate = nil
	}
	if matter.ExpirationDate != nil && matter.ExpirationDate.Before(now) {
		matter.Status = domain.MatterStatusExpired
	}
	return matter
}

func matterName(res *domain.ExtractionResult) string {
	name := res.ContractType
	if name == "" {
		name = domain.DefaultContractType
	}
	parties := res.Parties
	if len(parties) > 2 {
		parties = parties[:2]
	}
	if len(parties) > 0 {
		name += " - " + strings.Join(parties, " & ")
	}
	return truncateRunes(name, maxMatterNameLength)
}

func truncateRunes(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

func findDate(dates []domain.ContractDate, keywords []string) *time.Time {
	for _, d := range dates {
		desc := strings.ToLower(d.Description)
		for _, kw := range keywords {
			if strings.Contains(desc, kw) {
				date := d.Date
				return &date
			}
		}
	}
	return nil
}

// contractValue sums the one-time amounts in the currency of the first
// financial term.
func contractValue(terms []domain.FinancialTerm) (decimal.Decimal, string, bool) {
	if len(terms) == 0 {
		return decimal.Decimal{}, "", false
	}
	cur := terms[0].Currency
	total := decimal.Zero
	found := false
	for _, t := range terms {
		if t.Currency != cur || t.IsRecurring {
			continue
		}
		total = total.Add(t.Amount)
		found = true
	}
	return total, cur, found
}

func validateMatter(m *domain.LegalMatter) error {
	if m.MatterName == "" {
		return fmt.Errorf("%w: matter name is required", domain.ErrInvalidMatter)
	}
	if len([]rune(m.MatterName)) > maxMatterNameLength {
		return fmt.Errorf("%w: matter name exceeds %d characters", domain.ErrInvalidMatter, maxMatterNameLength)
	}
	if len([]rune(m.ContractType)) > maxContractTypeLength {
		return fmt.Errorf("%w: contract type exceeds %d characters", domain.ErrInvalidMatter, maxContractTypeLength)
	}
	if len([]rune(m.GoverningLaw)) > maxGoverningLawLength {
		return fmt.Errorf("%w: governing law exceeds %d characters", domain.ErrInvalidMatter, maxGoverningLawLength)
	}
	if !domain.ValidMatterStatuses[m.Status] {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidMatter, m.Status)
	}
	if m.Currency == "" {
		m.Currency = domain.DefaultCurrency
	}
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(m.Currency)))
	if err != nil {
		return fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidMatter, m.Currency)
	}
	m.Currency = unit.String()
	if m.ContractValue != nil && m.ContractValue.IsNegative() {
		return fmt.Errorf("%w: contract value cannot be negative", domain.ErrInvalidMatter)
	}
	if m.EffectiveDate != nil && m.ExpirationDate != nil && m.ExpirationDate.Before(*m.EffectiveDate) {
		return fmt.Errorf("%w: expiration date is before effective date", domain.ErrInvalidMatter)
	}
	return nil
}
