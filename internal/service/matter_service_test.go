package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matterdesk/internal/domain"
	"matterdesk/internal/service"
	"matterdesk/mocks"
)

type matterFixture struct {
	svc            service.MatterService
	repo           *mocks.MockLegalMatterRepo
	lawyerRepo     *mocks.MockLawyerRepo
	extractionRepo *mocks.MockContractExtractionRepo
}

func newMatterService() matterFixture {
	f := matterFixture{
		repo:           new(mocks.MockLegalMatterRepo),
		lawyerRepo:     new(mocks.MockLawyerRepo),
		extractionRepo: new(mocks.MockContractExtractionRepo),
	}
	f.svc = service.NewMatterService(f.repo, f.lawyerRepo, f.extractionRepo)
	return f
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestMatterService_Create_Defaults(t *testing.T) {
	f := newMatterService()

	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.LegalMatter")).Return(nil)

	matter, err := f.svc.Create(context.Background(), service.CreateMatterInput{
		MatterName: "  Acme NDA ",
		Currency:   "eur",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme NDA", matter.MatterName)
	assert.Equal(t, domain.MatterStatusDraft, matter.Status)
	assert.Equal(t, "EUR", matter.Currency)
	f.repo.AssertExpectations(t)
}

func TestMatterService_Create_Validation(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	tests := []struct {
		name  string
		input service.CreateMatterInput
	}{
		{"missing name", service.CreateMatterInput{MatterName: " "}},
		{"unknown status", service.CreateMatterInput{MatterName: "x", Status: "Pending"}},
		{"unknown currency", service.CreateMatterInput{MatterName: "x", Currency: "ZZZ"}},
		{"negative value", service.CreateMatterInput{MatterName: "x", ContractValue: &negative}},
		{"expiration before effective", service.CreateMatterInput{
			MatterName:     "x",
			EffectiveDate:  date(2025, 1, 1),
			ExpirationDate: date(2024, 1, 1),
		}},
		{"long contract type", service.CreateMatterInput{MatterName: "x", ContractType: strings.Repeat("a", 201)}},
		{"long governing law", service.CreateMatterInput{MatterName: "x", GoverningLaw: strings.Repeat("é", 201)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatterService()
			matter, err := f.svc.Create(context.Background(), tt.input)
			assert.Nil(t, matter)
			assert.ErrorIs(t, err, domain.ErrInvalidMatter)
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestMatterService_Create_UnknownLawyer(t *testing.T) {
	f := newMatterService()

	lawyerID := uuid.New()
	f.lawyerRepo.On("GetByID", mock.Anything, lawyerID).Return(nil, domain.ErrLawyerNotFound)

	matter, err := f.svc.Create(context.Background(), service.CreateMatterInput{MatterName: "x", LawyerID: &lawyerID})

	assert.Nil(t, matter)
	assert.ErrorIs(t, err, domain.ErrLawyerNotFound)
}

func TestMatterService_Update_Status(t *testing.T) {
	f := newMatterService()

	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(&domain.LegalMatter{
		ID: id, MatterName: "x", Status: domain.MatterStatusActive, Currency: "USD",
	}, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(m *domain.LegalMatter) bool {
		return m.Status == domain.MatterStatusClosed
	})).Return(nil)

	closed := domain.MatterStatusClosed
	matter, err := f.svc.Update(context.Background(), id, service.UpdateMatterInput{Status: &closed})

	require.NoError(t, err)
	assert.Equal(t, domain.MatterStatusClosed, matter.Status)
	f.repo.AssertExpectations(t)
}

func TestMatterService_Update_NotFound(t *testing.T) {
	f := newMatterService()

	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrMatterNotFound)

	matter, err := f.svc.Update(context.Background(), id, service.UpdateMatterInput{})

	assert.Nil(t, matter)
	assert.ErrorIs(t, err, domain.ErrMatterNotFound)
}

func TestMatterService_AssignAndUnassignLawyer(t *testing.T) {
	f := newMatterService()

	id, lawyerID := uuid.New(), uuid.New()
	matter := &domain.LegalMatter{ID: id, MatterName: "x"}
	f.repo.On("GetByID", mock.Anything, id).Return(matter, nil)
	f.lawyerRepo.On("GetByID", mock.Anything, lawyerID).Return(&domain.Lawyer{ID: lawyerID}, nil)
	f.repo.On("Update", mock.Anything, matter).Return(nil)

	got, err := f.svc.AssignLawyer(context.Background(), id, lawyerID)
	require.NoError(t, err)
	require.NotNil(t, got.LawyerID)
	assert.Equal(t, lawyerID, *got.LawyerID)

	got, err = f.svc.UnassignLawyer(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got.LawyerID)
}

func TestMatterService_ListByLawyer_UnknownLawyer(t *testing.T) {
	f := newMatterService()

	lawyerID := uuid.New()
	f.lawyerRepo.On("GetByID", mock.Anything, lawyerID).Return(nil, domain.ErrLawyerNotFound)

	matters, err := f.svc.ListByLawyer(context.Background(), lawyerID)

	assert.Nil(t, matters)
	assert.ErrorIs(t, err, domain.ErrLawyerNotFound)
}

func TestMatterService_Count(t *testing.T) {
	f := newMatterService()
	f.repo.On("Count", mock.Anything).Return(42, nil)

	n, err := f.svc.Count(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 42, n)
}

func sampleResult() *domain.ExtractionResult {
	res := domain.NewExtractionResult("contract text", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	res.ContractType = "Service Agreement"
	res.Parties = []string{"Acme Corp", "Beta LLC", "Gamma Inc"}
	res.GoverningLaw = "State of Delaware"
	res.Summary = "Acme provides services to Beta."
	res.KeyDates = []domain.ContractDate{
		{Date: *date(2024, 1, 15), Description: "Signing date"},
		{Date: *date(2024, 2, 1), Description: "Effective date"},
		{Date: *date(2026, 1, 31), Description: "Expiration of the initial term"},
	}
	res.FinancialTerms = []domain.FinancialTerm{
		{Amount: decimal.NewFromInt(10000), Currency: "USD", Description: "Setup fee"},
		{Amount: decimal.NewFromInt(500), Currency: "USD", Description: "Monthly fee", IsRecurring: true},
		{Amount: decimal.RequireFromString("2500.50"), Currency: "USD", Description: "Milestone"},
		{Amount: decimal.NewFromInt(900), Currency: "EUR", Description: "Travel"},
	}
	return res
}

func TestMatterFromExtraction(t *testing.T) {
	res := sampleResult()

	matter := service.MatterFromExtraction(res, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "Service Agreement - Acme Corp & Beta LLC", matter.MatterName)
	assert.Equal(t, "Acme Corp; Beta LLC; Gamma Inc", matter.Parties)
	assert.Equal(t, date(2024, 2, 1), matter.EffectiveDate)
	assert.Equal(t, date(2026, 1, 31), matter.ExpirationDate)
	assert.Equal(t, "State of Delaware", matter.GoverningLaw)
	require.NotNil(t, matter.ContractValue)
	assert.Equal(t, "12500.5", matter.ContractValue.String())
	assert.Equal(t, "USD", matter.Currency)
	assert.Equal(t, domain.MatterStatusActive, matter.Status)
	assert.Equal(t, res.Summary, matter.Description)
}

func TestMatterFromExtraction_ExpiredAndDefaults(t *testing.T) {
	res := domain.NewExtractionResult("text", time.Now())
	res.KeyDates = []domain.ContractDate{{Date: *date(2020, 12, 31), Description: "Agreement terminates"}}

	matter := service.MatterFromExtraction(res, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, domain.DefaultContractType, matter.MatterName)
	assert.Empty(t, matter.GoverningLaw)
	assert.Nil(t, matter.ContractValue)
	assert.Nil(t, matter.EffectiveDate)
	assert.Equal(t, domain.DefaultCurrency, matter.Currency)
	assert.Equal(t, domain.MatterStatusExpired, matter.Status)
}

func TestMatterFromExtraction_AmendmentIsNotAnEndDate(t *testing.T) {
	res := domain.NewExtractionResult("text", time.Now())
	res.KeyDates = []domain.ContractDate{{Date: *date(2020, 1, 1), Description: "First amendment signed"}}

	matter := service.MatterFromExtraction(res, time.Now())

	assert.Nil(t, matter.ExpirationDate)
}

func TestMatterService_CreateFromExtraction(t *testing.T) {
	f := newMatterService()

	raw, err := json.Marshal(sampleResult())
	require.NoError(t, err)
	extraction := &domain.ContractExtraction{ID: uuid.New(), Result: raw}
	f.extractionRepo.On("GetByID", mock.Anything, extraction.ID).Return(extraction, nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.LegalMatter) bool {
		return m.ExtractionID != nil && *m.ExtractionID == extraction.ID
	})).Return(nil)

	matter, err := f.svc.CreateFromExtraction(context.Background(), extraction.ID)

	require.NoError(t, err)
	assert.Equal(t, "Service Agreement - Acme Corp & Beta LLC", matter.MatterName)
	f.repo.AssertExpectations(t)
}

func TestMatterFromExtraction_EndDateBeforeStartIsDropped(t *testing.T) {
	res := domain.NewExtractionResult("text", time.Now())
	res.KeyDates = []domain.ContractDate{
		{Date: *date(2025, 1, 1), Description: "Termination notice deadline"},
		{Date: *date(2025, 6, 1), Description: "Services start"},
	}

	matter := service.MatterFromExtraction(res, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, date(2025, 6, 1), matter.EffectiveDate)
	assert.Nil(t, matter.ExpirationDate)
	assert.Equal(t, domain.MatterStatusActive, matter.Status)
}

func TestMatterFromExtraction_TruncatesLongText(t *testing.T) {
	res := domain.NewExtractionResult("text", time.Now())
	res.ContractType = strings.Repeat("Master Services ", 20)
	res.GoverningLaw = strings.Repeat("ü", 250)

	matter := service.MatterFromExtraction(res, time.Now())

	assert.Len(t, []rune(matter.ContractType), 200)
	assert.Len(t, []rune(matter.GoverningLaw), 200)
	assert.LessOrEqual(t, len([]rune(matter.MatterName)), 300)
}

func TestMatterService_CreateFromExtraction_InconsistentDatesAndLongText(t *testing.T) {
	f := newMatterService()

	res := sampleResult()
	res.ContractType = strings.Repeat("x", 400)
	res.KeyDates = []domain.ContractDate{
		{Date: *date(2025, 1, 1), Description: "Termination notice deadline"},
		{Date: *date(2025, 6, 1), Description: "Services start"},
	}
	raw, err := json.Marshal(res)
	require.NoError(t, err)
	extraction := &domain.ContractExtraction{ID: uuid.New(), Result: raw}
	f.extractionRepo.On("GetByID", mock.Anything, extraction.ID).Return(extraction, nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.LegalMatter")).Return(nil)

	matter, err := f.svc.CreateFromExtraction(context.Background(), extraction.ID)

	require.NoError(t, err)
	assert.Nil(t, matter.ExpirationDate)
	assert.Len(t, []rune(matter.ContractType), 200)
	f.repo.AssertExpectations(t)
}

func TestMatterService_CreateFromExtraction_NotFound(t *testing.T) {
	f := newMatterService()

	id := uuid.New()
	f.extractionRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrExtractionNotFound)

	matter, err := f.svc.CreateFromExtraction(context.Background(), id)

	assert.Nil(t, matter)
	assert.ErrorIs(t, err, domain.ErrExtractionNotFound)
}

func TestMatterService_ExportCSV(t *testing.T) {
	f := newMatterService()

	lawyerID := uuid.New()
	f.lawyerRepo.On("List", mock.Anything, 0, 500).
		Return([]domain.Lawyer{{ID: lawyerID, FirstName: "Jane", LastName: "Doe"}}, 1, nil)
	f.repo.On("List", mock.Anything, 0, 500).Return([]domain.LegalMatter{
		{MatterName: "One", Status: domain.MatterStatusActive, LawyerID: &lawyerID},
		{MatterName: "Two", Status: domain.MatterStatusDraft},
	}, 2, nil)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportCSV(context.Background(), &buf))

	body := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3])
	rows, err := csv.NewReader(bytes.NewReader(body[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "One", rows[1][0])
	assert.Equal(t, "Jane Doe", rows[1][9])
	assert.Equal(t, "Two", rows[2][0])
}
