package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lawyer represents an attorney who can be assigned legal matters.
type Lawyer struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	CompanyName string    `db:"company_name" json:"company_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the lawyer's first and last name.
func (l *Lawyer) FullName() string {
	return l.FirstName + " " + l.LastName
}

// LegalMatter represents a contract-backed matter handled by the firm.
type LegalMatter struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	MatterName     string           `db:"matter_name" json:"matter_name"`
	ContractType   string           `db:"contract_type" json:"contract_type"`
	Parties        string           `db:"parties" json:"parties"`
	EffectiveDate  *time.Time       `db:"effective_date" json:"effective_date"`
	ExpirationDate *time.Time       `db:"expiration_date" json:"expiration_date"`
	GoverningLaw   string           `db:"governing_law" json:"governing_law"`
	ContractValue  *decimal.Decimal `db:"contract_value" json:"contract_value"`
	Currency       string           `db:"currency" json:"currency"`
	Status         MatterStatus     `db:"status" json:"status"`
	Description    string           `db:"description" json:"description"`
	LawyerID       *uuid.UUID       `db:"lawyer_id" json:"lawyer_id"`
	ExtractionID   *uuid.UUID       `db:"extraction_id" json:"extraction_id"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

// ContractExtraction is the persisted record of one extraction run.
type ContractExtraction struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Source         string          `db:"source" json:"source"`
	SourceKind     SourceKind      `db:"source_kind" json:"source_kind"`
	StorageKey     string          `db:"storage_key" json:"storage_key,omitempty"`
	Model          string          `db:"model" json:"model"`
	PageCount      int             `db:"page_count" json:"page_count"`
	CharacterCount int             `db:"character_count" json:"character_count"`
	Result         json.RawMessage `db:"result" json:"result"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Decode unmarshals the stored result JSON.
func (e *ContractExtraction) Decode() (*ExtractionResult, error) {
	var res ExtractionResult
	if err := json.Unmarshal(e.Result, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ExtractionResult holds the structured fields extracted from one contract.
// Every field is populated: lists default to empty and scalars to their
// category defaults.
type ExtractionResult struct {
	RawText                     string          `json:"raw_text"`
	ExtractedAt                 time.Time       `json:"extracted_at"`
	Parties                     []string        `json:"parties"`
	KeyDates                    []ContractDate  `json:"key_dates"`
	FinancialTerms              []FinancialTerm `json:"financial_terms"`
	KeyObligations              []string        `json:"key_obligations"`
	TerminationClauses          []string        `json:"termination_clauses"`
	IntellectualPropertyClauses []string        `json:"intellectual_property_clauses"`
	ConfidentialityTerms        []string        `json:"confidentiality_terms"`
	GoverningLaw                string          `json:"governing_law"`
	ContractType                string          `json:"contract_type"`
	Summary                     string          `json:"summary"`
}

// NewExtractionResult returns a result with every field set to its default.
func NewExtractionResult(rawText string, at time.Time) *ExtractionResult {
	return &ExtractionResult{
		RawText:                     rawText,
		ExtractedAt:                 at,
		Parties:                     []string{},
		KeyDates:                    []ContractDate{},
		FinancialTerms:              []FinancialTerm{},
		KeyObligations:              []string{},
		TerminationClauses:          []string{},
		IntellectualPropertyClauses: []string{},
		ConfidentialityTerms:        []string{},
		GoverningLaw:                DefaultGoverningLaw,
		ContractType:                DefaultContractType,
		Summary:                     DefaultSummary,
	}
}

// ContractDate is a date the contract refers to.
type ContractDate struct {
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	OriginalText string    `json:"original_text"`
}

// FinancialTerm is a monetary amount the contract refers to.
type FinancialTerm struct {
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Description      string          `json:"description"`
	OriginalText     string          `json:"original_text"`
	IsRecurring      bool            `json:"is_recurring"`
	PaymentFrequency string          `json:"payment_frequency,omitempty"`
}

// LLMModel describes a model installed on the language model server.
type LLMModel struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Stats holds aggregate counts across matters, lawyers and extractions.
type Stats struct {
	TotalMatters      int `db:"total_matters" json:"total_matters"`
	MattersDraft      int `db:"matters_draft" json:"matters_draft"`
	MattersActive     int `db:"matters_active" json:"matters_active"`
	MattersExpired    int `db:"matters_expired" json:"matters_expired"`
	MattersClosed     int `db:"matters_closed" json:"matters_closed"`
	UnassignedMatters int `db:"unassigned_matters" json:"unassigned_matters"`
	TotalLawyers      int `db:"total_lawyers" json:"total_lawyers"`
	TotalExtractions  int `db:"total_extractions" json:"total_extractions"`
}
