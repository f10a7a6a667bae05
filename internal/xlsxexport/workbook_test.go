package xlsxexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"matterdesk/internal/domain"
)

func TestWriteExtraction(t *testing.T) {
	rec := &domain.ContractExtraction{
		ID:         uuid.New(),
		Source:     "msa.pdf",
		SourceKind: domain.SourceKindPDF,
		Model:      "llama3.2:1b",
		PageCount:  3,
	}
	res := domain.NewExtractionResult("text", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	res.Parties = []string{"Acme Corp", "Beta LLC"}
	res.KeyDates = []domain.ContractDate{{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Description: "Effective", OriginalText: "as of January 1"}}
	res.FinancialTerms = []domain.FinancialTerm{{Amount: decimal.NewFromInt(1500), Currency: "USD", Description: "Fee", IsRecurring: true, PaymentFrequency: "monthly"}}
	res.KeyObligations = []string{"Deliver reports"}
	res.ConfidentialityTerms = []string{"Keep pricing secret"}
	res.ContractType = "Master Services Agreement"

	var buf bytes.Buffer
	require.NoError(t, WriteExtraction(&buf, rec, res))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetOverview, SheetParties, SheetKeyDates, SheetFinancialTerms, SheetClauses}, f.GetSheetList())

	rows, err := f.GetRows(SheetParties)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "Party"}, rows[0])
	assert.Equal(t, "Beta LLC", rows[2][1])

	v, err := f.GetCellValue(SheetKeyDates, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", v)

	v, err = f.GetCellValue(SheetOverview, "B9")
	require.NoError(t, err)
	assert.Equal(t, "Master Services Agreement", v)

	rows, err = f.GetRows(SheetClauses)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Key Obligation", "Deliver reports"}, rows[1])
	assert.Equal(t, []string{"Confidentiality", "Keep pricing secret"}, rows[2])
}
