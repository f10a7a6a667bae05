package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"matterdesk/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Matter Name",
	"Contract Type",
	"Status",
	"Parties",
	"Effective Date",
	"Expiration Date",
	"Governing Law",
	"Contract Value",
	"Currency",
	"Lawyer",
	"Description",
	"Extraction ID",
	"Created At",
}

const dateLayout = "2006-01-02"

// Writer wraps csv.Writer for exporting legal matters as CSV.
type Writer struct {
	csv     *csv.Writer
	lawyers map[uuid.UUID]string
}

// NewWriter creates a Writer that writes CSV to w. lawyers maps lawyer IDs
// to display names; unknown IDs are written as the raw ID.
func NewWriter(w io.Writer, lawyers map[uuid.UUID]string) *Writer {
	return &Writer{csv: csv.NewWriter(w), lawyers: lawyers}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteMatters converts a batch of matters to CSV rows and writes them.
func (w *Writer) WriteMatters(matters []domain.LegalMatter) error {
	for i := range matters {
		if err := w.csv.Write(w.matterToRow(&matters[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func (w *Writer) matterToRow(m *domain.LegalMatter) []string {
	row := make([]string, len(columns))
	row[0] = m.MatterName
	row[1] = m.ContractType
	row[2] = string(m.Status)
	row[3] = m.Parties
	row[4] = formatDate(m.EffectiveDate)
	row[5] = formatDate(m.ExpirationDate)
	row[6] = m.GoverningLaw
	if m.ContractValue != nil {
		row[7] = m.ContractValue.StringFixed(2)
	}
	row[8] = m.Currency
	if m.LawyerID != nil {
		if name, ok := w.lawyers[*m.LawyerID]; ok {
			row[9] = name
		} else {
			row[9] = m.LawyerID.String()
		}
	}
	row[10] = m.Description
	if m.ExtractionID != nil {
		row[11] = m.ExtractionID.String()
	}
	row[12] = m.CreatedAt.Format(time.RFC3339)
	return row
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format(dateLayout), ext)
}
