// Package xlsxexport renders contract extractions as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"matterdesk/internal/domain"
)

// Sheet names in workbook order.
const (
	SheetOverview       = "Overview"
	SheetParties        = "Parties"
	SheetKeyDates       = "Key Dates"
	SheetFinancialTerms = "Financial Terms"
	SheetClauses        = "Clauses"
)

const dateLayout = "2006-01-02"

// WriteExtraction writes one workbook describing an extraction to w.
func WriteExtraction(w io.Writer, rec *domain.ContractExtraction, res *domain.ExtractionResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetOverview); err != nil {
		return fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}
	for _, name := range []string{SheetParties, SheetKeyDates, SheetFinancialTerms, SheetClauses} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsxexport: add sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsxexport: style: %w", err)
	}

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{SheetOverview, []interface{}{"Field", "Value"}, overviewRows(rec, res)},
		{SheetParties, []interface{}{"#", "Party"}, numberedRows(res.Parties)},
		{SheetKeyDates, []interface{}{"Date", "Description", "Original Text"}, dateRows(res.KeyDates)},
		{SheetFinancialTerms, []interface{}{"Amount", "Currency", "Description", "Original Text", "Recurring", "Frequency"}, termRows(res.FinancialTerms)},
		{SheetClauses, []interface{}{"Category", "Clause"}, clauseRows(res)},
	}

	for _, s := range sheets {
		if err := writeRows(f, s.name, bold, s.header, s.rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport: write: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, headerStyle int, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsxexport: %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("xlsxexport: %s header style: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("xlsxexport: %s row %d: %w", sheet, i+2, err)
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 32)
}

func overviewRows(rec *domain.ContractExtraction, res *domain.ExtractionResult) [][]interface{} {
	return [][]interface{}{
		{"Extraction ID", rec.ID.String()},
		{"Source", rec.Source},
		{"Source Kind", string(rec.SourceKind)},
		{"Model", rec.Model},
		{"Pages", rec.PageCount},
		{"Characters", rec.CharacterCount},
		{"Extracted At", res.ExtractedAt.Format(time.RFC3339)},
		{"Contract Type", res.ContractType},
		{"Governing Law", res.GoverningLaw},
		{"Summary", res.Summary},
	}
}

func numberedRows(items []string) [][]interface{} {
	rows := make([][]interface{}, len(items))
	for i, item := range items {
		rows[i] = []interface{}{i + 1, item}
	}
	return rows
}

func dateRows(dates []domain.ContractDate) [][]interface{} {
	rows := make([][]interface{}, len(dates))
	for i, d := range dates {
		rows[i] = []interface{}{d.Date.Format(dateLayout), d.Description, d.OriginalText}
	}
	return rows
}

func termRows(terms []domain.FinancialTerm) [][]interface{} {
	rows := make([][]interface{}, len(terms))
	for i, t := range terms {
		amount, _ := t.Amount.Float64()
		rows[i] = []interface{}{amount, t.Currency, t.Description, t.OriginalText, strconv.FormatBool(t.IsRecurring), t.PaymentFrequency}
	}
	return rows
}

func clauseRows(res *domain.ExtractionResult) [][]interface{} {
	groups := []struct {
		category string
		items    []string
	}{
		{"Key Obligation", res.KeyObligations},
		{"Termination", res.TerminationClauses},
		{"Intellectual Property", res.IntellectualPropertyClauses},
		{"Confidentiality", res.ConfidentialityTerms},
	}
	var rows [][]interface{}
	for _, g := range groups {
		for _, item := range g.items {
			rows = append(rows, []interface{}{g.category, item})
		}
	}
	return rows
}
