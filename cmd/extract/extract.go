package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"matterdesk/internal/document"
	"matterdesk/internal/domain"
	"matterdesk/internal/extraction"
	"matterdesk/internal/ollama"
	"matterdesk/internal/xlsxexport"
)

const extractLong = `Extracts parties, key dates, financial terms, obligations, clauses,
governing law, contract type and a summary from a contract file and prints
the result as JSON.

Examples:
  # Extract with the configured model
  extract contract.pdf

  # Use another model and also write a workbook
  extract contract.pdf --model llama3.1:8b --xlsx contract.xlsx

  # Check the model server
  extract health`

func init() {
	rootCmd.Long = extractLong
	rootCmd.Args = cobra.ExactArgs(1)
	rootCmd.RunE = runExtract

	f := rootCmd.Flags()
	f.String("model", "", "model name (overrides config)")
	f.Int("concurrency", 0, "concurrent field prompts (overrides config)")
	f.String("xlsx", "", "also write the result as an XLSX workbook to this path")
	f.Bool("compact", false, "print compact JSON")
	f.Bool("raw-text", false, "include the contract text in the JSON output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := args[0]
	ft, ok := domain.FileTypeFromName(path)
	if !ok {
		return eris.Wrapf(domain.ErrUnsupportedFileType, "extract: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "extract: read %s", path)
	}

	doc, err := loadDocument(ctx, ft, data)
	if err != nil {
		return err
	}

	extractionCfg := cfg.Extraction
	if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
		extractionCfg.Concurrency = n
	}
	client := ollama.NewClient(&cfg.Ollama)
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = extractionCfg.Model
	}
	if model == "" {
		model = client.DefaultModel()
	}

	pipeline := extraction.NewPipeline(client, model, extractionCfg)
	res, err := pipeline.Extract(ctx, doc)
	if err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("xlsx"); out != "" {
		if err := writeWorkbook(out, path, ft, model, doc, res); err != nil {
			return err
		}
		zap.L().Info("workbook written", zap.String("path", out))
	}

	if withText, _ := cmd.Flags().GetBool("raw-text"); !withText {
		res.RawText = ""
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	if compact, _ := cmd.Flags().GetBool("compact"); !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}

func loadDocument(ctx context.Context, ft domain.FileType, data []byte) (*document.Document, error) {
	if ft == domain.FileTypeTXT {
		doc := document.NewText(string(data))
		if !doc.HasText() {
			return nil, domain.ErrNoContractText
		}
		return doc, nil
	}

	extractor, err := document.NewExtractor(cfg.Document)
	if err != nil {
		return nil, err
	}
	return extractor.ExtractText(ctx, data)
}

func writeWorkbook(out, source string, ft domain.FileType, model string, doc *document.Document, res *domain.ExtractionResult) error {
	f, err := os.Create(out)
	if err != nil {
		return eris.Wrapf(err, "extract: create %s", out)
	}
	defer func() { _ = f.Close() }()

	rec := &domain.ContractExtraction{
		ID:             uuid.New(),
		Source:         filepath.Base(source),
		SourceKind:     domain.SourceKind(ft),
		Model:          model,
		PageCount:      doc.TotalPages(),
		CharacterCount: doc.TotalCharacterCount(),
		CreatedAt:      res.ExtractedAt,
	}
	if err := xlsxexport.WriteExtraction(f, rec, res); err != nil {
		return err
	}
	return f.Close()
}
