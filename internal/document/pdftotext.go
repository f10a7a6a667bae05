package document

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// PdfToText extracts text with the poppler pdftotext CLI tool.
type PdfToText struct {
	binPath string
}

// NewPdfToText creates a PdfToText extractor. If binPath is empty, "pdftotext" is used.
func NewPdfToText(binPath string) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath}
}

// ExtractText writes data to a temp file and runs pdftotext -layout on it.
// pdftotext ends every page with a form feed.
func (p *PdfToText) ExtractText(ctx context.Context, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return nil, parseFailure(eris.New("missing PDF header"))
	}

	f, err := os.CreateTemp("", "matterdesk-*.pdf")
	if err != nil {
		return nil, eris.Wrap(err, "document: create temp file")
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return nil, eris.Wrap(err, "document: write temp file")
	}
	if err := f.Close(); err != nil {
		return nil, eris.Wrap(err, "document: close temp file")
	}

	cmd := exec.CommandContext(ctx, p.binPath, "-layout", "-enc", "UTF-8", f.Name(), "-")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, parseFailure(eris.Errorf("pdftotext: %s", strings.TrimSpace(stderr.String())))
		}
		return nil, eris.Wrapf(err, "document: run %s", p.binPath)
	}

	return finish("pdftotext", len(data), splitPages(stdout.String()))
}

// splitPages splits pdftotext output on form feeds, dropping the empty
// remainder after the final page.
func splitPages(out string) []string {
	pages := strings.Split(out, "\f")
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages
}
