// Package doctext extracts plain text from uploaded lesson documents.
package doctext

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat reports an input that is neither a PDF nor plain
// text. Analysis is aborted and the user notified.
type ErrUnsupportedFormat struct {
	Detail string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported document format: %s", e.Detail)
}

var pdfMagic = []byte("%PDF-")

// Extract returns the plain text of a document. PDFs are parsed page by
// page; anything that looks like valid text passes through unchanged.
func Extract(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &ErrUnsupportedFormat{Detail: "empty document"}
	}

	if bytes.HasPrefix(data, pdfMagic) {
		return extractPDF(data)
	}

	if !utf8.Valid(data) {
		return "", &ErrUnsupportedFormat{Detail: "binary content is not a PDF or text file"}
	}
	return string(data), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ErrUnsupportedFormat{Detail: fmt.Sprintf("unreadable PDF: %v", err)}
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single bad page should not sink the whole document.
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", &ErrUnsupportedFormat{Detail: "PDF contains no extractable text"}
	}
	return out, nil
}

// ExtractReader is Extract for streaming sources.
func ExtractReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return Extract(data)
}
