package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFLoader extracts text content from local or remote PDF documents.
type PDFLoader struct {
	client *http.Client
}

// NewPDFLoader creates a PDF loader.
func NewPDFLoader() *PDFLoader {
	return &PDFLoader{client: newHTTPClient()}
}

// Load reads the PDF at a local path or http(s) URL and returns its plain
// text, pages separated by a horizontal rule.
func (l *PDFLoader) Load(ctx context.Context, identifier string) (string, error) {
	var content []byte
	var err error

	if strings.HasPrefix(identifier, "http://") || strings.HasPrefix(identifier, "https://") {
		content, err = fetch(ctx, l.client, identifier, nil)
	} else {
		content, err = os.ReadFile(identifier)
		if os.IsNotExist(err) {
			err = fmt.Errorf("file not found: %s", identifier)
		}
	}
	if err != nil {
		return "", err
	}

	return extractPDFText(content)
}

func extractPDFText(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Some pages fail to parse; keep whatever the rest yields.
			continue
		}
		if pageText == "" {
			continue
		}

		if text.Len() > 0 {
			text.WriteString("\n\n---\n\n")
		}
		text.WriteString(pageText)
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("no text content extracted (%d pages, possibly image-based)", numPages)
	}
	return text.String(), nil
}
