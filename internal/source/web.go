package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
)

// WebLoader fetches a web page and extracts its main article content as
// markdown.
type WebLoader struct {
	client    *http.Client
	converter *md.Converter
}

// NewWebLoader creates a web page loader.
func NewWebLoader() *WebLoader {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &WebLoader{
		client:    newHTTPClient(),
		converter: converter,
	}
}

// Load fetches pageURL, runs readability extraction, and converts the
// article body to markdown.
func (l *WebLoader) Load(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", pageURL, err)
	}

	body, err := fetch(ctx, l.client, pageURL, nil)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return "", fmt.Errorf("extracting article from %s: %w", pageURL, err)
	}

	markdown, err := l.converter.ConvertString(article.Content)
	if err != nil {
		return "", fmt.Errorf("converting %s to markdown: %w", pageURL, err)
	}

	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return "", fmt.Errorf("no readable content extracted from %s", pageURL)
	}

	if article.Title != "" {
		return "# " + article.Title + "\n\n" + markdown, nil
	}
	return markdown, nil
}
