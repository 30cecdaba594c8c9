// Package source resolves prefixed source strings (yt:, pdf:, url:, github:,
// file:) into typed specs and loads their content through per-kind loaders.
package source

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind identifies where content comes from.
type Kind string

const (
	KindYouTube Kind = "youtube"
	KindPDF     Kind = "pdf"
	KindURL     Kind = "url"
	KindGitHub  Kind = "github"
	KindFile    Kind = "file"
	KindRaw     Kind = "raw"
)

// prefixKinds maps source prefixes to their kind.
var prefixKinds = map[string]Kind{
	"yt":     KindYouTube,
	"pdf":    KindPDF,
	"url":    KindURL,
	"github": KindGitHub,
	"file":   KindFile,
}

// Spec is a resolved source. Immutable once constructed.
type Spec struct {
	Kind       Kind
	Identifier string
	Original   string
}

// ResolveError indicates a malformed source string.
type ResolveError struct {
	Source  string
	Message string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot resolve source %q: %s", e.Source, e.Message)
}

// videoIDPattern matches a bare YouTube video identifier.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Resolve parses a source string of the form prefix:rest into a Spec.
// An empty source, or a source without a colon, yields KindRaw; the caller
// must supply pre-loaded text in that case. A colon with an unrecognized
// prefix is an error rather than a silent fallback.
func Resolve(src string) (Spec, error) {
	if src == "" {
		return Spec{Kind: KindRaw, Original: src}, nil
	}

	idx := strings.Index(src, ":")
	if idx < 0 {
		return Spec{Kind: KindRaw, Original: src}, nil
	}

	prefix := strings.ToLower(src[:idx])
	rest := src[idx+1:]

	kind, ok := prefixKinds[prefix]
	if !ok {
		return Spec{}, &ResolveError{Source: src, Message: fmt.Sprintf("unknown prefix %q (supported: yt, pdf, url, github, file)", prefix)}
	}
	if rest == "" {
		return Spec{}, &ResolveError{Source: src, Message: "empty identifier after prefix"}
	}

	id, err := normalize(kind, rest)
	if err != nil {
		return Spec{}, &ResolveError{Source: src, Message: err.Error()}
	}

	return Spec{Kind: kind, Identifier: id, Original: src}, nil
}

func normalize(kind Kind, rest string) (string, error) {
	switch kind {
	case KindYouTube:
		return normalizeVideoID(rest)
	case KindGitHub:
		return normalizeRepo(rest)
	case KindURL:
		if strings.HasPrefix(rest, "http://") || strings.HasPrefix(rest, "https://") {
			return rest, nil
		}
		return "https://" + rest, nil
	case KindPDF:
		if strings.HasPrefix(rest, "http://") || strings.HasPrefix(rest, "https://") {
			return rest, nil
		}
		return expandHome(rest), nil
	case KindFile:
		return expandHome(rest), nil
	default:
		return rest, nil
	}
}

// normalizeVideoID extracts the canonical video id from a bare identifier or
// any of the usual YouTube URL shapes (watch?v=, youtu.be/, shorts/, embed/,
// live/).
func normalizeVideoID(raw string) (string, error) {
	if videoIDPattern.MatchString(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("not a video id or YouTube URL: %s", raw)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if videoIDPattern.MatchString(id) {
			return id, nil
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if id := u.Query().Get("v"); videoIDPattern.MatchString(id) {
			return id, nil
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 {
			switch parts[0] {
			case "shorts", "embed", "live", "v":
				if videoIDPattern.MatchString(parts[1]) {
					return parts[1], nil
				}
			}
		}
	}

	return "", fmt.Errorf("cannot extract video id from %s", raw)
}

// normalizeRepo reduces owner/repo shorthand or a full repository URL to
// "owner/repo".
func normalizeRepo(raw string) (string, error) {
	s := raw
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("invalid repository URL: %s", raw)
		}
		if !strings.EqualFold(strings.TrimPrefix(u.Host, "www."), "github.com") {
			return "", fmt.Errorf("not a GitHub repository URL: %s", raw)
		}
		s = strings.Trim(u.Path, "/")
	}
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("expected owner/repo, got %q", raw)
	}
	return parts[0] + "/" + parts[1], nil
}

func expandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
