package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	content string
	err     error
	calls   int
}

func (s *stubLoader) Load(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.content, s.err
}

func TestLoadersDispatch(t *testing.T) {
	stub := &stubLoader{content: "transcript text"}
	loaders := NewLoaders(WithLoader(KindYouTube, stub))

	spec, err := Resolve("yt:dQw4w9WgXcQ")
	require.NoError(t, err)

	content, err := loaders.Load(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, "transcript text", content)
	assert.Equal(t, 1, stub.calls)
}

func TestLoadersNormalizesErrors(t *testing.T) {
	stub := &stubLoader{err: errors.New("connection refused")}
	loaders := NewLoaders(WithLoader(KindURL, stub))

	spec, err := Resolve("url:https://example.com")
	require.NoError(t, err)

	_, err = loaders.Load(context.Background(), spec)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "url:https://example.com", loadErr.Source)
	assert.Equal(t, "connection refused", loadErr.Message)
}

func TestLoadersRejectsRaw(t *testing.T) {
	loaders := NewLoaders()

	_, err := loaders.Load(context.Background(), Spec{Kind: KindRaw, Original: "plain text"})
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "raw sources")
}

func TestFileLoader(t *testing.T) {
	t.Run("reads existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.md")
		require.NoError(t, os.WriteFile(path, []byte("# Notes\n\ncontent"), 0644))

		content, err := FileLoader{}.Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# Notes\n\ncontent", content)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FileLoader{}.Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file not found")
	})
}

func TestGitHubLoader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/golang/go":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"full_name": "golang/go",
				"description": "The Go programming language",
				"language": "Go",
				"topics": ["go", "language"],
				"stargazers_count": 120000
			}`))
		case "/repos/golang/go/readme":
			assert.Equal(t, "application/vnd.github.raw+json", r.Header.Get("Accept"))
			_, _ = w.Write([]byte("# The Go Programming Language\n\nGo is open source."))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	loader := &GitHubLoader{client: server.Client(), apiBase: server.URL}

	content, err := loader.Load(context.Background(), "golang/go")
	require.NoError(t, err)
	assert.Contains(t, content, "# golang/go")
	assert.Contains(t, content, "The Go programming language")
	assert.Contains(t, content, "Language: Go")
	assert.Contains(t, content, "Topics: go, language")
	assert.Contains(t, content, "Stars: 120000")
	assert.Contains(t, content, "Go is open source.")
}

func TestGitHubLoaderMissingRepo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	loader := &GitHubLoader{client: server.Client(), apiBase: server.URL}

	_, err := loader.Load(context.Background(), "nobody/nothing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nobody/nothing")
}

func TestWebLoader(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head><title>Understanding Goroutines</title></head>
<body>
<article>
<h1>Understanding Goroutines</h1>
<p>Goroutines are lightweight threads managed by the Go runtime. They allow
concurrent execution of functions with very low overhead, enabling programs
to handle thousands of simultaneous tasks without exhausting system
resources.</p>
<p>Channels provide a way for goroutines to communicate with each other and
synchronize their execution. Combined with the select statement, channels
make it straightforward to express complex concurrent patterns in a safe,
readable way.</p>
</article>
</body>
</html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	loader := NewWebLoader()
	loader.client = server.Client()

	content, err := loader.Load(context.Background(), server.URL+"/post")
	require.NoError(t, err)
	assert.Contains(t, content, "Goroutines are lightweight threads")
	assert.Contains(t, content, "Channels provide a way")
}

func TestParseCaptionTracks(t *testing.T) {
	t.Run("extracts track array", func(t *testing.T) {
		page := `... "captionTracks":[{"baseUrl":"https://example.com/tt?lang=en","languageCode":"en","kind":""},{"baseUrl":"https://example.com/tt?lang=de","languageCode":"de"}],"other":1 ...`
		tracks, err := parseCaptionTracks(page)
		require.NoError(t, err)
		require.Len(t, tracks, 2)
		assert.Equal(t, "en", tracks[0].LanguageCode)
	})

	t.Run("handles brackets inside strings", func(t *testing.T) {
		page := `"captionTracks":[{"baseUrl":"https://example.com/tt?a=[1]","languageCode":"en"}]`
		tracks, err := parseCaptionTracks(page)
		require.NoError(t, err)
		require.Len(t, tracks, 1)
	})

	t.Run("no captions", func(t *testing.T) {
		_, err := parseCaptionTracks("<html>nothing here</html>")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no captions available")
	})
}

func TestPickTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "auto", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "german", LanguageCode: "de"},
		{BaseURL: "manual", LanguageCode: "en"},
	}
	// Manual English beats auto-generated English beats anything else.
	assert.Equal(t, "manual", pickTrack(tracks).BaseURL)

	assert.Equal(t, "auto", pickTrack(tracks[:2]).BaseURL)
	assert.Equal(t, "german", pickTrack(tracks[1:2]).BaseURL)
}
