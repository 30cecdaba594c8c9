package dispatch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternagent/fabric-agent/internal/pattern"
	"github.com/patternagent/fabric-agent/internal/source"
)

type mockRunner struct {
	calls    int
	lastSys  string
	lastIn   string
	response string
	err      error
}

func (m *mockRunner) Run(_ context.Context, systemPrompt, input string) (string, error) {
	m.calls++
	m.lastSys = systemPrompt
	m.lastIn = input
	return m.response, m.err
}

type stubLoader struct {
	content string
	err     error
	calls   int
}

func (s *stubLoader) Load(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.content, s.err
}

func newTestCatalog(t *testing.T, patterns ...string) *pattern.Catalog {
	t.Helper()
	dir := t.TempDir()
	for _, name := range patterns {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name, "system.md"), []byte("template for "+name), 0644))
	}
	return pattern.NewCatalog(dir)
}

func TestDispatchExplicitPattern(t *testing.T) {
	runner := &mockRunner{response: "the summary"}
	catalog := newTestCatalog(t, "summarize")
	d := NewDispatcher(catalog, source.NewLoaders(), runner)

	outcome := d.Dispatch(context.Background(), Request{
		Pattern:   "summarize",
		InputText: "long article text",
	})

	success, ok := outcome.(Success)
	require.True(t, ok, "expected Success, got %T", outcome)
	assert.Equal(t, "summarize", success.Pattern)
	assert.False(t, success.AutoSelected)
	assert.Equal(t, "the summary", success.Body)

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "template for summarize", runner.lastSys)
	assert.Equal(t, "long article text", runner.lastIn)
}

func TestDispatchExplicitPatternSkipsClassification(t *testing.T) {
	// A task that would classify to youtube_summary must not override the
	// explicit pattern.
	runner := &mockRunner{response: "out"}
	catalog := newTestCatalog(t, "extract_wisdom", "youtube_summary")
	d := NewDispatcher(catalog, source.NewLoaders(), runner)

	outcome := d.Dispatch(context.Background(), Request{
		Task:      "summarize this video",
		Pattern:   "extract_wisdom",
		InputText: "content",
	})

	success, ok := outcome.(Success)
	require.True(t, ok)
	assert.Equal(t, "extract_wisdom", success.Pattern)
	assert.False(t, success.AutoSelected)
}

func TestDispatchAutoSelection(t *testing.T) {
	runner := &mockRunner{response: "out"}
	catalog := newTestCatalog(t, "youtube_summary")
	loader := &stubLoader{content: "transcript"}
	loaders := source.NewLoaders(source.WithLoader(source.KindYouTube, loader))
	d := NewDispatcher(catalog, loaders, runner)

	outcome := d.Dispatch(context.Background(), Request{
		Task:   "summarize this video",
		Source: "yt:dQw4w9WgXcQ",
	})

	success, ok := outcome.(Success)
	require.True(t, ok, "expected Success, got %T", outcome)
	assert.Equal(t, "youtube_summary", success.Pattern)
	assert.True(t, success.AutoSelected)
	assert.Equal(t, "transcript", runner.lastIn)
	assert.Equal(t, 1, loader.calls)
}

func TestDispatchSuggestionsOnMiss(t *testing.T) {
	runner := &mockRunner{response: "never"}
	catalog := newTestCatalog(t, "summarize")
	loader := &stubLoader{content: "content"}
	loaders := source.NewLoaders(source.WithLoader(source.KindURL, loader))
	d := NewDispatcher(catalog, loaders, runner)

	outcome := d.Dispatch(context.Background(), Request{
		Task:   "translate this into french",
		Source: "url:https://example.com",
	})

	suggestions, ok := outcome.(SuggestionSet)
	require.True(t, ok, "expected SuggestionSet, got %T", outcome)
	assert.Equal(t, "translate this into french", suggestions.Task)
	assert.GreaterOrEqual(t, len(suggestions.Suggestions), 2)
	assert.LessOrEqual(t, len(suggestions.Suggestions), 4)
	assert.NotEmpty(t, suggestions.Hint)

	// A classification miss is decided before any content is touched.
	assert.Equal(t, 0, loader.calls)
	assert.Equal(t, 0, runner.calls)
}

func TestDispatchLoadFailureShortCircuits(t *testing.T) {
	runner := &mockRunner{response: "never"}
	catalog := newTestCatalog(t, "summarize")
	loader := &stubLoader{err: errors.New("file not found: /tmp/nope.txt")}
	loaders := source.NewLoaders(source.WithLoader(source.KindFile, loader))
	d := NewDispatcher(catalog, loaders, runner)

	outcome := d.Dispatch(context.Background(), Request{
		Task:   "summarize this",
		Source: "file:/tmp/nope.txt",
	})

	failure, ok := outcome.(Failure)
	require.True(t, ok, "expected Failure, got %T", outcome)
	assert.Equal(t, "file:/tmp/nope.txt", failure.Source)
	assert.Contains(t, failure.Message, "file not found")

	// The model is never invoked when loading fails.
	assert.Equal(t, 0, runner.calls)
}

func TestDispatchResolveFailure(t *testing.T) {
	runner := &mockRunner{}
	d := NewDispatcher(newTestCatalog(t, "summarize"), source.NewLoaders(), runner)

	outcome := d.Dispatch(context.Background(), Request{
		Task:   "summarize this",
		Source: "gopher:whatever",
	})

	failure, ok := outcome.(Failure)
	require.True(t, ok)
	assert.Equal(t, "gopher:whatever", failure.Source)
	assert.Contains(t, failure.Message, "unknown prefix")
	assert.Equal(t, 0, runner.calls)
}

func TestDispatchMissingTaskAndPattern(t *testing.T) {
	d := NewDispatcher(newTestCatalog(t), source.NewLoaders(), &mockRunner{})

	outcome := d.Dispatch(context.Background(), Request{InputText: "content"})

	failure, ok := outcome.(Failure)
	require.True(t, ok)
	assert.Contains(t, failure.Message, "'task' or 'pattern'")
}

func TestDispatchNoContent(t *testing.T) {
	d := NewDispatcher(newTestCatalog(t, "summarize"), source.NewLoaders(), &mockRunner{})

	outcome := d.Dispatch(context.Background(), Request{Pattern: "summarize"})

	failure, ok := outcome.(Failure)
	require.True(t, ok)
	assert.Contains(t, failure.Message, "no content")
}

func TestDispatchUnknownPattern(t *testing.T) {
	runner := &mockRunner{}
	d := NewDispatcher(newTestCatalog(t, "summarize"), source.NewLoaders(), runner)

	outcome := d.Dispatch(context.Background(), Request{
		Pattern:   "does_not_exist",
		InputText: "content",
	})

	failure, ok := outcome.(Failure)
	require.True(t, ok)
	assert.Equal(t, "does_not_exist", failure.Source)
	assert.Contains(t, failure.Message, "not found")
	assert.Equal(t, 0, runner.calls)
}

func TestDispatchRunnerFailure(t *testing.T) {
	runner := &mockRunner{err: errors.New("claude CLI exited with status 1")}
	d := NewDispatcher(newTestCatalog(t, "summarize"), source.NewLoaders(), runner)

	outcome := d.Dispatch(context.Background(), Request{
		Pattern:   "summarize",
		InputText: "content",
	})

	failure, ok := outcome.(Failure)
	require.True(t, ok)
	assert.Equal(t, "summarize", failure.Source)
	assert.Contains(t, failure.Message, "pattern execution failed")
	assert.Contains(t, failure.Message, "claude CLI exited with status 1")
}

func TestDispatchInputTextBypassesLoading(t *testing.T) {
	runner := &mockRunner{response: "out"}
	loader := &stubLoader{content: "loaded"}
	loaders := source.NewLoaders(source.WithLoader(source.KindURL, loader))
	d := NewDispatcher(newTestCatalog(t, "summarize"), loaders, runner)

	outcome := d.Dispatch(context.Background(), Request{
		Pattern:   "summarize",
		Source:    "url:https://example.com",
		InputText: "inline content",
	})

	_, ok := outcome.(Success)
	require.True(t, ok)
	assert.Equal(t, "inline content", runner.lastIn)
	assert.Equal(t, 0, loader.calls)
}

func TestDispatchFabricPrefixNormalized(t *testing.T) {
	runner := &mockRunner{response: "out"}
	d := NewDispatcher(newTestCatalog(t, "summarize"), source.NewLoaders(), runner)

	outcome := d.Dispatch(context.Background(), Request{
		Pattern:   "fabric:summarize",
		InputText: "content",
	})

	success, ok := outcome.(Success)
	require.True(t, ok)
	assert.Equal(t, "summarize", success.Pattern)
}

func TestDispatchCustomSuggestCatalog(t *testing.T) {
	entries := []pattern.CatalogEntry{
		{Pattern: "my_custom", Description: "custom", Keywords: []string{"frobnicate"}},
		{Pattern: "my_other", Description: "other", Keywords: []string{"other"}},
	}
	d := NewDispatcher(newTestCatalog(t), source.NewLoaders(), &mockRunner{},
		WithSuggestCatalog(entries))

	outcome := d.Dispatch(context.Background(), Request{Task: "frobnicate the widget"})

	suggestions, ok := outcome.(SuggestionSet)
	require.True(t, ok)
	require.NotEmpty(t, suggestions.Suggestions)
	assert.Equal(t, "my_custom", suggestions.Suggestions[0].Pattern)
}
