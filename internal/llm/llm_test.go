package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinedPrompt(t *testing.T) {
	t.Run("system and user", func(t *testing.T) {
		req := &Request{SystemPrompt: "You summarize.", UserPrompt: "the content"}
		assert.Equal(t, "You summarize.\n\nthe content", req.CombinedPrompt())
	})

	t.Run("user only", func(t *testing.T) {
		req := &Request{UserPrompt: "the content"}
		assert.Equal(t, "the content", req.CombinedPrompt())
	})
}

type fakeProvider struct {
	name string
}

func (p *fakeProvider) Execute(_ context.Context, req *Request) (string, error) {
	return "echo: " + req.UserPrompt, nil
}
func (p *fakeProvider) Name() string { return p.name }
func (p *fakeProvider) Close() error { return nil }

func TestRegistry(t *testing.T) {
	RegisterProvider("faketest", func(cfg Config) (Provider, error) {
		return &fakeProvider{name: "faketest"}, nil
	}, ProviderInfo{
		Name:         "faketest",
		DisplayName:  "Fake Test",
		DefaultModel: "fake-1",
		Available:    true,
		Path:         "/usr/bin/fake",
	})

	t.Run("new by name", func(t *testing.T) {
		p, err := New(Config{Provider: "faketest"})
		require.NoError(t, err)
		assert.Equal(t, "faketest", p.Name())

		out, err := p.Execute(context.Background(), &Request{UserPrompt: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "echo: hello", out)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(Config{Provider: "nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider")
		assert.Contains(t, err.Error(), "faketest")
	})

	t.Run("default picks an available provider", func(t *testing.T) {
		p, err := NewDefault(Config{})
		require.NoError(t, err)
		assert.NotEmpty(t, p.Name())
	})

	t.Run("provider info", func(t *testing.T) {
		info := GetProviderInfo("faketest")
		require.NotNil(t, info)
		assert.Equal(t, "Fake Test", info.DisplayName)
		assert.Equal(t, "fake-1", info.DefaultModel)

		assert.Nil(t, GetProviderInfo("nope"))
	})

	t.Run("display name lookup", func(t *testing.T) {
		info := GetProviderByDisplayName("Fake Test")
		require.NotNil(t, info)
		assert.Equal(t, "faketest", info.Name)
	})
}

func TestValidateAPIKey(t *testing.T) {
	RegisterProvider("keytest", func(cfg Config) (Provider, error) {
		return &fakeProvider{name: "keytest"}, nil
	}, ProviderInfo{
		Name:   "keytest",
		APIKey: APIKeyConfig{Required: true, EnvVarName: "KEYTEST_API_KEY", Prefix: "kt-"},
	})

	assert.NoError(t, ValidateAPIKey("keytest", "kt-abc123"))

	err := ValidateAPIKey("keytest", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")

	err = ValidateAPIKey("keytest", "wrong-prefix")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kt-")

	require.Error(t, ValidateAPIKey("nope", "anything"))

	assert.True(t, RequiresAPIKey("keytest"))
	assert.False(t, RequiresAPIKey("nope"))
}

func TestListProvidersOrdering(t *testing.T) {
	RegisterProvider("apitest", func(cfg Config) (Provider, error) {
		return &fakeProvider{name: "apitest"}, nil
	}, ProviderInfo{
		Name:   "apitest",
		APIKey: APIKeyConfig{Required: true, EnvVarName: "APITEST_KEY"},
	})

	infos := ListProviders()
	require.NotEmpty(t, infos)

	// CLI providers sort before API providers.
	sawAPI := false
	for _, info := range infos {
		isAPI := info.Path == "" && info.APIKey.Required
		if isAPI {
			sawAPI = true
		} else {
			assert.False(t, sawAPI, "CLI provider %s listed after an API provider", info.Name)
		}
	}
}
