// Package llm provides a unified interface for LLM providers.
//
// Every Execute call is a fresh, isolated invocation: CLI providers spawn a
// one-shot process, API providers send a single stateless request. No
// provider maintains conversation history between calls, so content passed
// to a provider can never leak into or be influenced by unrelated context.
package llm

import "context"

// Request is a provider-agnostic prompt. SystemPrompt carries instructions
// (a pattern template); UserPrompt carries the content to process.
type Request struct {
	SystemPrompt string
	UserPrompt   string
}

// CombinedPrompt returns system and user prompts combined, for providers
// that accept a single prompt string.
func (r *Request) CombinedPrompt() string {
	if r.SystemPrompt == "" {
		return r.UserPrompt
	}
	return r.SystemPrompt + "\n\n" + r.UserPrompt
}

// Provider is the interface for LLM providers.
type Provider interface {
	// Execute sends one isolated request and returns the response text.
	Execute(ctx context.Context, req *Request) (string, error)
	// Name returns the provider name.
	Name() string
	// Close releases any resources held by the provider.
	Close() error
}

// Config holds LLM provider configuration.
type Config struct {
	Provider string // "claudecode", "geminicli", "openaiapi"
	Model    string // Model name (optional, uses provider default)
	Verbose  bool   // Enable verbose logging
}

// ModelInfo describes a model available for a provider.
type ModelInfo struct {
	ID          string // Internal model identifier (e.g., "sonnet", "gpt-4o-mini")
	DisplayName string // Human-readable name for UI
	Description string // Short description
	Recommended bool   // Default/recommended model flag
}

// APIKeyConfig describes API key requirements for a provider.
type APIKeyConfig struct {
	Required   bool   // Whether this provider requires an API key
	EnvVarName string // Environment variable name (e.g., "OPENAI_API_KEY")
	Prefix     string // Expected prefix for validation (e.g., "sk-")
}

// ProviderInfo contains provider metadata.
type ProviderInfo struct {
	Name         string
	DisplayName  string
	DefaultModel string
	Available    bool
	Path         string       // CLI path or empty for API providers
	Models       []ModelInfo  // Available models for this provider
	APIKey       APIKeyConfig // API key configuration
}
