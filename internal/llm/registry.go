package llm

import (
	"fmt"
	"sort"
	"strings"
)

// providerFactory creates a Provider instance.
type providerFactory func(cfg Config) (Provider, error)

var providers = make(map[string]providerFactory)
var providerMeta = make(map[string]ProviderInfo)

// RegisterProvider registers a provider factory.
// Called by provider packages in their init() functions.
func RegisterProvider(name string, factory providerFactory, info ProviderInfo) {
	providers[name] = factory
	providerMeta[name] = info
}

// New creates a new LLM provider based on the configuration.
// Returns an error if the provider is not available (CLI not installed,
// API key missing, etc.)
func New(cfg Config) (Provider, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (available: %s)", cfg.Provider, availableProviders())
	}
	return factory(cfg)
}

// NewDefault creates a provider from the first available registration when
// no provider is configured: CLI providers first (no key setup needed),
// then API providers with a configured key.
func NewDefault(cfg Config) (Provider, error) {
	if cfg.Provider != "" {
		return New(cfg)
	}

	for _, info := range ListProviders() {
		if !info.Available {
			continue
		}
		cfg.Provider = info.Name
		return New(cfg)
	}
	return nil, fmt.Errorf("no LLM provider available: install a provider CLI or configure an API key (run 'fabric-agent config')")
}

// GetProviderInfo returns metadata for a provider.
func GetProviderInfo(name string) *ProviderInfo {
	info, ok := providerMeta[name]
	if !ok {
		return nil
	}
	return &info
}

// ListProviders returns info for all registered providers, sorted by name
// with CLI providers before API providers.
func ListProviders() []ProviderInfo {
	result := make([]ProviderInfo, 0, len(providerMeta))
	for _, info := range providerMeta {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		iCLI := result[i].Path != "" || !result[i].APIKey.Required
		jCLI := result[j].Path != "" || !result[j].APIKey.Required
		if iCLI != jCLI {
			return iCLI
		}
		return result[i].Name < result[j].Name
	})
	return result
}

func availableProviders() string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// GetProviderByDisplayName returns provider info by display name.
func GetProviderByDisplayName(displayName string) *ProviderInfo {
	for _, info := range providerMeta {
		if info.DisplayName == displayName {
			infoCopy := info
			return &infoCopy
		}
	}
	return nil
}

// RequiresAPIKey returns true if the provider requires an API key.
func RequiresAPIKey(providerName string) bool {
	info := GetProviderInfo(providerName)
	if info == nil {
		return false
	}
	return info.APIKey.Required
}

// ValidateAPIKey validates an API key for a provider.
func ValidateAPIKey(providerName, apiKey string) error {
	info := GetProviderInfo(providerName)
	if info == nil {
		return fmt.Errorf("unknown provider: %s", providerName)
	}

	if !info.APIKey.Required {
		return nil
	}
	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	if info.APIKey.Prefix != "" && !strings.HasPrefix(apiKey, info.APIKey.Prefix) {
		return fmt.Errorf("API key should start with '%s'", info.APIKey.Prefix)
	}
	return nil
}
