package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/patternagent/fabric-agent/internal/config"
	"github.com/patternagent/fabric-agent/internal/llm"
	"github.com/patternagent/fabric-agent/internal/pattern"
	"github.com/patternagent/fabric-agent/internal/util/env"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure LLM provider and pattern settings",
	Long: `Configure fabric-agent: LLM provider, model, and patterns directory.

Examples:
  fabric-agent config                 # Interactive configuration
  fabric-agent config --show          # Show current configuration
  fabric-agent config --reset         # Reset to defaults`,
	Run: runConfig,
}

var (
	configShow  bool
	configReset bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configShow, "show", false, "Show current configuration")
	configCmd.Flags().BoolVar(&configReset, "reset", false, "Reset configuration to defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if configShow {
		showConfig()
		return
	}

	if configReset {
		resetConfig()
		return
	}

	fmt.Println("🔧 fabric-agent Configuration")
	fmt.Println()

	providerName, ok := configureProvider()
	if !ok {
		return
	}

	info := llm.GetProviderInfo(providerName)

	if llm.RequiresAPIKey(providerName) && env.GetAPIKey(info.APIKey.EnvVarName) == "" {
		if !promptAPIKey(info) {
			return
		}
	}

	model := configureModel(info)

	if err := config.UpdateLLM(providerName, model); err != nil {
		fmt.Printf("❌ Failed to save configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n✓ Configuration saved!")
	fmt.Printf("  Provider: %s\n", info.DisplayName)
	if model != "" {
		fmt.Printf("  Model: %s\n", model)
	}
	fmt.Printf("  Config file: %s\n", config.GetConfigPath())

	configurePatternsDir()
}

// configureProvider shows the provider picker with availability status.
func configureProvider() (string, bool) {
	infos := llm.ListProviders()

	var items []string
	for _, info := range infos {
		status := "✗ not available"
		if info.Available {
			status = "✓ available"
		}
		if info.APIKey.Required && env.GetAPIKey(info.APIKey.EnvVarName) != "" {
			status = "✓ key configured"
		}
		items = append(items, fmt.Sprintf("%s (%s)", info.DisplayName, status))
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	selectPrompt := promptui.Select{
		Label:     "Select LLM provider",
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}

	index, _, err := selectPrompt.Run()
	if err != nil {
		fmt.Println("\nConfiguration cancelled")
		return "", false
	}

	selected := infos[index]
	if !selected.Available && !selected.APIKey.Required {
		fmt.Printf("\n⚠️  %s is not installed or not in PATH\n", selected.DisplayName)
		fmt.Println("Please install it first and try again")
		return "", false
	}

	return selected.Name, true
}

// configureModel lets the user pick a model, defaulting to the recommended one.
func configureModel(info *llm.ProviderInfo) string {
	if len(info.Models) == 0 {
		return ""
	}

	var items []string
	for _, m := range info.Models {
		label := fmt.Sprintf("%s - %s", m.DisplayName, m.Description)
		if m.Recommended {
			label += " (recommended)"
		}
		items = append(items, label)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	selectPrompt := promptui.Select{
		Label:     "Select model",
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}

	index, _, err := selectPrompt.Run()
	if err != nil {
		return info.DefaultModel
	}
	return info.Models[index].ID
}

// promptAPIKey asks for and stores an API key in the .env file.
func promptAPIKey(info *llm.ProviderInfo) bool {
	fmt.Printf("\n%s requires an API key (%s)\n", info.DisplayName, info.APIKey.EnvVarName)

	prompt := promptui.Prompt{
		Label: "API key",
		Mask:  '*',
		Validate: func(input string) error {
			return llm.ValidateAPIKey(info.Name, strings.TrimSpace(input))
		},
	}

	key, err := prompt.Run()
	if err != nil {
		fmt.Println("\nAPI key entry cancelled")
		return false
	}

	if err := env.SaveKeyToEnvFile(env.EnvFilePath(), info.APIKey.EnvVarName, strings.TrimSpace(key)); err != nil {
		fmt.Printf("❌ Failed to save API key: %v\n", err)
		return false
	}

	fmt.Printf("✓ API key saved to %s\n", env.EnvFilePath())
	return true
}

// configurePatternsDir checks the patterns directory and offers to change it.
func configurePatternsDir() {
	cfg, err := config.Load()
	if err != nil {
		return
	}

	dir := cfg.PatternsDir
	if dir == "" {
		dir = pattern.DefaultDir()
	}

	catalog := pattern.NewCatalog(dir)
	names, err := catalog.List()
	if err == nil && len(names) > 0 {
		fmt.Printf("\n✓ Patterns directory: %s (%d patterns)\n", dir, len(names))
		return
	}

	fmt.Printf("\n⚠️  No patterns found in %s\n", dir)
	fmt.Println("   Clone them with:")
	fmt.Println("     git clone https://github.com/danielmiessler/fabric")
	fmt.Println("     cp -r fabric/data/patterns ~/.config/fabric/")

	prompt := promptui.Prompt{
		Label:   "Patterns directory",
		Default: dir,
	}

	input, err := prompt.Run()
	if err != nil {
		return
	}
	input = strings.TrimSpace(input)
	if input == "" || input == dir {
		return
	}

	cfg.PatternsDir = input
	if err := config.Save(cfg); err != nil {
		fmt.Printf("❌ Failed to save configuration: %v\n", err)
		return
	}
	fmt.Printf("✓ Patterns directory set to %s\n", input)
}

func showConfig() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Current Configuration:")
	if cfg.LLM.Provider != "" {
		fmt.Printf("  Provider: %s\n", cfg.LLM.Provider)
	} else {
		fmt.Println("  Provider: (auto-detect)")
	}
	if cfg.LLM.Model != "" {
		fmt.Printf("  Model: %s\n", cfg.LLM.Model)
	}

	dir := cfg.PatternsDir
	if dir == "" {
		dir = pattern.DefaultDir()
	}
	fmt.Printf("  Patterns directory: %s\n", dir)

	catalog := pattern.NewCatalog(dir)
	if names, err := catalog.List(); err == nil {
		fmt.Printf("  Patterns installed: %d\n", len(names))
	} else {
		fmt.Println("  Patterns installed: 0 (directory missing)")
	}

	fmt.Printf("\nConfig file: %s\n", config.GetConfigPath())

	fmt.Println("\nDetected CLI tools:")
	for _, cli := range llm.DetectAvailableCLIs() {
		status := "✗"
		detail := ""
		if cli.Available {
			status = "✓"
			if cli.Version != "" {
				detail = fmt.Sprintf(" (%s)", cli.Version)
			}
		}
		fmt.Printf("  %s %s%s\n", status, cli.Name, detail)
	}

	fmt.Println("\nAPI providers:")
	for _, info := range llm.ListProviders() {
		if !info.APIKey.Required {
			continue
		}
		status := "✗ key not set"
		if env.GetAPIKey(info.APIKey.EnvVarName) != "" {
			status = "✓ key configured"
		}
		fmt.Printf("  %s: %s\n", info.DisplayName, status)
	}
}

func resetConfig() {
	fmt.Println("🔄 Resetting configuration to defaults...")

	prompt := promptui.Prompt{
		Label:     "Reset fabric-agent configuration",
		IsConfirm: true,
	}

	result, err := prompt.Run()
	if err != nil || strings.ToLower(result) != "y" {
		fmt.Println("\nReset cancelled")
		return
	}

	if err := config.Save(&config.Config{}); err != nil {
		fmt.Printf("❌ Failed to reset configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Configuration reset")
	fmt.Println("\nRun 'fabric-agent config' to configure a provider")
}
