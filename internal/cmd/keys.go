package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/patternagent/fabric-agent/internal/llm"
	"github.com/patternagent/fabric-agent/internal/util/env"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage API keys",
	Long: `Store API keys in the fabric-agent .env file.

Keys:
  OPENAI_API_KEY  Required for the OpenAI API provider
  GITHUB_TOKEN    Optional; raises GitHub rate limits for github: sources`,
	Run: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(_ *cobra.Command, _ []string) {
	options := []string{
		"OpenAI API key (OPENAI_API_KEY)",
		"GitHub token (GITHUB_TOKEN)",
		"Skip",
	}

	var selected string
	prompt := &survey.Select{
		Message: "Which key would you like to set?",
		Options: options,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		fmt.Println("Skipped key configuration")
		return
	}

	switch selected {
	case options[0]:
		saveKey("OPENAI_API_KEY", "Enter your OpenAI API key:", func(key string) error {
			return llm.ValidateAPIKey("openaiapi", key)
		})
	case options[1]:
		saveKey("GITHUB_TOKEN", "Enter your GitHub token:", nil)
	default:
		fmt.Println("Skipped key configuration")
		fmt.Println()
		fmt.Println("Tip: keys can also be set as environment variables or in:")
		fmt.Printf("  %s\n", env.EnvFilePath())
	}
}

func saveKey(name, message string, validate func(string) error) {
	var value string
	prompt := &survey.Password{Message: message}

	if err := survey.AskOne(prompt, &value); err != nil {
		fmt.Println("Cancelled")
		return
	}

	value = cleanKey(value)
	if value == "" {
		fmt.Println("❌ Key cannot be empty")
		return
	}

	if validate != nil {
		if err := validate(value); err != nil {
			fmt.Printf("⚠️  %v\n", err)
			fmt.Println("   Key was saved anyway. Make sure it's correct.")
		}
	}

	if err := env.SaveKeyToEnvFile(env.EnvFilePath(), name, value); err != nil {
		fmt.Printf("❌ Failed to save key: %v\n", err)
		return
	}
	fmt.Printf("✓ %s saved to %s\n", name, env.EnvFilePath())
}

// cleanKey strips whitespace and control characters that sneak in when a key
// is pasted from a terminal or password manager.
func cleanKey(input string) string {
	var result strings.Builder
	for _, r := range input {
		if r >= 33 && r <= 126 {
			result.WriteRune(r)
		}
	}
	return result.String()
}
