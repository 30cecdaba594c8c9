package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/patternagent/fabric-agent/internal/dispatch"
)

var (
	runPattern     string
	runSource      string
	runInput       string
	runStdin       bool
	runInteractive bool
)

var runCmd = &cobra.Command{
	Use:   "run [task description...]",
	Short: "Run a Fabric pattern against a source or raw input",
	Long: `Run a Fabric pattern. Name the pattern with --pattern, or describe the
task and let the classifier auto-select one. Content comes from --source
(yt:, pdf:, url:, github:, file:), --input, or --stdin.

Examples:
  fabric-agent run summarize video --source yt:dQw4w9WgXcQ
  fabric-agent run extract insights --source file:~/notes.md
  fabric-agent run --pattern extract_wisdom --source url:example.com/post
  cat report.txt | fabric-agent run analyze threat report --stdin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		task := strings.Join(args, " ")

		input := runInput
		if runStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			input = string(data)
		}

		dispatcher, cleanup, err := buildDispatcher()
		if err != nil {
			return err
		}
		defer cleanup()

		req := dispatch.Request{
			Task:      task,
			Pattern:   runPattern,
			Source:    runSource,
			InputText: input,
		}
		outcome := dispatcher.Dispatch(cmd.Context(), req)

		// In interactive mode an unmatched task turns into a pattern picker
		// instead of a printed suggestion list.
		if suggestions, ok := outcome.(dispatch.SuggestionSet); ok && runInteractive {
			chosen, err := pickSuggestion(suggestions)
			if err != nil {
				return err
			}
			req.Pattern = chosen
			outcome = dispatcher.Dispatch(cmd.Context(), req)
		}

		fmt.Println(dispatch.Render(outcome))

		if _, failed := outcome.(dispatch.Failure); failed {
			os.Exit(1)
		}
		return nil
	},
}

// pickSuggestion presents ranked pattern candidates for selection.
func pickSuggestion(s dispatch.SuggestionSet) (string, error) {
	items := make([]string, 0, len(s.Suggestions))
	for _, sug := range s.Suggestions {
		items = append(items, fmt.Sprintf("%s (%s)", sug.Pattern, sug.Rationale))
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	selectPrompt := promptui.Select{
		Label:     fmt.Sprintf("No pattern matched %q - pick one", s.Task),
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}

	index, _, err := selectPrompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled")
	}
	return s.Suggestions[index].Pattern, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runPattern, "pattern", "p", "", "specific pattern name to run (skips auto-selection)")
	runCmd.Flags().StringVarP(&runSource, "source", "s", "", "content source URI (yt:, pdf:, url:, github:, file:)")
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "raw input text to process")
	runCmd.Flags().BoolVar(&runStdin, "stdin", false, "read input text from stdin")
	runCmd.Flags().BoolVar(&runInteractive, "interactive", false, "pick from suggestions interactively when no pattern matches")
}
