package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// verbose is a global flag for verbose output
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "fabric-agent",
	Short: "fabric-agent - Run Fabric AI patterns as isolated subagents",
	Long: `fabric-agent applies Fabric patterns (specialized AI prompts from
https://github.com/danielmiessler/fabric) to content from YouTube videos,
PDFs, web pages, GitHub repositories, local files, or raw text.

Name a pattern explicitly, or describe the task and let the keyword
classifier pick one. Content is loaded and processed in an isolated model
invocation, so large inputs never enter a surrounding conversation.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
