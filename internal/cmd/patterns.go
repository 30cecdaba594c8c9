package cmd

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/patternagent/fabric-agent/internal/config"
	"github.com/patternagent/fabric-agent/internal/pattern"
)

const upstreamPatternsURL = "https://github.com/danielmiessler/fabric/tree/main/data/patterns"

var patternsShowWeb bool

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Inspect the local pattern catalog",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := openCatalog()
		if err != nil {
			return err
		}

		names, err := catalog.List()
		if err != nil {
			return err
		}

		fmt.Printf("%d patterns in %s:\n", len(names), catalog.Dir())
		for _, name := range names {
			fmt.Println("  " + name)
		}
		return nil
	},
}

var patternsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a pattern's system template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := pattern.NormalizeName(args[0])

		if patternsShowWeb {
			return browser.OpenURL(upstreamPatternsURL + "/" + name)
		}

		catalog, err := openCatalog()
		if err != nil {
			return err
		}

		template, err := catalog.Template(name)
		if err != nil {
			return err
		}
		fmt.Print(template)
		return nil
	},
}

func openCatalog() (*pattern.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return pattern.NewCatalog(cfg.PatternsDir), nil
}

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsShowCmd)

	patternsShowCmd.Flags().BoolVar(&patternsShowWeb, "web", false, "open the upstream pattern page in a browser")
}
