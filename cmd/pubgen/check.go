package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LambdaLambdaLambda/albertocarraro/internal/config"
	"github.com/LambdaLambdaLambda/albertocarraro/internal/linkcheck"
)

var (
	checkOutput string
	checkConfig string
)

func init() {
	checkCmd.Flags().StringVar(&checkOutput, "output", "", "Output root directory (overrides config)")
	checkCmd.Flags().StringVar(&checkConfig, "config", config.DefaultConfigFile, "Site config file")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify generated pages and their internal links",
	Long: `Verify generated pages and their internal links.

Parses every generated HTML file and checks that links into the site
resolve to files under the output root. Exits non-zero when issues are
found.`,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status string            `json:"status"`
	Issues []linkcheck.Issue `json:"issues,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(checkConfig)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if checkOutput != "" {
		cfg.Output = checkOutput
	}

	issues, err := linkcheck.VerifySite(cfg.Output, cfg.BaseURL)
	if err != nil {
		exitWithError(ExitError, "checking site: %v", err)
	}

	result := CheckResult{Status: "ok", Issues: issues}
	if len(issues) > 0 {
		result.Status = "issues"
	}

	if humanOutput {
		if len(issues) == 0 {
			outputHuman("OK: all internal links resolve\n")
		} else {
			for _, issue := range issues {
				outputHuman("%s: %s (%s)\n", issue.Page, issue.Link, issue.Reason)
			}
		}
	} else {
		if err := outputJSON(result); err != nil {
			return err
		}
	}

	if len(issues) > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}
