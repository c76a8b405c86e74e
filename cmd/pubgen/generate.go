package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LambdaLambdaLambda/albertocarraro/internal/bibtex"
	"github.com/LambdaLambdaLambda/albertocarraro/internal/config"
	"github.com/LambdaLambdaLambda/albertocarraro/internal/publication"
	"github.com/LambdaLambdaLambda/albertocarraro/internal/site"
	"github.com/LambdaLambdaLambda/albertocarraro/internal/slug"
)

var (
	generateInput  string
	generateOutput string
	generateConfig string
)

func init() {
	generateCmd.Flags().StringVar(&generateInput, "input", "", "Bibliography file (overrides config)")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "Output root directory (overrides config)")
	generateCmd.Flags().StringVar(&generateConfig, "config", config.DefaultConfigFile, "Site config file")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate publication pages and the index",
	Long: `Generate publication pages and the index.

Reads the bibliography, writes publication/<slug>.html for every entry and
publications/index.html, and removes pages for entries that are gone.
Malformed entries are skipped with a warning; the run still succeeds.

Examples:
  pubgen generate
  pubgen generate --input my_publications.bib --output docs
  pubgen generate --config site.yml --human`,
	RunE: runGenerate,
}

// GenerateResult is the response for the generate command.
type GenerateResult struct {
	Found    int      `json:"found"`
	Parsed   int      `json:"parsed"`
	Skipped  int      `json:"skipped"`
	Written  int      `json:"written"`
	Removed  []string `json:"removed,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(generateConfig)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if generateInput != "" {
		cfg.Bibliography = generateInput
	}
	if generateOutput != "" {
		cfg.Output = generateOutput
	}

	result, err := generateSite(cfg)
	for _, w := range result.Warnings {
		warn("%s", w)
	}
	if err != nil {
		exitWithError(generateExitCode(err), "%v", err)
	}

	if humanOutput {
		outputHuman("Found %d entries, parsed %d, skipped %d\n", result.Found, result.Parsed, result.Skipped)
		outputHuman("Wrote %d files to %s\n", result.Written, cfg.Output)
		for _, name := range result.Removed {
			outputHuman("Removed stale page %s\n", name)
		}
		return nil
	}
	return outputJSON(result)
}

// generateSite runs the full parse-render-write pipeline. Warnings in the
// result are valid even when an error is returned.
func generateSite(cfg *config.Config) (GenerateResult, error) {
	var result GenerateResult

	data, err := os.ReadFile(cfg.Bibliography)
	if err != nil {
		return result, fmt.Errorf("reading bibliography %s: %w", cfg.Bibliography, err)
	}

	entries, stats, parseErrs := bibtex.Parse(data)
	result.Found = stats.Found
	result.Parsed = stats.Parsed
	result.Skipped = stats.Found - stats.Parsed
	for _, perr := range parseErrs {
		result.Warnings = append(result.Warnings, fmt.Sprintf("skipping %v", perr))
	}

	pubs := make([]publication.Publication, len(entries))
	for i, e := range entries {
		pubs[i] = publication.FromEntry(e)
	}

	gen, err := site.New(cfg, pubs)
	if err != nil {
		return result, err
	}

	res, err := gen.Generate()
	result.Written = res.Written
	result.Removed = res.Removed
	return result, err
}

// generateExitCode classifies a pipeline error: data problems (unreadable
// input, slug collisions) versus filesystem failures.
func generateExitCode(err error) int {
	if errors.Is(err, site.ErrDuplicateSlug) || errors.Is(err, slug.ErrEmpty) ||
		errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ExitDataError
	}
	return ExitError
}
