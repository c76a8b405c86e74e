package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LambdaLambdaLambda/albertocarraro/internal/config"
	"github.com/LambdaLambdaLambda/albertocarraro/internal/site"
)

const testBibliography = `@article{ac_2024,
  title = {Deep {RGB}-{D} Fusion},
  author = {A. One and B. Two},
  journal = {J. Robotics},
  year = {2024},
  pages = {1--10}
}

@inproceedings{conf_2023,
  title = {A Conference Paper},
  author = {A. One},
  booktitle = {Proc. ICRA},
  year = {2023}
}

@article{broken entry without braces
`

func testSiteConfig(t *testing.T, bib string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	bibPath := filepath.Join(dir, "refs.bib")
	if err := os.WriteFile(bibPath, []byte(bib), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Bibliography = bibPath
	cfg.Output = filepath.Join(dir, "docs")
	return cfg
}

func TestGenerateSite(t *testing.T) {
	cfg := testSiteConfig(t, testBibliography)

	result, err := generateSite(cfg)
	if err != nil {
		t.Fatalf("generateSite() error = %v", err)
	}

	if result.Found != 3 || result.Parsed != 2 || result.Skipped != 1 {
		t.Errorf("counts = %+v, want Found=3 Parsed=2 Skipped=1", result)
	}
	if result.Written != 3 {
		t.Errorf("Written = %d, want 3 (two pages plus index)", result.Written)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "skipping") {
		t.Errorf("Warnings = %v, want one skip warning", result.Warnings)
	}

	for _, path := range []string{
		filepath.Join(cfg.Output, "publication", "ac-2024.html"),
		filepath.Join(cfg.Output, "publication", "conf-2023.html"),
		filepath.Join(cfg.Output, "publications", "index.html"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output file %s", path)
		}
	}
}

func TestGenerateSite_RemovedEntryDeletesPage(t *testing.T) {
	cfg := testSiteConfig(t, testBibliography)

	if _, err := generateSite(cfg); err != nil {
		t.Fatalf("first run error = %v", err)
	}

	// Drop the conference paper and re-run; its page must disappear.
	remaining := strings.SplitN(testBibliography, "@inproceedings", 2)[0]
	if err := os.WriteFile(cfg.Bibliography, []byte(remaining), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := generateSite(cfg)
	if err != nil {
		t.Fatalf("second run error = %v", err)
	}
	if len(result.Removed) != 1 || result.Removed[0] != "conf-2023.html" {
		t.Errorf("Removed = %v, want [conf-2023.html]", result.Removed)
	}
	if _, err := os.Stat(filepath.Join(cfg.Output, "publication", "conf-2023.html")); !os.IsNotExist(err) {
		t.Error("removed entry's page still exists")
	}
}

func TestGenerateSite_MissingInput(t *testing.T) {
	cfg := config.Default()
	cfg.Bibliography = filepath.Join(t.TempDir(), "nope.bib")
	cfg.Output = t.TempDir()

	_, err := generateSite(cfg)
	if err == nil {
		t.Fatal("generateSite() expected error for missing input")
	}
	if generateExitCode(err) != ExitDataError {
		t.Errorf("exit code = %d, want ExitDataError", generateExitCode(err))
	}
}

func TestGenerateExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate slug", site.ErrDuplicateSlug, ExitDataError},
		{"missing file", os.ErrNotExist, ExitDataError},
		{"permission denied", fmt.Errorf("reading bibliography refs.bib: %w", fs.ErrPermission), ExitDataError},
		{"other", errors.New("disk full"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := generateExitCode(tt.err); got != tt.want {
				t.Errorf("generateExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
