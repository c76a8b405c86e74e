package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "site.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Bibliography != "my_publications.bib" {
		t.Errorf("Bibliography = %q, want default", cfg.Bibliography)
	}
	if cfg.Output != "docs" {
		t.Errorf("Output = %q, want docs", cfg.Output)
	}
	if cfg.BaseURL != "/albertocarraro" {
		t.Errorf("BaseURL = %q, want /albertocarraro", cfg.BaseURL)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yml")
	data := `bibliography: refs.bib
output: public
base_url: /mysite
site_title: My Site
scholar_url: https://scholar.google.com/citations?user=abc
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Bibliography != "refs.bib" {
		t.Errorf("Bibliography = %q, want refs.bib", cfg.Bibliography)
	}
	if cfg.Output != "public" {
		t.Errorf("Output = %q, want public", cfg.Output)
	}
	if cfg.BaseURL != "/mysite" {
		t.Errorf("BaseURL = %q, want /mysite", cfg.BaseURL)
	}
	if cfg.ScholarURL != "https://scholar.google.com/citations?user=abc" {
		t.Errorf("ScholarURL = %q", cfg.ScholarURL)
	}
	// Unset file keys keep their defaults.
	if cfg.AuthorName == "" {
		t.Error("AuthorName default lost")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvBibliography, "env.bib")
	t.Setenv(EnvOutput, "env-out")
	t.Setenv(EnvBaseURL, "/env")

	cfg, err := Load(filepath.Join(t.TempDir(), "site.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Bibliography != "env.bib" || cfg.Output != "env-out" || cfg.BaseURL != "/env" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yml")
	if err := os.WriteFile(path, []byte("output: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{Bibliography: "a.bib", Output: "docs", BaseURL: "/x"},
		},
		{
			name: "empty base_url allowed",
			cfg:  Config{Bibliography: "a.bib", Output: "docs"},
		},
		{
			name:    "missing bibliography",
			cfg:     Config{Output: "docs"},
			wantErr: "bibliography",
		},
		{
			name:    "missing output",
			cfg:     Config{Bibliography: "a.bib"},
			wantErr: "output",
		},
		{
			name:    "relative base_url",
			cfg:     Config{Bibliography: "a.bib", Output: "docs", BaseURL: "x"},
			wantErr: "base_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tilde path", "~/refs.bib", filepath.Join(home, "refs.bib")},
		{"plain path", "/abs/refs.bib", "/abs/refs.bib"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTilde(tt.input); got != tt.want {
				t.Errorf("ExpandTilde(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
