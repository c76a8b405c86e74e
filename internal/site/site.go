// Package site renders publication pages and the grouped index, and keeps
// the output directory in sync with the current bibliography.
package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LambdaLambdaLambda/albertocarraro/internal/config"
	"github.com/LambdaLambdaLambda/albertocarraro/internal/publication"
	"github.com/LambdaLambdaLambda/albertocarraro/internal/slug"
)

// PublicationDir is the per-publication output directory under the root.
const PublicationDir = "publication"

// IndexDir is the directory holding the index page under the root.
const IndexDir = "publications"

// ErrDuplicateSlug is returned when two entries resolve to the same output
// filename stem.
var ErrDuplicateSlug = errors.New("duplicate slug")

// Generator renders a set of publications into an output directory.
// The slug set lives on the generator, not in package state, so independent
// generators never interfere.
type Generator struct {
	cfg  *config.Config
	pubs []publication.Publication
}

// Result reports what a generation run did.
type Result struct {
	Written int      `json:"written"`
	Removed []string `json:"removed,omitempty"`
}

// New builds a generator, deriving a slug for every publication. A slug
// collision is a hard error: two entries must never share an output file.
func New(cfg *config.Config, pubs []publication.Publication) (*Generator, error) {
	seen := make(map[string]string, len(pubs)) // slug -> citation key
	prepared := make([]publication.Publication, len(pubs))
	for i, p := range pubs {
		s, err := slug.Make(p.Key)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", p.Key, err)
		}
		if prev, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w %q: entries %q and %q would overwrite the same page", ErrDuplicateSlug, s, prev, p.Key)
		}
		seen[s] = p.Key
		p.Slug = s
		prepared[i] = p
	}
	return &Generator{cfg: cfg, pubs: prepared}, nil
}

// Publications returns the prepared publications with slugs assigned.
func (g *Generator) Publications() []publication.Publication {
	return g.pubs
}

// Generate renders every page, removes stale per-publication files, and
// writes the output. All pages are rendered before anything touches disk,
// so a render failure leaves the output directory unchanged.
func (g *Generator) Generate() (Result, error) {
	var res Result

	pages := make(map[string][]byte, len(g.pubs)) // slug -> page bytes
	for _, p := range g.pubs {
		html, err := g.renderPublicationPage(p)
		if err != nil {
			return res, fmt.Errorf("rendering page for %q: %w", p.Key, err)
		}
		pages[p.Slug] = html
	}

	index, err := g.renderIndexPage()
	if err != nil {
		return res, fmt.Errorf("rendering index: %w", err)
	}

	pubDir := filepath.Join(g.cfg.Output, PublicationDir)
	if err := os.MkdirAll(pubDir, 0755); err != nil {
		return res, fmt.Errorf("creating output directory %s: %w", pubDir, err)
	}
	indexDir := filepath.Join(g.cfg.Output, IndexDir)
	if err := os.MkdirAll(indexDir, 0755); err != nil {
		return res, fmt.Errorf("creating output directory %s: %w", indexDir, err)
	}

	removed, err := removeStale(pubDir, pages)
	if err != nil {
		return res, err
	}
	res.Removed = removed

	for s, html := range pages {
		path := filepath.Join(pubDir, s+".html")
		if err := os.WriteFile(path, html, 0644); err != nil {
			return res, fmt.Errorf("writing %s: %w", path, err)
		}
		res.Written++
	}

	indexPath := filepath.Join(indexDir, "index.html")
	if err := os.WriteFile(indexPath, index, 0644); err != nil {
		return res, fmt.Errorf("writing %s: %w", indexPath, err)
	}
	res.Written++

	return res, nil
}

// removeStale deletes .html files in the per-publication directory that no
// longer correspond to a current slug. Files outside that directory, and
// non-HTML files inside it, are never touched.
func removeStale(pubDir string, pages map[string][]byte) ([]string, error) {
	dirEntries, err := os.ReadDir(pubDir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory %s: %w", pubDir, err)
	}

	var removed []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".html") {
			continue
		}
		stem := strings.TrimSuffix(de.Name(), ".html")
		if _, ok := pages[stem]; ok {
			continue
		}
		path := filepath.Join(pubDir, de.Name())
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("removing stale page %s: %w", path, err)
		}
		removed = append(removed, de.Name())
	}
	return removed, nil
}
