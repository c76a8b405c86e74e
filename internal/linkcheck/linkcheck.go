// Package linkcheck verifies that generated HTML pages are well-formed and
// that their internal links resolve to files in the output directory.
package linkcheck

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Link is one href/src extracted from a page.
type Link struct {
	URL  string // Raw attribute value
	Tag  string // Element the link came from (a, link, img, script)
	Text string // Anchor text, when the element has any
}

// Issue describes a problem found in a generated page.
type Issue struct {
	Page   string `json:"page"`   // Page path relative to the output root
	Link   string `json:"link"`   // Offending link target
	Reason string `json:"reason"` // Why it was flagged
}

// linkAttrs maps elements to the attribute that carries their target.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
}

// ExtractLinks parses HTML and returns every link-bearing attribute value.
func ExtractLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr, ok := linkAttrs[n.Data]; ok {
				for _, a := range n.Attr {
					if a.Key == attr && a.Val != "" {
						links = append(links, Link{URL: a.Val, Tag: n.Data, Text: nodeText(n)})
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

// nodeText concatenates the text content of a node's children.
func nodeText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// VerifySite walks every .html file under outputRoot and checks that links
// under baseURL point at files that exist. External links, anchors, and
// asset paths outside baseURL are ignored; directory links are accepted
// when the directory holds an index.html.
func VerifySite(outputRoot, baseURL string) ([]Issue, error) {
	var issues []Issue

	err := filepath.WalkDir(outputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(outputRoot, path)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		links, perr := ExtractLinks(f)
		f.Close()
		if perr != nil {
			issues = append(issues, Issue{Page: rel, Reason: perr.Error()})
			return nil
		}

		for _, l := range links {
			if issue, bad := checkLink(outputRoot, baseURL, l); bad {
				issue.Page = rel
				issues = append(issues, issue)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", outputRoot, err)
	}
	return issues, nil
}

// checkLink resolves a single link against the output root.
func checkLink(outputRoot, baseURL string, l Link) (Issue, bool) {
	u := l.URL
	if strings.Contains(u, "://") || strings.HasPrefix(u, "mailto:") || strings.HasPrefix(u, "#") {
		return Issue{}, false
	}
	if baseURL != "" && !strings.HasPrefix(u, baseURL+"/") && u != baseURL {
		return Issue{}, false
	}

	target := strings.TrimPrefix(u, baseURL)
	target = strings.TrimPrefix(target, "/")
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return Issue{}, false // site root
	}
	// Stylesheets and images live in the theme, outside our output contract.
	if strings.HasPrefix(target, "assets/") || strings.HasPrefix(target, "images/") {
		return Issue{}, false
	}

	full := filepath.Join(outputRoot, filepath.FromSlash(target))
	info, err := os.Stat(full)
	if err != nil {
		// Directory-style links serve <dir>/index.html.
		if _, ierr := os.Stat(filepath.Join(full, "index.html")); ierr == nil {
			return Issue{}, false
		}
		return Issue{Link: l.URL, Reason: "target does not exist"}, true
	}
	if info.IsDir() {
		if _, ierr := os.Stat(filepath.Join(full, "index.html")); ierr != nil {
			return Issue{Link: l.URL, Reason: "directory has no index.html"}, true
		}
	}
	return Issue{}, false
}
