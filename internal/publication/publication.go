// Package publication defines the core domain types for publication records.
package publication

import (
	"sort"
	"strconv"
	"strings"

	"github.com/LambdaLambdaLambda/albertocarraro/internal/bibtex"
)

// Publication represents one bibliography entry prepared for rendering.
// Publications are immutable once built; the generator only reads them.
type Publication struct {
	// Identity
	Key  string `json:"key"`  // Citation key from the source entry
	Slug string `json:"slug"` // Filename stem, derived from Key

	// Classification
	Type string `json:"type"` // Lowercased BibTeX entry type

	// Metadata
	Fields map[string]string `json:"fields"` // Cleaned field values, lowercased names

	// Publication date
	Year  int `json:"year"`            // 0 if missing or non-numeric
	Month int `json:"month,omitempty"` // 1-12, 0 if unknown
}

// monthNumbers maps month names and abbreviations to 1-12.
var monthNumbers = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// FromEntry builds a Publication from a parsed BibTeX entry. The Slug is
// left empty; the caller derives and assigns it.
func FromEntry(e bibtex.Entry) Publication {
	return Publication{
		Key:    e.Key,
		Type:   e.Type,
		Fields: e.Fields,
		Year:   parseYear(e.Fields["year"]),
		Month:  parseMonth(e.Fields["month"]),
	}
}

// parseYear extracts an integer year; missing or non-numeric values yield 0
// (the publication is treated as undated and sorts last).
func parseYear(s string) int {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || year < 0 {
		return 0
	}
	return year
}

// parseMonth accepts numeric months and English names or abbreviations.
func parseMonth(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	return monthNumbers[s]
}

// Title returns the cleaned display title.
func (p Publication) Title() string {
	return p.Fields["title"]
}

// Authors returns the author display names in source order.
func (p Publication) Authors() []string {
	return bibtex.SplitAuthors(p.Fields["author"])
}

// Dated reports whether the publication has a usable year.
func (p Publication) Dated() bool {
	return p.Year > 0
}

// YearLabel returns the year for display, "n.d." when undated.
func (p Publication) YearLabel() string {
	if !p.Dated() {
		return "n.d."
	}
	return strconv.Itoa(p.Year)
}

// Venue returns the venue for a one-line summary: journal if present,
// otherwise booktitle.
func (p Publication) Venue() string {
	if j := p.Fields["journal"]; j != "" {
		return j
	}
	return p.Fields["booktitle"]
}

// VenueLine returns the type-appropriate venue detail line: journal with
// volume, number, and pages for articles; booktitle for conference papers
// and chapters; publisher for books; school for theses.
func (p Publication) VenueLine() string {
	switch p.Type {
	case "article":
		return articleVenueLine(p.Fields)
	case "inproceedings", "conference", "incollection":
		return p.Fields["booktitle"]
	case "book":
		return p.Fields["publisher"]
	case "phdthesis", "mastersthesis":
		return p.Fields["school"]
	default:
		return p.Venue()
	}
}

func articleVenueLine(fields map[string]string) string {
	line := fields["journal"]
	if line == "" {
		return ""
	}
	if v := fields["volume"]; v != "" {
		line += " " + v
		if n := fields["number"]; n != "" {
			line += "(" + n + ")"
		}
	}
	if pages := fields["pages"]; pages != "" {
		line += ", pp. " + strings.ReplaceAll(pages, "--", "–")
	}
	return line
}

// FormatAuthors joins author names for display: two authors are joined
// with "and", longer lists use an Oxford comma.
func FormatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " and " + authors[1]
	default:
		return strings.Join(authors[:len(authors)-1], ", ") + ", and " + authors[len(authors)-1]
	}
}

// SortByYearDesc sorts publications by year descending, in place and
// stably: publications sharing a year keep their source order, and undated
// publications sort after all dated ones.
func SortByYearDesc(pubs []Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		yi, yj := pubs[i].Year, pubs[j].Year
		if yi == 0 {
			return false
		}
		if yj == 0 {
			return true
		}
		return yi > yj
	})
}
