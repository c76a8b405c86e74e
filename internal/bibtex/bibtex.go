// Package bibtex parses the subset of BibTeX used by bibliography files:
// entries of the form @type{key, field = {value}, field = "value", ...}.
package bibtex

import (
	"fmt"
	"strings"
	"unicode"
)

// Entry represents a single parsed BibTeX entry.
type Entry struct {
	// Key is the citation key, the first comma-delimited token after the
	// opening brace. Never empty for a successfully parsed entry.
	Key string
	// Type is the lowercased entry type tag (article, inproceedings, ...).
	Type string
	// Fields maps lowercased field names to cleaned values.
	Fields map[string]string
}

// Stats reports how many raw entries were found versus successfully parsed.
type Stats struct {
	Found  int `json:"found"`
	Parsed int `json:"parsed"`
}

// Parse scans the full text of a bibliography file and returns the entries
// in source order, counts, and one error per malformed entry. Malformed
// entries (unmatched braces, missing citation key, missing title) are
// skipped; parsing continues with the next entry.
func Parse(data []byte) ([]Entry, Stats, []error) {
	text := string(data)
	var entries []Entry
	var stats Stats
	var errs []error

	pos := 0
	for {
		start := strings.IndexByte(text[pos:], '@')
		if start < 0 {
			break
		}
		start += pos

		// Read the type token after '@'.
		i := start + 1
		for i < len(text) && (unicode.IsLetter(rune(text[i])) || unicode.IsDigit(rune(text[i]))) {
			i++
		}
		entryType := strings.ToLower(text[start+1 : i])

		// Skip whitespace before the opening brace.
		for i < len(text) && unicode.IsSpace(rune(text[i])) {
			i++
		}
		if entryType == "" || i >= len(text) || text[i] != '{' {
			// Stray '@' in surrounding text; not an entry.
			pos = start + 1
			continue
		}

		body, end, ok := matchBraces(text, i)
		if !ok {
			stats.Found++
			errs = append(errs, fmt.Errorf("entry at offset %d (@%s): unmatched braces", start, entryType))
			// Resync at the next '@' so entries after the broken one
			// still parse.
			pos = start + 1
			continue
		}
		pos = end

		stats.Found++
		entry, err := parseEntry(entryType, body, start)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stats.Parsed++
		entries = append(entries, entry)
	}

	return entries, stats, errs
}

// matchBraces returns the text between the brace at open and its matching
// closing brace, tracking nesting depth. Quoted sections are opaque so that
// braces inside "..." values do not affect depth.
func matchBraces(text string, open int) (body string, end int, ok bool) {
	depth := 0
	inQuote := false
	for i := open; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"' && depth == 1:
			// Quotes only delimit values at the top level of an entry;
			// inside braced values a '"' is literal text.
			inQuote = !inQuote
		case c == '{' && !inQuote:
			depth++
		case c == '}' && !inQuote:
			depth--
			if depth == 0 {
				return text[open+1 : i], i + 1, true
			}
		}
	}
	return "", len(text), false
}

// parseEntry parses the body of one entry (between the outer braces).
func parseEntry(entryType, body string, offset int) (Entry, error) {
	comma := indexTopLevel(body, ',')
	if comma < 0 {
		// An entry with a key and no fields still has meaning in BibTeX,
		// but our invariant requires at least a title.
		key := strings.TrimSpace(body)
		return Entry{}, fmt.Errorf("entry %q (@%s): no fields", bestKey(key, offset), entryType)
	}

	key := strings.TrimSpace(body[:comma])
	if key == "" {
		return Entry{}, fmt.Errorf("entry at offset %d (@%s): missing citation key", offset, entryType)
	}

	fields, err := parseFields(body[comma+1:])
	if err != nil {
		return Entry{}, fmt.Errorf("entry %q (@%s): %w", key, entryType, err)
	}
	if fields["title"] == "" {
		return Entry{}, fmt.Errorf("entry %q (@%s): missing title", key, entryType)
	}

	return Entry{Key: key, Type: entryType, Fields: fields}, nil
}

// bestKey returns a best-effort identifier for error messages.
func bestKey(key string, offset int) string {
	if key != "" {
		return key
	}
	return fmt.Sprintf("at offset %d", offset)
}

// parseFields splits a field-assignment list into name/value pairs,
// respecting nested braces and quoted values so commas inside values are
// not treated as separators. Trailing commas are tolerated.
func parseFields(s string) (map[string]string, error) {
	fields := make(map[string]string)
	for _, assign := range splitTopLevel(s, ',') {
		assign = strings.TrimSpace(assign)
		if assign == "" {
			continue // trailing comma before the closing brace
		}
		eq := strings.IndexByte(assign, '=')
		if eq < 0 {
			return nil, fmt.Errorf("malformed field assignment %q", assign)
		}
		name := strings.ToLower(strings.TrimSpace(assign[:eq]))
		if name == "" {
			return nil, fmt.Errorf("malformed field assignment %q", assign)
		}
		value := stripDelimiters(strings.TrimSpace(assign[eq+1:]))
		fields[name] = CleanValue(value)
	}
	return fields, nil
}

// splitTopLevel splits s on sep occurrences at brace depth zero outside
// quoted values.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	inQuote := false
	last := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"' && depth == 0:
			inQuote = !inQuote
		case c == '{' && !inQuote:
			depth++
		case c == '}' && !inQuote:
			depth--
		case c == sep && depth == 0 && !inQuote:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// indexTopLevel returns the index of the first sep at brace depth zero
// outside quotes, or -1.
func indexTopLevel(s string, sep byte) int {
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"' && depth == 0:
			inQuote = !inQuote
		case c == '{' && !inQuote:
			depth++
		case c == '}' && !inQuote:
			depth--
		case c == sep && depth == 0 && !inQuote:
			return i
		}
	}
	return -1
}

// stripDelimiters removes one enclosing layer of braces or quotes from a
// raw field value.
func stripDelimiters(s string) string {
	if len(s) >= 2 {
		if s[0] == '{' && s[len(s)-1] == '}' {
			return s[1 : len(s)-1]
		}
		if s[0] == '"' && s[len(s)-1] == '"' {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// CleanValue collapses LaTeX capitalization-protection brace groups
// ({RGB}-{D} becomes RGB-D) and normalizes whitespace runs to single
// spaces. Cleaning is idempotent: cleaning an already-clean value is a
// no-op.
func CleanValue(s string) string {
	// Collapse innermost groups first so nested groups unwrap fully.
	for strings.ContainsRune(s, '{') {
		out := collapseInnermostGroups(s)
		if out == s {
			// Unbalanced braces; leave as-is rather than loop forever.
			break
		}
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}

// collapseInnermostGroups rewrites every {X} where X contains no braces
// to X, preserving all surrounding text.
func collapseInnermostGroups(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			b.WriteByte(s[i])
			continue
		}
		close := -1
		for j := i + 1; j < len(s); j++ {
			if s[j] == '{' {
				break // not innermost
			}
			if s[j] == '}' {
				close = j
				break
			}
		}
		if close < 0 {
			b.WriteByte(s[i])
			continue
		}
		b.WriteString(s[i+1 : close])
		i = close
	}
	return b.String()
}

// SplitAuthors splits a BibTeX author field on the literal word "and"
// (case-sensitive, whitespace-delimited), preserving order. Field values
// have already had whitespace normalized by CleanValue.
func SplitAuthors(field string) []string {
	if field == "" {
		return nil
	}
	var authors []string
	for _, name := range strings.Split(field, " and ") {
		name = strings.TrimSpace(name)
		if name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}
