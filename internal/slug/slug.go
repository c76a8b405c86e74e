// Package slug derives filesystem-safe filename stems from citation keys.
//
// The derivation rule is deliberately explicit and pinned by tests:
// decompose to NFD and drop combining marks (so accented letters keep their
// base letter), lowercase, replace every maximal run of characters outside
// [a-z0-9] with a single '-', and trim leading/trailing '-'.
package slug

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmpty is returned when a key yields no usable slug characters.
var ErrEmpty = errors.New("citation key yields an empty slug")

// stripMarks removes diacritics by decomposing and dropping combining marks.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make derives the slug for a citation key.
func Make(key string) (string, error) {
	folded, _, err := transform.String(stripMarks, key)
	if err != nil {
		// Fall back to the raw key; the replacement pass below still
		// guarantees a filesystem-safe result.
		folded = key
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}

	s := b.String()
	if s == "" {
		return "", fmt.Errorf("%w: %q", ErrEmpty, key)
	}
	return s, nil
}
