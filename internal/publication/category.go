package publication

// Category is one display section of the publication index. Matching is an
// explicit ordered list: the first category whose types include the entry
// type wins, and the final catch-all (empty Types) takes everything else.
type Category struct {
	Label string   // Section heading on the index page
	Types []string // BibTeX entry types collected here; empty matches all
}

// Categories lists the index sections in display order.
var Categories = []Category{
	{Label: "Journal Articles", Types: []string{"article"}},
	{Label: "Book Chapters", Types: []string{"incollection"}},
	{Label: "Conference Papers", Types: []string{"inproceedings", "conference"}},
	{Label: "Books", Types: []string{"book"}},
	{Label: "Theses", Types: []string{"phdthesis", "mastersthesis"}},
	{Label: "Other Publications"}, // catch-all
}

// matches reports whether the category collects the given entry type.
func (c Category) matches(entryType string) bool {
	if len(c.Types) == 0 {
		return true
	}
	for _, t := range c.Types {
		if t == entryType {
			return true
		}
	}
	return false
}

// Categorize buckets publications into Categories, preserving order within
// each bucket. The returned slice is parallel to Categories; buckets may be
// empty (the index omits those sections).
func Categorize(pubs []Publication) [][]Publication {
	buckets := make([][]Publication, len(Categories))
	for _, p := range pubs {
		for i, c := range Categories {
			if c.matches(p.Type) {
				buckets[i] = append(buckets[i], p)
				break
			}
		}
	}
	return buckets
}
