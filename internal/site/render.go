package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/LambdaLambdaLambda/albertocarraro/internal/publication"
)

// markdown renders abstract text; goldmark's defaults are enough here.
var markdown = goldmark.New()

// siteData is the page chrome shared by every generated page.
type siteData struct {
	BaseURL    string
	Title      string
	AuthorName string
	AuthorBio  string
	ScholarURL string
}

// pubPageData feeds the per-publication page template. The visible fields
// and the machine-readable annotations are both built from the same
// publication, so they cannot drift apart.
type pubPageData struct {
	Site siteData

	Title         string
	Authors       string
	AuthorList    []string
	YearLabel     string
	Dated         bool
	VenueLine     string
	Volume        string
	Pages         string
	DOI           string
	URL           string
	AbstractHTML  template.HTML
	PublishedTime string
	PageURL       string
	JSONLD        template.JS
}

// indexSection is one category heading plus its sorted entries.
type indexSection struct {
	Label string
	Items []indexItem
}

// indexItem is one line of the index.
type indexItem struct {
	Title   string
	Link    string
	Authors string
	Year    string
	Venue   string
}

// indexPageData feeds the index page template.
type indexPageData struct {
	Site     siteData
	Sections []indexSection
}

func (g *Generator) siteData() siteData {
	return siteData{
		BaseURL:    g.cfg.BaseURL,
		Title:      g.cfg.SiteTitle,
		AuthorName: g.cfg.AuthorName,
		AuthorBio:  g.cfg.AuthorBio,
		ScholarURL: g.cfg.ScholarURL,
	}
}

// scholarlyArticle is the JSON-LD annotation embedded in each page.
type scholarlyArticle struct {
	Context       string `json:"@context"`
	Type          string `json:"@type"`
	Name          string `json:"name"`
	Author        string `json:"author"`
	DatePublished string `json:"datePublished,omitempty"`
}

func (g *Generator) renderPublicationPage(p publication.Publication) ([]byte, error) {
	authors := p.Authors()
	formatted := publication.FormatAuthors(authors)

	data := pubPageData{
		Site:       g.siteData(),
		Title:      p.Title(),
		Authors:    formatted,
		AuthorList: authors,
		YearLabel:  p.YearLabel(),
		Dated:      p.Dated(),
		VenueLine:  p.VenueLine(),
		Volume:     p.Fields["volume"],
		Pages:      p.Fields["pages"],
		DOI:        p.Fields["doi"],
		URL:        p.Fields["url"],
		PageURL:    g.cfg.BaseURL + "/" + PublicationDir + "/" + p.Slug + ".html",
	}

	if p.Dated() {
		month := p.Month
		if month == 0 {
			month = 1
		}
		data.PublishedTime = fmt.Sprintf("%04d-%02d-01T00:00:00+00:00", p.Year, month)
	}

	if abstract := p.Fields["abstract"]; abstract != "" {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(abstract), &buf); err != nil {
			return nil, fmt.Errorf("rendering abstract: %w", err)
		}
		data.AbstractHTML = template.HTML(buf.String())
	}

	article := scholarlyArticle{
		Context: "http://schema.org",
		Type:    "ScholarlyArticle",
		Name:    p.Title(),
		Author:  formatted,
	}
	if p.Dated() {
		article.DatePublished = p.YearLabel()
	}
	ld, err := json.MarshalIndent(article, "    ", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON-LD: %w", err)
	}
	data.JSONLD = template.JS(ld)

	var buf bytes.Buffer
	if err := pubPageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) renderIndexPage() ([]byte, error) {
	buckets := publication.Categorize(g.pubs)

	var sections []indexSection
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		sorted := make([]publication.Publication, len(bucket))
		copy(sorted, bucket)
		publication.SortByYearDesc(sorted)

		section := indexSection{Label: publication.Categories[i].Label}
		for _, p := range sorted {
			section.Items = append(section.Items, indexItem{
				Title:   p.Title(),
				Link:    g.cfg.BaseURL + "/" + PublicationDir + "/" + p.Slug + ".html",
				Authors: publication.FormatAuthors(p.Authors()),
				Year:    p.YearLabel(),
				Venue:   p.Venue(),
			})
		}
		sections = append(sections, section)
	}

	data := indexPageData{Site: g.siteData(), Sections: sections}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
