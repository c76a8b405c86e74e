package site

import "html/template"

// Templates are parsed at init time to fail fast on template errors.
var (
	pubPageTemplate *template.Template
	indexTemplate   *template.Template
)

func init() {
	pubPageTemplate = template.Must(template.Must(template.New("publication").Parse(chromeTemplate)).Parse(pubPageBody))
	indexTemplate = template.Must(template.Must(template.New("index").Parse(chromeTemplate)).Parse(indexBody))
}

// chromeTemplate defines the shared page shell: head metadata, masthead
// navigation, and the sidebar the theme expects. Pages provide "pagetitle",
// "head" and "content" blocks.
const chromeTemplate = `<!doctype html>
<html lang="en" class="no-js">
  <head>
    <meta charset="utf-8">
    <title>{{block "pagetitle" .}}{{.Site.Title}}{{end}}</title>
{{block "head" .}}{{end}}
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <link rel="stylesheet" href="{{.Site.BaseURL}}/assets/css/main.css">
    <link rel="stylesheet" href="{{.Site.BaseURL}}/assets/css/academicons.css"/>
  </head>

  <body>
    <div class="masthead">
      <div class="masthead__inner-wrap">
        <div class="masthead__menu">
          <nav id="site-nav" class="greedy-nav">
            <ul class="visible-links">
              <li class="masthead__menu-item masthead__menu-item--lg persist">
                <a href="{{.Site.BaseURL}}/">{{.Site.Title}}</a>
              </li>
              <li class="masthead__menu-item">
                <a href="{{.Site.BaseURL}}/publications/">Publications</a>
              </li>
            </ul>
          </nav>
        </div>
      </div>
    </div>

    <div id="main" role="main">
      <div class="sidebar sticky">
        <div itemscope itemtype="http://schema.org/Person">
          <div class="author__content">
            <h3 class="author__name">{{.Site.AuthorName}}</h3>
{{- if .Site.AuthorBio}}
            <p class="author__bio">{{.Site.AuthorBio}}</p>
{{- end}}
          </div>
        </div>
      </div>

{{block "content" .}}{{end}}
    </div>
  </body>
</html>
`

const pubPageBody = `
{{define "pagetitle"}}{{.Title}} - {{.Site.Title}}{{end}}

{{define "head"}}    <meta name="description" content="{{.Title}}">
{{- if .PublishedTime}}
    <meta property="article:published_time" content="{{.PublishedTime}}">
{{- end}}
    <link rel="canonical" href="{{.PageURL}}">
    <meta property="og:site_name" content="{{.Site.Title}}">
    <meta property="og:title" content="{{.Title}}">
    <meta property="og:type" content="article">
    <meta property="og:url" content="{{.PageURL}}">
    <script type="application/ld+json">
    {{.JSONLD}}
    </script>
{{- end}}

{{define "content"}}      <article class="page" itemscope itemtype="http://schema.org/CreativeWork">
        <meta itemprop="headline" content="{{.Title}}">
        <meta itemprop="description" content="{{.Authors}}">
{{- if .Dated}}
        <meta itemprop="datePublished" content="{{.YearLabel}}">
{{- end}}

        <div class="page__inner-wrap">
          <header>
            <h1 class="page__title" itemprop="headline">{{.Title}}</h1>
{{- if .VenueLine}}
            <p>Published in <i>{{.VenueLine}}</i>, {{.YearLabel}}</p>
{{- end}}
          </header>

          <section class="page__content" itemprop="text">
{{- if .AuthorList}}
            <h2>Authors</h2>
            <p itemprop="author">{{.Authors}}</p>
{{- end}}

            <h2>Publication Details</h2>
            <ul>
              <li><strong>Year:</strong> {{.YearLabel}}</li>
{{- if .VenueLine}}
              <li><strong>Journal/Venue:</strong> {{.VenueLine}}</li>
{{- end}}
{{- if .Volume}}
              <li><strong>Volume:</strong> {{.Volume}}</li>
{{- end}}
{{- if .Pages}}
              <li><strong>Pages:</strong> {{.Pages}}</li>
{{- end}}
{{- if .DOI}}
              <li><strong>DOI:</strong> <a href="https://doi.org/{{.DOI}}">{{.DOI}}</a></li>
{{- end}}
            </ul>
{{- if .AbstractHTML}}

            <h2>Abstract</h2>
            <div itemprop="abstract">{{.AbstractHTML}}</div>
{{- end}}
          </section>

{{- if or .DOI .URL}}
          <footer class="page__meta">
            <p style="font-size: smaller">
{{- if .URL}}
              <a href="{{.URL}}">View Publication</a>
{{- end}}
{{- if .DOI}}
              <a href="https://doi.org/{{.DOI}}">DOI</a>
{{- end}}
            </p>
          </footer>
{{- end}}
        </div>
      </article>
{{end}}
`

const indexBody = `
{{define "pagetitle"}}Publications - {{.Site.Title}}{{end}}

{{define "content"}}      <div class="archive">
        <h1 class="page__title">Publications</h1>
{{- if .Site.ScholarURL}}
        <div class="wordwrap">You can also find my articles on <a href="{{.Site.ScholarURL}}">my Google Scholar profile</a>.</div>
{{- end}}
{{- range .Sections}}

        <h2>{{.Label}}</h2><hr />
{{- range .Items}}
        <div class="list__item">
          <article class="archive__item" itemscope itemtype="http://schema.org/CreativeWork">
            <h2 class="archive__item-title" itemprop="headline">
              <a href="{{.Link}}" rel="permalink">{{.Title}}</a>
            </h2>
{{- if .Venue}}
            <p>Published in <i>{{.Venue}}</i>, {{.Year}}</p>
{{- else}}
            <p>{{.Year}}</p>
{{- end}}
{{- if .Authors}}
            <p class="archive__item-excerpt" itemprop="description">{{.Authors}}</p>
{{- end}}
          </article>
        </div>
{{- end}}
{{- end}}
      </div>
{{end}}
`
