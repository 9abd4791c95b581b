// Package goquery implements a selector-based HTML Extractor for pages
// generated by common documentation frameworks.
package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/libdoc"
)

// Ensure Extractor implements libdoc.Extractor at compile time.
var _ libdoc.Extractor = (*Extractor)(nil)

// contentSelectors lists, per framework, selectors for the main content
// element in order of preference.
var contentSelectors = map[Framework][]string{
	FrameworkDocusaurus: {"article .theme-doc-markdown", ".theme-doc-markdown", "article"},
	FrameworkMkDocs:     {"article.md-content__inner", ".md-content"},
	FrameworkSphinx:     {"[role='main']", "div.body", "div.document"},
	FrameworkVitePress:  {".VPDoc .vp-doc", ".vp-doc", ".VPDoc"},
	FrameworkVuePress:   {".theme-default-content"},
	FrameworkGitBook:    {"[data-testid='page.contentEditor']", "main"},
	FrameworkNextra:     {".nextra-content", "article", "main"},
}

// genericSelectors are tried when the framework is unknown or its selectors
// match nothing.
var genericSelectors = []string{"main article", "article", "main", "[role='main']", "#content", ".content", "body"}

// noiseSelectors are removed from the content before it is returned.
var noiseSelectors = []string{
	"script", "style", "noscript", "template", "iframe", "svg",
	"nav", "footer", "aside", "form", "button",
	".theme-doc-toc-mobile", ".theme-doc-footer", ".pagination-nav", ".hash-link",
	".md-source-file", ".headerlink", ".VPDocFooter", ".nextra-toc",
	"[aria-hidden='true']",
}

// Extractor selects the main content element of documentation pages using
// framework-specific CSS selectors.
type Extractor struct {
	detector *Detector
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{detector: NewDetector()}
}

// Extract returns the page title and the HTML of its main content element.
func (e *Extractor) Extract(html string) (*libdoc.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, libdoc.Errorf(libdoc.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, libdoc.Errorf(libdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	framework := e.detector.DetectDocument(doc)
	title := pageTitle(doc)

	content := selectContent(doc, slices.Concat(contentSelectors[framework], genericSelectors))
	if content == nil {
		return &libdoc.ExtractResult{Title: title}, nil
	}

	content.Find(strings.Join(noiseSelectors, ", ")).Remove()

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, err
	}

	return &libdoc.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// selectContent returns the first element matched by selectors that
// contains text.
func selectContent(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		match := doc.Find(sel).First()
		if match.Length() > 0 && strings.TrimSpace(match.Text()) != "" {
			return match
		}
	}
	return nil
}

// pageTitle returns the og:title, the first h1 or the title element,
// whichever is found first.
func pageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
