package ingest

import (
	"regexp"
	"strings"
)

var (
	h1Re        = regexp.MustCompile(`(?m)^#[ \t]+\S`)
	docExtRe    = regexp.MustCompile(`\.(md|mdx|rst|html|htm)$`)
	indexPageRe = regexp.MustCompile(`/index$`)
)

// DocumentURL derives the published URL of the file at path. StripPrefix is
// removed from the front of path, then leading slashes, the file extension
// and a trailing "/index" segment. Returns "" when baseURL is empty.
func DocumentURL(baseURL, stripPrefix, path string) string {
	if baseURL == "" {
		return ""
	}

	p := path
	if stripPrefix != "" {
		p = strings.TrimPrefix(p, stripPrefix)
	}
	p = strings.TrimLeft(p, "/")
	p = docExtRe.ReplaceAllString(p, "")
	p = indexPageRe.ReplaceAllString(p, "/")

	return strings.TrimRight(baseURL, "/") + "/" + p
}

func isHTML(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}
