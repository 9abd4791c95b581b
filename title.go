package libdoc

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	h1Re        = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)
	slugStripRe = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugSpaceRe = regexp.MustCompile(`\s+`)
)

// Suffixes removed from file names when deriving a title from a path.
var titleSuffixes = []string{".mdx", ".md", ".rst"}

// ExtractTitle returns the title of a markdown document. It prefers the
// first level-1 heading, then a frontmatter title, then a title derived
// from the file name in path. It never returns an error.
func ExtractTitle(content, path string) string {
	if m := h1Re.FindStringSubmatch(content); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			return title
		}
	}

	if fm, _, ok := SplitFrontmatter(content); ok {
		if title := frontmatterTitle(fm); title != "" {
			return title
		}
	}

	return titleFromPath(path)
}

// Slugify converts a section title into a URL fragment: lowercase, only
// letters, digits and hyphens, with whitespace runs replaced by a hyphen.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripRe.ReplaceAllString(s, "")
	return slugSpaceRe.ReplaceAllString(s, "-")
}

// SplitFrontmatter separates a leading frontmatter block from the body.
// The block starts with a line of exactly "---" and ends with the next such
// line; the returned frontmatter includes both delimiters. ok is false if
// content has no complete frontmatter block.
func SplitFrontmatter(content string) (frontmatter, body string, ok bool) {
	first, rest, found := strings.Cut(content, "\n")
	if !found || strings.TrimRight(first, "\r") != "---" {
		return "", content, false
	}

	offset := len(first) + 1
	for len(rest) > 0 {
		line, next, more := strings.Cut(rest, "\n")
		end := offset + len(line)
		if strings.TrimRight(line, "\r") == "---" {
			return content[:end], strings.TrimPrefix(content[end:], "\n"), true
		}
		if !more {
			break
		}
		offset = end + 1
		rest = next
	}
	return "", content, false
}

func frontmatterTitle(frontmatter string) string {
	for _, line := range strings.Split(frontmatter, "\n") {
		value, ok := strings.CutPrefix(strings.TrimSpace(line), "title:")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.TrimPrefix(strings.TrimPrefix(value, `"`), `'`)
		value = strings.TrimSuffix(strings.TrimSuffix(value, `"`), `'`)
		return strings.TrimSpace(value)
	}
	return ""
}

func titleFromPath(path string) string {
	name := path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	for _, suffix := range titleSuffixes {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			name = trimmed
			break
		}
	}
	name = strings.ReplaceAll(name, "-", " ")
	return cases.Title(language.Und).String(name)
}
