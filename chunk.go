package libdoc

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ChunkThreshold is the document size, in characters, from which documents
// are split into sections.
const ChunkThreshold = 8000

// SectionSeparator joins a parent path and a section title in chunk paths.
const SectionSeparator = "##"

// Chunk is an independently indexed part of a document.
type Chunk struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
}

// ChunkDocument splits content into chunks. Documents shorter than
// ChunkThreshold, and larger documents without level-2 headings, yield a
// single chunk holding the whole document. Otherwise the text before the
// first heading becomes an intro chunk at path, and every non-empty section
// becomes a chunk at path##<section title> whose URL points at the section
// anchor of baseURL. Repeated section titles are numbered, so the second
// "Example" section is stored at path##Example (2) with anchor example-1.
// The result is never empty.
func ChunkDocument(content, path, baseURL string) []Chunk {
	title := ExtractTitle(content, path)
	whole := []Chunk{{Path: path, Content: content, Title: title, URL: baseURL}}

	if utf8.RuneCountInString(content) < ChunkThreshold {
		return whole
	}

	body := content
	frontmatter, rest, hasFrontmatter := SplitFrontmatter(content)
	if hasFrontmatter {
		body = rest
	}

	intro, sections := SplitSections(body)
	if len(sections) == 0 {
		return whole
	}

	chunks := make([]Chunk, 0, len(sections)+1)

	if hasFrontmatter {
		intro = strings.TrimSpace(frontmatter + "\n\n" + intro)
	}
	if intro != "" {
		chunks = append(chunks, Chunk{Path: path, Content: intro, Title: title, URL: baseURL})
	}

	names := sectionNames{}
	for _, s := range sections {
		if s.Body == "" {
			continue
		}
		name, anchor := names.next(s)
		chunk := Chunk{
			Path:    path + SectionSeparator + name,
			Content: s.Heading + "\n\n" + s.Body,
			Title:   title + " > " + name,
		}
		if baseURL != "" {
			chunk.URL = baseURL + "#" + anchor
		}
		chunks = append(chunks, chunk)
	}

	if len(chunks) == 0 {
		return whole
	}
	return chunks
}

// sectionNames hands out unique section names and anchors within one
// document.
type sectionNames struct {
	names   map[string]bool
	anchors map[string]bool
}

func (n *sectionNames) next(s Section) (name, anchor string) {
	if n.names == nil {
		n.names = map[string]bool{}
		n.anchors = map[string]bool{}
	}

	name = s.Title
	for i := 2; n.names[name]; i++ {
		name = fmt.Sprintf("%s (%d)", s.Title, i)
	}
	anchor = s.Anchor
	for i := 1; n.anchors[anchor]; i++ {
		anchor = fmt.Sprintf("%s-%d", s.Anchor, i)
	}

	n.names[name] = true
	n.anchors[anchor] = true
	return name, anchor
}
