package libdoc

import "strings"

// Section is a level-2 heading of a markdown document with the text that
// follows it up to the next level-2 heading.
type Section struct {
	Title   string `json:"title"`
	Anchor  string `json:"anchor"`
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// SplitSections splits markdown at level-2 headings ("## ").
// It returns the text before the first heading and the sections in document
// order. Headings inside fenced code blocks are not section boundaries.
// Intro and bodies are trimmed of surrounding whitespace.
func SplitSections(markdown string) (intro string, sections []Section) {
	var buf []string
	var current *Section
	inFence := false

	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = buf[:0]
		if current == nil {
			intro = text
			return
		}
		current.Body = text
		sections = append(sections, *current)
	}

	for _, line := range strings.Split(markdown, "\n") {
		if isFence(line) {
			inFence = !inFence
		}
		if title, ok := level2Heading(line); ok && !inFence {
			flush()
			current = &Section{
				Title:   title,
				Anchor:  Slugify(title),
				Heading: strings.TrimRight(line, " \t\r"),
			}
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return intro, sections
}

// level2Heading reports whether line is a "## " heading and returns its text.
func level2Heading(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "## ")
	if !ok {
		return "", false
	}
	title := strings.TrimSpace(rest)
	if title == "" {
		return "", false
	}
	return title, true
}

func isFence(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}
