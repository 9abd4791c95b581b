package libdoc

import (
	"strconv"
	"strings"
)

// FormatDocument renders a document for reading: a title header, the URL
// and identifiers, and the content. If lines is not nil only the selected
// lines of the content are included.
func FormatDocument(doc *Document, lines *LineRange) string {
	var b strings.Builder

	header := doc.Title
	if header == "" {
		header = doc.Path
	}
	b.WriteString("# " + header + "\n")
	if doc.URL != "" {
		b.WriteString("URL: " + doc.URL + "\n")
	}
	b.WriteString("ID: " + strconv.FormatInt(doc.ID, 10) + " | Path: " + doc.Path + "\n")

	content := doc.Content
	if lines != nil {
		b.WriteString("Lines: " + lines.String() + "\n")
		content = lines.Apply(content)
	}

	b.WriteString(strings.Repeat("-", 60) + "\n")
	b.WriteString(content)
	return b.String()
}
