package libdoc

import (
	"strconv"
	"strings"
)

// LineRange selects lines Start through End of a document, 1-indexed and
// inclusive.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseLineRange parses a range in the form "START-END", e.g. "1-50".
func ParseLineRange(s string) (LineRange, error) {
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return LineRange{}, Errorf(EINVALID, "lines must be in format START-END (e.g., 1-50)")
	}

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return LineRange{}, Errorf(EINVALID, "invalid start line %q", startStr)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return LineRange{}, Errorf(EINVALID, "invalid end line %q", endStr)
	}

	if start < 1 {
		return LineRange{}, Errorf(EINVALID, "start line must be >= 1")
	}
	if end < start {
		return LineRange{}, Errorf(EINVALID, "end line must be >= start line")
	}

	return LineRange{Start: start, End: end}, nil
}

// String returns the range in the form accepted by ParseLineRange.
func (r LineRange) String() string {
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
}

// Apply returns the selected lines of content. Lines past the end of
// content are ignored.
func (r LineRange) Apply(content string) string {
	lines := strings.Split(content, "\n")
	if r.Start > len(lines) {
		return ""
	}
	end := min(r.End, len(lines))
	return strings.Join(lines[r.Start-1:end], "\n")
}
