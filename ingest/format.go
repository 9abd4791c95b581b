package ingest

import "fmt"

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// TruncatePath shortens a file path for display, keeping the end, which
// names the file.
func TruncatePath(path string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(path)
	if len(r) <= maxLen {
		return path
	}
	if maxLen < 4 {
		return string(r[len(r)-maxLen:])
	}
	return "..." + string(r[len(r)-maxLen+3:])
}
