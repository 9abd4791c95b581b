package ingest_test

import (
	"testing"

	"github.com/fwojciec/libdoc/ingest"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024 / 2, "2.5 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ingest.FormatBytes(tt.bytes), "FormatBytes(%d)", tt.bytes)
	}
}

func TestTruncatePath(t *testing.T) {
	t.Parallel()

	t.Run("returns short paths unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "docs/intro.md", ingest.TruncatePath("docs/intro.md", 20))
	})

	t.Run("keeps the end of long paths behind an ellipsis", func(t *testing.T) {
		t.Parallel()
		result := ingest.TruncatePath("src/content/reference/react/useState.md", 20)
		assert.Equal(t, "...react/useState.md", result)
		assert.Len(t, result, 20)
	})

	t.Run("counts runes rather than bytes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "...é.md", ingest.TruncatePath("docs/très/é.md", 7))
	})

	t.Run("returns the tail when too short for an ellipsis", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ".md", ingest.TruncatePath("intro.md", 3))
	})

	t.Run("returns empty string for non-positive lengths", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ingest.TruncatePath("intro.md", 0))
		assert.Empty(t, ingest.TruncatePath("intro.md", -1))
	})
}
