package seeder

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	t.Run("short body is returned unchanged", func(t *testing.T) {
		assert.Equal(t, "A short body.", excerpt("A short body."))
	})

	t.Run("long body breaks on the last space", func(t *testing.T) {
		body := strings.Repeat("word ", 60)
		got := excerpt(body)

		assert.True(t, strings.HasSuffix(got, "…"))
		assert.LessOrEqual(t, len(got), 180+len("…"))
		assert.NotContains(t, strings.TrimSuffix(got, "…"), "  ")
		assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "…"), " "))
	})

	t.Run("spaceless multibyte body stays valid utf8", func(t *testing.T) {
		// One ASCII byte pushes the 180-byte cut into the middle of a
		// three-byte rune.
		body := "x" + strings.Repeat("界", 100)
		got := excerpt(body)

		assert.True(t, utf8.ValidString(got), "excerpt must not split a rune")
		assert.True(t, strings.HasSuffix(got, "…"))
		assert.True(t, strings.HasPrefix(body, strings.TrimSuffix(got, "…")))
	})
}
