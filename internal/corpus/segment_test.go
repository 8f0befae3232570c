package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typerush/internal/model"
)

func reconstruct(chunks []model.Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Text)
		b.WriteString(c.Sep)
	}
	return b.String()
}

func TestSentences(t *testing.T) {
	got := Sentences("Be yourself;  everyone else is taken. Really?! Yes it costs 1.5 dollars. tail")
	assert.Equal(t, []string{
		"Be yourself; everyone else is taken.",
		"Really?!",
		"Yes it costs 1.5 dollars.",
		"tail",
	}, got)
}

func TestSentencesEmpty(t *testing.T) {
	assert.Empty(t, Sentences("   "))
}

func TestChunksReconstructDefaultCorpus(t *testing.T) {
	c := Default()
	for _, width := range []int{20, 33, 60, 120} {
		for i := 0; i < c.Len(); i++ {
			entry := c.Entry(i)
			chunks := Split(entry, width)
			require.NotEmpty(t, chunks)
			assert.Equal(t, Normalize(entry), reconstruct(chunks), "width %d entry %d", width, i)
			for _, ch := range chunks {
				assert.LessOrEqual(t, runewidth.StringWidth(ch.Text), width, "chunk %q", ch.Text)
				assert.NotEmpty(t, ch.Text)
			}
		}
	}
}

func TestChunksOrdinals(t *testing.T) {
	chunks := Split("one two three four five six seven eight nine ten.", 12)
	for i, c := range chunks {
		assert.Equal(t, i, c.Ordinal)
	}
}

func TestChunksPreferSentenceEnd(t *testing.T) {
	// Sentence boundaries always break.
	chunks := Split("Short one. Another short one.", 80)
	require.Len(t, chunks, 2)
	assert.Equal(t, "Short one.", chunks[0].Text)
	assert.Equal(t, " ", chunks[0].Sep)
	assert.Equal(t, "Another short one.", chunks[1].Text)
	assert.Equal(t, "", chunks[1].Sep)
}

func TestChunksPreferClauseOverSpace(t *testing.T) {
	chunks := Split("alpha beta gamma, delta epsilon zeta eta", 24)
	require.NotEmpty(t, chunks)
	assert.Equal(t, "alpha beta gamma,", chunks[0].Text)
	assert.Equal(t, "alpha beta gamma, delta epsilon zeta eta", reconstruct(chunks))
}

func TestChunksClauseOutsideLookbackUsesSpace(t *testing.T) {
	// The comma sits too far back from the limit, so the last space wins.
	chunks := Split("ab, cdefgh ijklmn opqrst uvwxyz", 30)
	require.NotEmpty(t, chunks)
	assert.Equal(t, "ab, cdefgh ijklmn opqrst", chunks[0].Text)
}

func TestChunksHardCut(t *testing.T) {
	chunks := Split("abcdefghijklmnopqrstuvwxyz", 10)
	require.Len(t, chunks, 3)
	assert.Equal(t, "abcdefghij", chunks[0].Text)
	assert.Equal(t, "", chunks[0].Sep)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", reconstruct(chunks))
}

func TestChunksWideRunes(t *testing.T) {
	chunks := Split("日本語日本語日本語", 4)
	for _, c := range chunks {
		assert.LessOrEqual(t, runewidth.StringWidth(c.Text), 4)
	}
	assert.Equal(t, "日本語日本語日本語", reconstruct(chunks))
}

func TestChunksRestartable(t *testing.T) {
	seq := Chunks("one. two. three.", 0)
	var first, second []string
	for c := range seq {
		first = append(first, c.Text)
	}
	for c := range seq {
		second = append(second, c.Text)
	}
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"one.", "two.", "three."}, first)
}

func TestChunksEarlyStop(t *testing.T) {
	n := 0
	for range Chunks("one. two. three.", 0) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestWidthFor(t *testing.T) {
	assert.Equal(t, DefaultWidth, WidthFor(0))
	assert.Equal(t, MinWidth, WidthFor(10))
	assert.Equal(t, 70, WidthFor(100))
}

func TestNewRejectsBlank(t *testing.T) {
	_, err := New([]string{"", "   "})
	require.ErrorIs(t, err, ErrEmpty)
}

func TestLoadPassages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passages.txt")
	content := "first line\ncontinues here.\n\n\nsecond   passage.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first line continues here.", "second passage."}, c.Entries())
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrEmpty)
}
