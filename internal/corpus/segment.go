package corpus

import (
	"iter"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typerush/internal/model"
)

const (
	// DefaultWidth is used when the viewport size is not known yet.
	DefaultWidth = 60
	// MinWidth keeps chunks readable on very narrow terminals.
	MinWidth = 20

	sentenceEnds = ".!?"
	clauseEnds   = ",;:"
)

// WidthFor derives the chunk width for a viewport of the given column count.
func WidthFor(viewport int) int {
	if viewport <= 0 {
		return DefaultWidth
	}
	w := int(float64(viewport) * 0.70)
	if w < MinWidth {
		w = MinWidth
	}
	return w
}

// Sentences splits a passage into sentence-like units. A unit ends after a
// run of terminators that is followed by a space or the end of the text, so
// "1.5" and "e.g.x" stay inside one unit. A trailing fragment without a
// terminator is its own unit.
func Sentences(paragraph string) []string {
	runes := []rune(Normalize(paragraph))
	var out []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !strings.ContainsRune(sentenceEnds, runes[i]) {
			continue
		}
		j := i
		for j+1 < len(runes) && strings.ContainsRune(sentenceEnds, runes[j+1]) {
			j++
		}
		if j+1 < len(runes) && runes[j+1] != ' ' {
			i = j
			continue
		}
		out = append(out, string(runes[start:j+1]))
		start = j + 2
		i = j + 1
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

// Chunks yields the passage as chunks no wider than width display columns.
// Every sentence starts a new chunk. Inside a sentence a cut prefers, within
// the look-back window, the last sentence terminator, then the last clause
// mark; otherwise the last space that fits; otherwise a hard cut at the width.
// Concatenating Text+Sep of every chunk reproduces Normalize(paragraph).
//
// The sequence is restartable: each range re-derives it from the arguments.
// A width <= 0 disables cutting inside sentences.
func Chunks(paragraph string, width int) iter.Seq[model.Chunk] {
	return func(yield func(model.Chunk) bool) {
		sentences := Sentences(paragraph)
		ordinal := 0
		for si, sentence := range sentences {
			rest := []rune(sentence)
			for len(rest) > 0 {
				head, tail, sep := cut(rest, width)
				if len(tail) == 0 && si < len(sentences)-1 {
					sep = " "
				}
				if !yield(model.Chunk{Ordinal: ordinal, Text: string(head), Sep: sep}) {
					return
				}
				ordinal++
				rest = tail
			}
		}
	}
}

// Split collects Chunks into a slice.
func Split(paragraph string, width int) []model.Chunk {
	var out []model.Chunk
	for c := range Chunks(paragraph, width) {
		out = append(out, c)
	}
	return out
}

func cut(runes []rune, width int) (head, tail []rune, sep string) {
	if width <= 0 || runewidth.StringWidth(string(runes)) <= width {
		return runes, nil, ""
	}

	// limit is the longest prefix that fits; at least one rune so we always
	// make progress.
	limit := 0
	used := 0
	for limit < len(runes) {
		w := runewidth.RuneWidth(runes[limit])
		if used+w > width {
			break
		}
		used += w
		limit++
	}
	if limit == 0 {
		limit = 1
	}

	lookback := width / 3
	if lookback < 1 {
		lookback = 1
	}
	sentenceAt, clauseAt, spaceAt := -1, -1, -1
	for i := limit; i > 0; i-- {
		if i >= len(runes) || runes[i] != ' ' {
			continue
		}
		if spaceAt == -1 {
			spaceAt = i
		}
		if i < limit-lookback {
			continue
		}
		prev := runes[i-1]
		if sentenceAt == -1 && strings.ContainsRune(sentenceEnds, prev) {
			sentenceAt = i
		}
		if clauseAt == -1 && strings.ContainsRune(clauseEnds, prev) {
			clauseAt = i
		}
	}

	for _, at := range []int{sentenceAt, clauseAt, spaceAt} {
		if at > 0 {
			return runes[:at], runes[at+1:], " "
		}
	}
	return runes[:limit], runes[limit:], ""
}
