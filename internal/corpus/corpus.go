// Package corpus holds practice passages and splits them into display chunks.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmpty is returned when a corpus would contain no passages.
var ErrEmpty = errors.New("corpus is empty")

// Corpus is an immutable, ordered set of passages.
type Corpus struct {
	entries []string
}

// New builds a corpus from raw passages. Whitespace is normalized and blank
// passages are dropped.
func New(entries []string) (*Corpus, error) {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = Normalize(e)
		if e == "" {
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return &Corpus{entries: out}, nil
}

// Default returns the built-in corpus.
func Default() *Corpus {
	c, err := New(defaultSamples)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of passages.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// Entry returns the passage at index i.
func (c *Corpus) Entry(i int) string {
	return c.entries[i]
}

// Entries returns a copy of all passages.
func (c *Corpus) Entries() []string {
	return append([]string(nil), c.entries...)
}

// Load reads passages from a text file. Passages are separated by blank
// lines; consecutive non-blank lines are joined with a space.
func Load(path string) (*Corpus, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only passage file.
			_ = cerr
		}
	}()

	var passages []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			passages = append(passages, strings.Join(current, " "))
			current = current[:0]
		}
	}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	c, err := New(passages)
	if err != nil {
		return nil, fmt.Errorf("passage file %s: %w", path, err)
	}
	return c, nil
}

// Normalize collapses whitespace runs to single spaces and trims the ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
