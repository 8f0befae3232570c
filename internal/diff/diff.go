// Package diff compares a line's live input against its target text.
package diff

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/typerush/internal/model"
)

// Result is the outcome of diffing one input buffer against one target.
type Result struct {
	// States has one entry per target rune.
	States []model.CharState
	// Completed reports whether the line counts as finished.
	Completed bool
	// Correct is the number of target runes classified as correct.
	Correct int
	// Typed is the input length in runes, including runes with no target span.
	Typed int
}

// Strategy diffs input against target.
type Strategy func(target, input string) Result

// Strategy names accepted by Parse.
const (
	NameWord   = "word"
	NameStrict = "strict"
)

// Parse returns the strategy registered under name. An empty name selects the
// word-aligned strategy.
func Parse(name string) (Strategy, error) {
	switch name {
	case NameWord, "":
		return WordAligned, nil
	case NameStrict:
		return Strict, nil
	default:
		return nil, fmt.Errorf("unknown diff strategy %q (want %s or %s)", name, NameWord, NameStrict)
	}
}

// Strict compares rune by rune at equal positions. The rune at the input
// length is current. The line is complete when the input has the target's
// length and every rune matched.
func Strict(target, input string) Result {
	t := []rune(target)
	in := []rune(input)
	res := Result{States: make([]model.CharState, len(t)), Typed: len(in)}

	for i := 0; i < len(in) && i < len(t); i++ {
		if in[i] == t[i] {
			res.States[i] = model.Correct
			res.Correct++
		} else {
			res.States[i] = model.Incorrect
		}
	}
	if len(in) < len(t) {
		res.States[len(in)] = model.Current
	}
	res.Completed = len(in) == len(t) && res.Correct == len(t)
	return res
}

// WordAligned compares word by word, splitting both sides on single spaces.
//
// The last input word is still being typed: only its typed prefix is judged
// and the next target rune is current. Earlier words are judged in full, so
// target runes past the input word's end are incorrect; input runes past the
// target word's end have no span to mark. A space is correct when both sides
// continue past it. When the last input word has reached its target length
// the following space is current.
//
// The line is complete once the input has at least as many words as the
// target and its last word is at least as long as the target's last word.
// This accepts a final word with a trailing extra rune.
func WordAligned(target, input string) Result {
	targetWords := strings.Split(target, " ")
	inputWords := strings.Split(input, " ")
	res := Result{
		States: make([]model.CharState, len([]rune(target))),
		Typed:  len([]rune(input)),
	}

	base := 0
	for w := 0; w < len(targetWords) && w < len(inputWords); w++ {
		tw := []rune(targetWords[w])
		iw := []rune(inputWords[w])
		spaceAt := -1
		if w+1 < len(targetWords) {
			spaceAt = base + len(tw)
		}

		if w == len(inputWords)-1 {
			n := min(len(iw), len(tw))
			res.mark(base, tw[:n], iw[:n])
			switch {
			case len(iw) < len(tw):
				res.States[base+len(iw)] = model.Current
			case spaceAt >= 0:
				res.States[spaceAt] = model.Current
			}
			break
		}

		for k := range tw {
			if k >= len(iw) {
				res.States[base+k] = model.Incorrect
				continue
			}
			res.mark(base+k, tw[k:k+1], iw[k:k+1])
		}
		if spaceAt >= 0 {
			res.States[spaceAt] = model.Correct
			res.Correct++
		}
		base += len(tw) + 1
	}

	lastTarget := []rune(targetWords[len(targetWords)-1])
	lastInput := []rune(inputWords[len(inputWords)-1])
	res.Completed = input != "" &&
		len(inputWords) >= len(targetWords) &&
		len(lastInput) >= len(lastTarget)
	return res
}

func (r *Result) mark(at int, target, input []rune) {
	for k := range target {
		if input[k] == target[k] {
			r.States[at+k] = model.Correct
			r.Correct++
		} else {
			r.States[at+k] = model.Incorrect
		}
	}
}
