// Package stats contains metrics calculations and reporting.
package stats

import (
	"math"
	"time"
)

// WordsPerLine is the nominal word count credited for each completed line.
const WordsPerLine = 10

// CharsPerWord converts in-flight characters to words.
const CharsPerWord = 5

// LineSnapshot is the final keystroke count of one completed line.
type LineSnapshot struct {
	Typed   int
	Correct int
}

// Aggregator keeps running keystroke totals for a session. Totals are always
// recomputed from the completed-line snapshots plus the active line, so a
// correction on the active line can lower them.
type Aggregator struct {
	lines  []LineSnapshot
	active LineSnapshot
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// SetActive records the active line's current input length and correct count.
func (a *Aggregator) SetActive(typed, correct int) {
	a.active = LineSnapshot{Typed: typed, Correct: correct}
}

// Commit stores the active line as completed and starts a new, empty one.
func (a *Aggregator) Commit() {
	a.lines = append(a.lines, a.active)
	a.active = LineSnapshot{}
}

// Reset drops all snapshots.
func (a *Aggregator) Reset() {
	a.lines = nil
	a.active = LineSnapshot{}
}

// CompletedLines returns the number of committed lines.
func (a *Aggregator) CompletedLines() int {
	return len(a.lines)
}

// InFlight returns the active line's input length.
func (a *Aggregator) InFlight() int {
	return a.active.Typed
}

// Total returns all keystrokes: committed lines plus the active line.
func (a *Aggregator) Total() int {
	total := a.active.Typed
	for _, l := range a.lines {
		total += l.Typed
	}
	return total
}

// Correct returns all correct keystrokes: committed lines plus the active line.
func (a *Aggregator) Correct() int {
	correct := a.active.Correct
	for _, l := range a.lines {
		correct += l.Correct
	}
	return correct
}

// Accuracy returns the rounded correct percentage.
func (a *Aggregator) Accuracy() int {
	return Accuracy(a.Correct(), a.Total())
}

// WPM returns words per minute after elapsed time.
func (a *Aggregator) WPM(elapsed time.Duration) int {
	return WPM(a.CompletedLines(), a.InFlight(), elapsed)
}

// Accuracy returns round(correct/total*100) clamped to [0,100]; 100 when
// nothing was typed.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 100
	}
	acc := int(math.Round(float64(correct) / float64(total) * 100))
	return max(0, min(100, acc))
}

// WPM credits WordsPerLine for every completed line plus inFlight/5 words for
// the active line, divided by elapsed minutes. It is 0 when no time elapsed.
func WPM(completedLines, inFlight int, elapsed time.Duration) int {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	words := float64(completedLines*WordsPerLine) + float64(inFlight)/CharsPerWord
	return max(0, int(math.Round(words/minutes)))
}
