// Package model defines shared data structures.
package model

import "fmt"

// Durations lists the session lengths, in seconds, a practice run may use.
var Durations = []int{15, 30, 60, 120}

// AdvanceMode selects how the visible window moves when a line is completed.
type AdvanceMode int

const (
	// AdvanceSlide drops the completed line and shifts the rest up.
	AdvanceSlide AdvanceMode = iota
	// AdvanceReplace puts the next chunk into the completed line's slot.
	AdvanceReplace
)

// String implements fmt.Stringer.
func (m AdvanceMode) String() string {
	switch m {
	case AdvanceSlide:
		return "slide"
	case AdvanceReplace:
		return "replace"
	default:
		return fmt.Sprintf("AdvanceMode(%d)", int(m))
	}
}

// ParseAdvanceMode maps a config or flag value to an AdvanceMode.
func ParseAdvanceMode(s string) (AdvanceMode, error) {
	switch s {
	case "slide", "":
		return AdvanceSlide, nil
	case "replace":
		return AdvanceReplace, nil
	default:
		return AdvanceSlide, fmt.Errorf("unknown advance mode %q (want slide or replace)", s)
	}
}

// Config defines practice settings.
type Config struct {
	Duration int
	Lines    int
	Advance  AdvanceMode
	Diff     string
	TextPath string
	LogFile  string
	LogLevel string
}

// CharState classifies one target character for display.
type CharState uint8

const (
	Untouched CharState = iota
	Correct
	Incorrect
	Current
)

// String implements fmt.Stringer.
func (s CharState) String() string {
	switch s {
	case Untouched:
		return "untouched"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case Current:
		return "current"
	default:
		return fmt.Sprintf("CharState(%d)", uint8(s))
	}
}

// Chunk is one width-bounded piece of a passage. Sep holds the separator that
// followed it in the source and was dropped when the chunk was cut.
type Chunk struct {
	Ordinal int
	Text    string
	Sep     string
}

// Results is the payload handed from a finished session to the results view.
type Results struct {
	WPM            int `json:"wpm"`
	Accuracy       int `json:"accuracy"`
	Time           int `json:"time"`
	TotalDuration  int `json:"totalDuration"`
	CharsTyped     int `json:"charsTyped"`
	CorrectChars   int `json:"correctChars"`
	IncorrectChars int `json:"incorrectChars"`
}
