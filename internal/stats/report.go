package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/typerush/internal/model"
)

// BuildResults assembles the payload for a finished session. elapsed and
// duration are in whole seconds.
func BuildResults(a *Aggregator, wpm, elapsed, duration int) model.Results {
	total := a.Total()
	correct := a.Correct()
	return model.Results{
		WPM:            wpm,
		Accuracy:       Accuracy(correct, total),
		Time:           elapsed,
		TotalDuration:  duration,
		CharsTyped:     total,
		CorrectChars:   correct,
		IncorrectChars: total - correct,
	}
}

// PerformanceMessage returns the encouragement shown for a WPM score.
func PerformanceMessage(wpm int) string {
	switch {
	case wpm < 30:
		return "Keep practicing! Your typing speed will improve with time."
	case wpm < 50:
		return "Good job! You're approaching the average typing speed."
	case wpm < 70:
		return "Great work! You're above average."
	case wpm < 90:
		return "Excellent! You're typing at a professional level."
	default:
		return "Outstanding! You're among the fastest typists."
	}
}

// FormatDuration renders a test length: "45s" below a minute, else whole minutes.
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if minutes > 1 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	return fmt.Sprintf("%d minute", minutes)
}

// RenderResults prints a results payload as a plain table.
func RenderResults(w io.Writer, r model.Results) error {
	if _, err := fmt.Fprintf(w, "Results (%s test)\n", FormatDuration(r.TotalDuration)); err != nil {
		return err
	}
	rows := [][]string{
		{"WPM", fmt.Sprintf("%d", r.WPM)},
		{"Accuracy", fmt.Sprintf("%d%%", r.Accuracy)},
		{"Time", fmt.Sprintf("%ds", r.Time)},
		{"Characters", fmt.Sprintf("%d", r.CharsTyped)},
		{"Correct", fmt.Sprintf("%d", r.CorrectChars)},
		{"Incorrect", fmt.Sprintf("%d", r.IncorrectChars)},
	}
	for _, line := range formatTable([]string{"Metric", "Value"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, PerformanceMessage(r.WPM))
	return err
}
