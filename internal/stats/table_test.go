package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Metric", "Value"}
	rows := [][]string{
		{"WPM", "72"},
		{"Accuracy", "95%"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Metric   Value" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "WPM         72" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Accuracy   95%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"K", "V"}, [][]string{{"日本", "1"}}, nil)
	if lines[0] != "K    V" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
}
