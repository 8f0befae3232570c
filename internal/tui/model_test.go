package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typerush/internal/config"
	"github.com/verte-zerg/typerush/internal/corpus"
	"github.com/verte-zerg/typerush/internal/generator"
	"github.com/verte-zerg/typerush/internal/session"
)

type memKV struct {
	values map[string][]byte
	drop   bool
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	if m.drop {
		return nil
	}
	if m.values == nil {
		m.values = map[string][]byte{}
	}
	m.values[key] = value
	return nil
}

func (m *memKV) Take(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	delete(m.values, key)
	return v, ok, nil
}

func newTestModel(t *testing.T, kv *memKV) (*Model, *session.Controller, *generator.Generator) {
	t.Helper()
	c, err := corpus.New([]string{"alpha beta."})
	if err != nil {
		t.Fatalf("corpus: %v", err)
	}
	gen := generator.New(c, generator.WithRand(rand.New(rand.NewSource(1))), generator.WithWidth(60))
	ctrl, err := session.New(gen, session.WithDuration(15), session.WithHandoff(kv))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return NewModel(ctrl, gen, kv, nil), ctrl, gen
}

func typeText(m *Model, text string) tea.Cmd {
	var last tea.Cmd
	for _, r := range text {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if cmd != nil {
			last = cmd
		}
	}
	return last
}

func runOut(t *testing.T, m *Model, ctrl *session.Controller) tea.Cmd {
	t.Helper()
	gen := ctrl.Generation()
	var cmd tea.Cmd
	for i := 0; i < 15; i++ {
		_, cmd = m.Update(tickMsg{gen: gen})
	}
	if ctrl.State() != session.Finished {
		t.Fatalf("expected finished, got %s", ctrl.State())
	}
	return cmd
}

func TestFirstKeystrokeStartsSession(t *testing.T) {
	m, ctrl, _ := newTestModel(t, &memKV{})
	if ctrl.State() != session.Idle {
		t.Fatalf("expected idle, got %s", ctrl.State())
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if cmd == nil {
		t.Fatalf("expected tick command after first keystroke")
	}
	if ctrl.State() != session.Running {
		t.Fatalf("expected running, got %s", ctrl.State())
	}
	if m.input.Value() != "a" {
		t.Fatalf("expected input to hold keystroke, got %q", m.input.Value())
	}
}

func TestIdleTickDoesNotCountDown(t *testing.T) {
	m, ctrl, _ := newTestModel(t, &memKV{})
	_, cmd := m.Update(tickMsg{gen: ctrl.Generation()})
	if cmd != nil {
		t.Fatalf("expected no follow-up tick while idle")
	}
	if ctrl.TimeLeft() != 15 {
		t.Fatalf("expected 15s left, got %d", ctrl.TimeLeft())
	}
}

func TestCompletedLineClearsInput(t *testing.T) {
	m, ctrl, _ := newTestModel(t, &memKV{})
	typeText(m, "alpha beta.")
	if ctrl.CompletedLines() != 1 {
		t.Fatalf("expected 1 completed line, got %d", ctrl.CompletedLines())
	}
	if m.input.Value() != "" {
		t.Fatalf("expected cleared input, got %q", m.input.Value())
	}
}

func TestTickCountsDownAndIgnoresStale(t *testing.T) {
	m, ctrl, _ := newTestModel(t, &memKV{})
	typeText(m, "a")
	gen := ctrl.Generation()

	_, cmd := m.Update(tickMsg{gen: gen})
	if cmd == nil {
		t.Fatalf("expected next tick to be scheduled")
	}
	if ctrl.TimeLeft() != 14 {
		t.Fatalf("expected 14s left, got %d", ctrl.TimeLeft())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if ctrl.State() != session.Idle {
		t.Fatalf("expected idle after restart, got %s", ctrl.State())
	}
	if _, cmd := m.Update(tickMsg{gen: gen}); cmd != nil {
		t.Fatalf("expected stale tick to stop")
	}
	if ctrl.TimeLeft() != 15 {
		t.Fatalf("expected 15s left after restart, got %d", ctrl.TimeLeft())
	}
}

func TestTimeoutShowsResults(t *testing.T) {
	m, ctrl, _ := newTestModel(t, &memKV{})
	typeText(m, "alpha")
	if cmd := runOut(t, m, ctrl); cmd == nil {
		t.Fatalf("expected delayed results command")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.screen != gameScreen {
		t.Fatalf("expected game screen during results delay")
	}

	m.Update(resultsMsg{gen: ctrl.Generation()})
	if m.screen != resultsScreen {
		t.Fatalf("expected results screen")
	}
	if m.results.CharsTyped != 5 || m.results.TotalDuration != 15 {
		t.Fatalf("unexpected results %+v", m.results)
	}
	view := m.View()
	for _, want := range []string{"WPM", "Accuracy", "Results (15s test)", "Speed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("results view missing %q: %s", want, view)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != gameScreen || ctrl.State() != session.Idle {
		t.Fatalf("expected try again to return to an idle game")
	}
}

func TestMissingResultsRedirectToGame(t *testing.T) {
	m, ctrl, _ := newTestModel(t, &memKV{drop: true})
	typeText(m, "alpha")
	runOut(t, m, ctrl)

	m.Update(resultsMsg{gen: ctrl.Generation()})
	if m.screen != gameScreen {
		t.Fatalf("expected redirect to game screen")
	}
	if ctrl.State() != session.Idle {
		t.Fatalf("expected idle session after redirect, got %s", ctrl.State())
	}
}

func TestStaleResultsMsgIgnored(t *testing.T) {
	m, ctrl, _ := newTestModel(t, &memKV{})
	typeText(m, "alpha")
	runOut(t, m, ctrl)
	gen := ctrl.Generation()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m.Update(resultsMsg{gen: gen})
	if m.screen != gameScreen {
		t.Fatalf("expected results after restart to be ignored")
	}
}

func TestTabCyclesDurationWhileIdle(t *testing.T) {
	m, ctrl, _ := newTestModel(t, &memKV{})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if ctrl.Duration() != 30 || ctrl.TimeLeft() != 30 {
		t.Fatalf("expected 30s, got duration %d left %d", ctrl.Duration(), ctrl.TimeLeft())
	}

	typeText(m, "a")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if ctrl.Duration() != 30 {
		t.Fatalf("expected duration locked while running, got %d", ctrl.Duration())
	}
}

func TestConfigReloadSetsDuration(t *testing.T) {
	m, ctrl, _ := newTestModel(t, &memKV{})
	d := 120
	m.Update(ConfigMsg{Config: config.FileConfig{Practice: config.PracticeConfig{Duration: &d}}})
	if ctrl.TimeLeft() != 120 {
		t.Fatalf("expected 120s left, got %d", ctrl.TimeLeft())
	}

	bad := 7
	m.Update(ConfigMsg{Config: config.FileConfig{Practice: config.PracticeConfig{Duration: &bad}}})
	if ctrl.Duration() != 120 {
		t.Fatalf("expected invalid duration to be ignored, got %d", ctrl.Duration())
	}
}

func TestWindowSizeSetsChunkWidth(t *testing.T) {
	m, _, gen := newTestModel(t, &memKV{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if gen.Width() != corpus.WidthFor(100) {
		t.Fatalf("expected width %d, got %d", corpus.WidthFor(100), gen.Width())
	}
	if m.View() == "" {
		t.Fatalf("expected rendered view")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, &memKV{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}
