// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typerush/internal/config"
	"github.com/verte-zerg/typerush/internal/corpus"
	"github.com/verte-zerg/typerush/internal/generator"
	"github.com/verte-zerg/typerush/internal/handoff"
	"github.com/verte-zerg/typerush/internal/model"
	"github.com/verte-zerg/typerush/internal/session"
	"github.com/verte-zerg/typerush/internal/stats"
)

// resultsDelay is the pause between time running out and the results screen.
const resultsDelay = time.Second

type screen int

const (
	gameScreen screen = iota
	resultsScreen
)

type tickMsg struct {
	gen uint64
}

type resultsMsg struct {
	gen uint64
}

// ConfigMsg delivers a reloaded config file to a running program.
type ConfigMsg struct {
	Config config.FileConfig
	Err    error
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctrl *session.Controller
	gen  *generator.Generator
	kv   handoff.KV
	log  *slog.Logger

	input textinput.Model
	timer progress.Model
	help  help.Model
	keys  keyMap

	screen  screen
	results model.Results

	width  int
	height int
}

// NewModel constructs a typing TUI model. gen may be nil when the chunk
// width is fixed; kv may be nil to show results straight from the controller.
func NewModel(ctrl *session.Controller, gen *generator.Generator, kv handoff.KV, log *slog.Logger) *Model {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "start typing"
	input.Focus()

	return &Model{
		ctrl:  ctrl,
		gen:   gen,
		kv:    kv,
		log:   log,
		input: input,
		timer: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:  help.New(),
		keys:  keys,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tickMsg:
		live := msg.gen == m.ctrl.Generation() && m.ctrl.State() == session.Running
		if m.ctrl.Tick(msg.gen) {
			return m, tickCmd(msg.gen)
		}
		if live && m.ctrl.State() == session.Finished {
			return m, m.finished()
		}
		return m, nil
	case resultsMsg:
		if msg.gen != m.ctrl.Generation() || m.ctrl.State() != session.Finished {
			return m, nil
		}
		m.showResults()
		return m, nil
	case ConfigMsg:
		m.applyConfig(msg)
		return m, nil
	case tea.KeyMsg:
		if m.screen == resultsScreen {
			return m.updateResults(msg)
		}
		return m.updateGame(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, nil
	case key.Matches(msg, m.keys.Duration):
		if m.ctrl.State() == session.Idle {
			if err := m.ctrl.SetDuration(session.NextDuration(m.ctrl.Duration())); err != nil {
				m.log.Warn("failed to change duration", "err", err)
			}
		}
		return m, nil
	}
	if m.ctrl.State() == session.Finished {
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == prev {
		return m, cmd
	}
	u := m.ctrl.Input(m.input.Value())
	cmds := []tea.Cmd{cmd}
	if u.Started {
		cmds = append(cmds, tickCmd(m.ctrl.Generation()))
	}
	if u.Completed {
		m.input.Reset()
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), msg.String() == "q":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Again):
		m.restart()
		return m, textinput.Blink
	}
	return m, nil
}

// finished freezes input and schedules the switch to the results screen.
func (m *Model) finished() tea.Cmd {
	m.input.Blur()
	gen := m.ctrl.Generation()
	return tea.Tick(resultsDelay, func(time.Time) tea.Msg {
		return resultsMsg{gen: gen}
	})
}

// showResults reads the handed-off payload once. A missing or malformed
// payload sends the user back to a fresh session.
func (m *Model) showResults() {
	r, ok := m.ctrl.Results()
	if m.kv != nil {
		loaded, err := handoff.Load(context.Background(), m.kv)
		switch {
		case err == nil:
			r, ok = loaded, true
		case errors.Is(err, handoff.ErrAbsent):
			m.log.Warn("results unavailable, returning to practice", "session", m.ctrl.ID(), "err", err)
			ok = false
		default:
			m.log.Warn("failed to load results", "session", m.ctrl.ID(), "err", err)
		}
	}
	if !ok {
		m.restart()
		return
	}
	m.results = r
	m.screen = resultsScreen
}

func (m *Model) restart() {
	m.ctrl.Restart()
	m.input.Reset()
	m.input.Focus()
	m.screen = gameScreen
	m.results = model.Results{}
}

func (m *Model) applyConfig(msg ConfigMsg) {
	if msg.Err != nil {
		m.log.Warn("failed to reload config", "err", msg.Err)
		return
	}
	d := msg.Config.Practice.Duration
	if d == nil || *d == m.ctrl.Duration() {
		return
	}
	if err := m.ctrl.SetDuration(*d); err != nil {
		m.log.Warn("ignoring config duration", "err", err)
		return
	}
	m.log.Info("duration changed", "duration", *d, "state", m.ctrl.State().String())
}

func (m *Model) contentWidth() int {
	return max(1, int(float64(m.width)*0.70))
}

// resize keeps chunks at the content width. Lines already on screen are
// only rebuilt while no session is running.
func (m *Model) resize() {
	width := m.contentWidth()
	m.input.Width = width - lipgloss.Width(m.input.Prompt) - 1
	m.timer.Width = width
	m.help.Width = width
	if m.gen == nil {
		return
	}
	chunkWidth := corpus.WidthFor(m.width)
	if chunkWidth == m.gen.Width() {
		return
	}
	m.gen.SetWidth(chunkWidth)
	m.ctrl.Reflow()
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.screen == resultsScreen {
		content = m.renderResults()
	} else {
		content = m.renderGame()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	content = lipgloss.NewStyle().Width(m.contentWidth()).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderGame() string {
	sections := []string{
		m.renderStatus(),
		m.timer.ViewAs(m.timeFraction()),
		"",
		m.renderLines(),
		"",
		m.input.View(),
	}
	if notice := m.renderNotice(); notice != "" {
		sections = append(sections, "", notice)
	}
	sections = append(sections, "", m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m *Model) renderStatus() string {
	return statusStyle.Render(fmt.Sprintf("Time %ds  WPM %d  Accuracy %d%%",
		m.ctrl.TimeLeft(), m.ctrl.WPM(), m.ctrl.Accuracy()))
}

func (m *Model) timeFraction() float64 {
	if m.ctrl.Duration() <= 0 {
		return 0
	}
	return float64(m.ctrl.TimeLeft()) / float64(m.ctrl.Duration())
}

func (m *Model) renderLines() string {
	width := 0
	if m.width > 0 {
		width = m.contentWidth()
	}
	slots := m.ctrl.Slots()
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		runes := buildStyledRunes([]rune(slot.Chunk.Text), slot.States)
		out = append(out, wrapStyledRunes(runes, width))
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderNotice() string {
	switch {
	case m.ctrl.Exhausted():
		return noticeStyle.Render("Out of text. Press ctrl+r to start over.")
	case m.ctrl.State() == session.Idle:
		return noticeStyle.Render(fmt.Sprintf("%s test. Start typing to begin.", stats.FormatDuration(m.ctrl.Duration())))
	case m.ctrl.State() == session.Finished:
		return noticeStyle.Render("Time's up!")
	default:
		return ""
	}
}

func (m *Model) renderFooter() string {
	return footerStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
