// Package session drives one practice run: countdown, keystroke handling,
// and finalization.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typerush/internal/diff"
	"github.com/verte-zerg/typerush/internal/handoff"
	"github.com/verte-zerg/typerush/internal/lines"
	"github.com/verte-zerg/typerush/internal/model"
	"github.com/verte-zerg/typerush/internal/stats"
)

// ErrInvalidDuration is returned for a duration outside model.Durations.
var ErrInvalidDuration = errors.New("invalid session duration")

// State is the controller's phase.
type State int

const (
	// Idle waits for the first keystroke; the countdown does not run.
	Idle State = iota
	// Running counts down once per tick.
	Running
	// Finished rejects input until Restart.
	Finished
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Source supplies chunks and can start over on restart.
type Source interface {
	lines.Source
	Reset()
}

// Update describes what an input change did.
type Update struct {
	// Started is set on the first keystroke; the caller starts ticking for
	// the current Generation.
	Started bool
	// Completed is set when the active line finished; the caller clears its
	// input buffer.
	Completed bool
	// Exhausted is set when no text is left to type.
	Exhausted bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithDuration sets the session length in seconds.
func WithDuration(seconds int) Option {
	return func(c *Controller) {
		c.duration = seconds
	}
}

// WithWindow sets the number of visible lines.
func WithWindow(k int) Option {
	return func(c *Controller) {
		c.window = k
	}
}

// WithAdvance sets how the visible window moves on line completion.
func WithAdvance(mode model.AdvanceMode) Option {
	return func(c *Controller) {
		c.advance = mode
	}
}

// WithStrategy sets the diff strategy.
func WithStrategy(s diff.Strategy) Option {
	return func(c *Controller) {
		c.diff = s
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithHandoff sets where finished results are written.
func WithHandoff(kv handoff.KV) Option {
	return func(c *Controller) {
		c.kv = kv
	}
}

// Controller owns the session state. It is not safe for concurrent use;
// keystrokes and ticks must be delivered from one event loop.
type Controller struct {
	src     Source
	queue   *lines.Queue
	agg     *stats.Aggregator
	diff    diff.Strategy
	now     func() time.Time
	log     *slog.Logger
	kv      handoff.KV
	window  int
	advance model.AdvanceMode

	id         string
	duration   int
	running    int
	timeLeft   int
	state      State
	startedAt  time.Time
	generation uint64
	results    *model.Results
	trace      []int
}

// New builds an Idle controller with a filled window.
func New(src Source, opts ...Option) (*Controller, error) {
	c := &Controller{
		src:      src,
		agg:      stats.NewAggregator(),
		diff:     diff.WordAligned,
		now:      time.Now,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		window:   lines.MaxWindow,
		duration: 60,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !slices.Contains(model.Durations, c.duration) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, c.duration)
	}
	q, err := lines.New(src, c.window, c.advance)
	if err != nil {
		return nil, err
	}
	c.queue = q
	c.reset()
	return c, nil
}

func (c *Controller) reset() {
	c.generation++
	c.id = uuid.NewString()
	c.state = Idle
	c.timeLeft = c.duration
	c.running = c.duration
	c.startedAt = time.Time{}
	c.results = nil
	c.trace = c.trace[:0]
	c.agg.Reset()
	c.refreshActive()
	if c.queue.Exhausted() {
		c.log.Warn("no text available", "session", c.id)
	}
}

// refreshActive diffs the active slot's current input so its states are
// populated, including the current marker on a fresh line.
func (c *Controller) refreshActive() {
	slot := c.queue.Active()
	if slot == nil {
		return
	}
	res := c.diff(slot.Chunk.Text, slot.Input)
	slot.States = res.States
	slot.Correct = res.Correct
}

// Input re-diffs the active line against the full current input buffer.
// The first non-empty input starts the session.
func (c *Controller) Input(input string) Update {
	if c.state == Finished || c.queue.Exhausted() {
		return Update{Exhausted: c.queue.Exhausted()}
	}
	var u Update
	if c.state == Idle && input != "" {
		c.start()
		u.Started = true
	}

	idx := c.queue.ActiveIndex()
	slot := c.queue.Active()
	res := c.diff(slot.Chunk.Text, input)
	slot.Input = input
	slot.States = res.States
	slot.Correct = res.Correct
	c.agg.SetActive(res.Typed, res.Correct)

	if !res.Completed {
		return u
	}
	u.Completed = true
	c.agg.Commit()
	if err := c.queue.Advance(idx); err != nil {
		if errors.Is(err, lines.ErrExhausted) {
			c.log.Warn("ran out of text", "session", c.id, "lines", c.agg.CompletedLines())
			u.Exhausted = true
			return u
		}
		c.log.Error("failed to advance line", "session", c.id, "err", err)
		return u
	}
	c.refreshActive()
	return u
}

func (c *Controller) start() {
	c.state = Running
	c.startedAt = c.now()
	c.running = c.duration
	c.generation++
	c.log.Info("session started", "session", c.id, "duration", c.running)
}

// Tick advances the countdown by one second. Ticks carrying a generation
// other than the current one belong to a superseded countdown and are
// ignored. It returns true while the caller should keep ticking.
func (c *Controller) Tick(generation uint64) bool {
	if generation != c.generation || c.state != Running {
		return false
	}
	c.timeLeft--
	c.trace = append(c.trace, c.agg.WPM(c.now().Sub(c.startedAt)))
	if c.timeLeft > 0 {
		return true
	}
	c.timeLeft = 0
	c.finish()
	return false
}

// Finish ends a running session early, as if time ran out.
func (c *Controller) Finish() {
	if c.state != Running {
		return
	}
	c.finish()
}

func (c *Controller) finish() {
	c.generation++
	c.state = Finished
	wpm := c.agg.WPM(c.now().Sub(c.startedAt))
	r := stats.BuildResults(c.agg, wpm, c.running-c.timeLeft, c.running)
	c.results = &r
	c.log.Info("session finished", "session", c.id,
		"wpm", r.WPM, "accuracy", r.Accuracy, "chars", r.CharsTyped, "lines", c.agg.CompletedLines())
	if c.kv == nil {
		return
	}
	if err := handoff.Save(context.Background(), c.kv, r); err != nil {
		c.log.Warn("failed to hand off results", "session", c.id, "err", err)
	}
}

// Restart cancels any countdown and returns to Idle with zeroed counters and
// a fresh backlog.
func (c *Controller) Restart() {
	c.src.Reset()
	c.queue.Reset()
	c.reset()
}

// Reflow rebuilds the visible lines, for example after the chunk width
// changed. It only acts while Idle so no typed input is lost.
func (c *Controller) Reflow() {
	if c.state != Idle {
		return
	}
	c.queue.Reset()
	c.refreshActive()
}

// SetDuration changes the session length. While Idle the countdown shows the
// new value at once; otherwise it applies from the next restart.
func (c *Controller) SetDuration(seconds int) error {
	if !slices.Contains(model.Durations, seconds) {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, seconds)
	}
	c.duration = seconds
	if c.state == Idle {
		c.timeLeft = seconds
		c.running = seconds
	}
	return nil
}

// NextDuration returns the duration after d in model.Durations, wrapping.
func NextDuration(d int) int {
	i := slices.Index(model.Durations, d)
	return model.Durations[(i+1)%len(model.Durations)]
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// ID returns the session identifier used in logs.
func (c *Controller) ID() string { return c.id }

// Generation identifies the current countdown; ticks must carry it.
func (c *Controller) Generation() uint64 { return c.generation }

// TimeLeft returns the remaining seconds.
func (c *Controller) TimeLeft() int { return c.timeLeft }

// Duration returns the configured session length in seconds.
func (c *Controller) Duration() int { return c.duration }

// Slots returns the visible lines.
func (c *Controller) Slots() []*lines.Slot { return c.queue.Slots() }

// ActiveIndex returns the display index of the line receiving input.
func (c *Controller) ActiveIndex() int { return c.queue.ActiveIndex() }

// Exhausted reports the terminal "no more text" state.
func (c *Controller) Exhausted() bool { return c.queue.Exhausted() }

// CompletedLines returns the number of lines finished this session.
func (c *Controller) CompletedLines() int { return c.agg.CompletedLines() }

// Keystrokes returns total and correct keystrokes so far.
func (c *Controller) Keystrokes() (total, correct int) {
	return c.agg.Total(), c.agg.Correct()
}

// Accuracy returns the live accuracy percentage.
func (c *Controller) Accuracy() int {
	if c.results != nil {
		return c.results.Accuracy
	}
	return c.agg.Accuracy()
}

// WPM returns the live words-per-minute; 0 before the first keystroke.
func (c *Controller) WPM() int {
	switch c.state {
	case Running:
		return c.agg.WPM(c.now().Sub(c.startedAt))
	case Finished:
		return c.results.WPM
	default:
		return 0
	}
}

// Trace returns the live WPM sampled on every tick of the current session.
func (c *Controller) Trace() []int {
	return slices.Clone(c.trace)
}

// Results returns the payload of a finished session.
func (c *Controller) Results() (model.Results, bool) {
	if c.results == nil {
		return model.Results{}, false
	}
	return *c.results, true
}
