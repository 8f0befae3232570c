// Package main provides the CLI entrypoint for typerush.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typerush/internal/config"
	"github.com/verte-zerg/typerush/internal/corpus"
	"github.com/verte-zerg/typerush/internal/diff"
	"github.com/verte-zerg/typerush/internal/generator"
	"github.com/verte-zerg/typerush/internal/handoff"
	"github.com/verte-zerg/typerush/internal/lines"
	"github.com/verte-zerg/typerush/internal/logging"
	"github.com/verte-zerg/typerush/internal/model"
	"github.com/verte-zerg/typerush/internal/session"
	"github.com/verte-zerg/typerush/internal/stats"
	"github.com/verte-zerg/typerush/internal/store"
	"github.com/verte-zerg/typerush/internal/tui"
)

const (
	defaultDuration = 60
	defaultLines    = lines.MaxWindow
	defaultAdvance  = "slide"
	defaultDiff     = diff.NameWord
	defaultLogLevel = "info"

	fallbackTermWidth = 80
)

var (
	practiceDuration int
	practiceLines    int
	practiceAdvance  string
	practiceDiff     string
	practiceText     string
	practiceLogFile  string
	practiceLogLevel string

	chunksWidth int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typerush",
		Short:         "Timed TUI typing test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().IntVar(&practiceDuration, "duration", defaultDuration, "test length in seconds (15, 30, 60, 120)")
	rootCmd.Flags().IntVar(&practiceLines, "lines", defaultLines, "visible lines (1-3)")
	rootCmd.Flags().StringVar(&practiceAdvance, "advance", defaultAdvance, "line advancement: slide or replace")
	rootCmd.Flags().StringVar(&practiceDiff, "diff", defaultDiff, "input comparison: word or strict")
	rootCmd.Flags().StringVar(&practiceLogFile, "log-file", config.DefaultLogPath(), "log file path (empty disables logging)")
	rootCmd.Flags().StringVar(&practiceLogLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&practiceText, "text", "", "passage file, passages separated by blank lines (default: built-in samples)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newResultsCmd())
	rootCmd.AddCommand(newSamplesCmd())
	rootCmd.AddCommand(newChunksCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfgPath := config.DefaultConfigPath()
	cfg, err := resolvePracticeConfig(cmd, cfgPath)
	if err != nil {
		return err
	}

	log, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() {
		if cerr := logCloser.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	texts, err := loadCorpus(cfg.TextPath)
	if err != nil {
		return err
	}
	strategy, err := diff.Parse(cfg.Diff)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultHandoffPath())
	if err != nil {
		return fmt.Errorf("failed to open handoff store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close handoff store: %v\n", cerr)
		}
	}()

	gen := generator.New(texts, generator.WithWidth(corpus.WidthFor(terminalWidth())))
	ctrl, err := session.New(gen,
		session.WithDuration(cfg.Duration),
		session.WithWindow(cfg.Lines),
		session.WithAdvance(cfg.Advance),
		session.WithStrategy(strategy),
		session.WithLogger(log),
		session.WithHandoff(st),
	)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(ctrl, gen, st, log), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	durationFromFlag := cmd.Flags().Changed("duration")
	err = config.Watch(ctx, cfgPath, func(fc config.FileConfig, err error) {
		if durationFromFlag {
			fc.Practice.Duration = nil
		}
		program.Send(tui.ConfigMsg{Config: fc, Err: err})
	})
	if err != nil {
		log.Warn("config reload disabled", "path", cfgPath, "err", err)
	}

	log.Info("starting practice", "duration", cfg.Duration, "lines", cfg.Lines,
		"advance", cfg.Advance.String(), "diff", cfg.Diff, "passages", texts.Len())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolvePracticeConfig merges flags over the config file over defaults.
func resolvePracticeConfig(cmd *cobra.Command, path string) (model.Config, error) {
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "duration", &practiceDuration, fileCfg.Practice.Duration)
	applyIntConfig(cmd, "lines", &practiceLines, fileCfg.Practice.Lines)
	applyStringConfig(cmd, "advance", &practiceAdvance, fileCfg.Practice.Advance)
	applyStringConfig(cmd, "diff", &practiceDiff, fileCfg.Practice.Diff)
	applyStringConfig(cmd, "text", &practiceText, fileCfg.Practice.Text)
	applyStringConfig(cmd, "log-file", &practiceLogFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-level", &practiceLogLevel, fileCfg.Log.Level)

	advance, err := model.ParseAdvanceMode(practiceAdvance)
	if err != nil {
		return model.Config{}, fmt.Errorf("--advance: %w", err)
	}
	cfg := model.Config{
		Duration: practiceDuration,
		Lines:    practiceLines,
		Advance:  advance,
		Diff:     practiceDiff,
		TextPath: practiceText,
		LogFile:  practiceLogFile,
		LogLevel: practiceLogLevel,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func loadCorpus(path string) (*corpus.Corpus, error) {
	if path == "" {
		return corpus.Default(), nil
	}
	c, err := corpus.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load passages: %w", err)
	}
	return c, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show the results of the last finished test",
		Args:  cobra.NoArgs,
		RunE:  runResultsCmd,
	}
}

// runResultsCmd prints the handed-off results once. Without results it falls
// back to a practice session.
func runResultsCmd(cmd *cobra.Command, args []string) error {
	r, err := takeResults(cmd.Context(), config.DefaultHandoffPath())
	if errors.Is(err, handoff.ErrAbsent) {
		logErrln("No results to show; starting a practice session.")
		return runPracticeCmd(cmd, args)
	}
	if err != nil {
		return err
	}
	if err := stats.RenderResults(cmd.OutOrStdout(), r); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func takeResults(ctx context.Context, path string) (model.Results, error) {
	st, err := store.Open(path)
	if err != nil {
		return model.Results{}, fmt.Errorf("failed to open handoff store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close handoff store: %v\n", cerr)
		}
	}()
	return handoff.Load(ctx, st)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typerush configuration
# Uncomment a value to enable it. CLI flags override config values.
# A config.yaml with the same keys works too.

[practice]
# duration = %d           # Test length in seconds: 15, 30, 60 or 120
# lines = %d              # Visible lines (1-3)
# advance = %q       # Line advancement: "slide" or "replace"
# diff = %q            # Input comparison: "word" or "strict"
# text = ""               # Passage file, passages separated by blank lines

[log]
# file = %q
# level = %q
`,
		defaultDuration,
		defaultLines,
		defaultAdvance,
		defaultDiff,
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if !slices.Contains(model.Durations, cfg.Duration) {
		return fmt.Errorf("--duration must be one of %v", model.Durations)
	}
	if cfg.Lines < 1 || cfg.Lines > lines.MaxWindow {
		return fmt.Errorf("--lines must be between 1 and %d", lines.MaxWindow)
	}
	if _, err := diff.Parse(cfg.Diff); err != nil {
		return fmt.Errorf("--diff: %w", err)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
