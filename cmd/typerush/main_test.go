package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typerush/internal/config"
	"github.com/verte-zerg/typerush/internal/corpus"
	"github.com/verte-zerg/typerush/internal/model"
)

func writeFile(path, data string) error {
	return os.WriteFile(path, []byte(data), 0o644)
}

func validCfg() model.Config {
	return model.Config{Duration: 60, Lines: 3, Diff: "word", LogLevel: "info"}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validCfg()))

	cases := map[string]func(*model.Config){
		"duration": func(c *model.Config) { c.Duration = 45 },
		"lines":    func(c *model.Config) { c.Lines = 4 },
		"no lines": func(c *model.Config) { c.Lines = 0 },
		"diff":     func(c *model.Config) { c.Diff = "fuzzy" },
		"level":    func(c *model.Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validCfg()
			mutate(&cfg)
			require.Error(t, validateConfig(cfg))
		})
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	var fc config.FileConfig
	_, err := toml.Decode(defaultConfigTemplate(), &fc)
	require.NoError(t, err)
	assert.Nil(t, fc.Practice.Duration, "template values are commented out")

	uncommented := strings.ReplaceAll(defaultConfigTemplate(), "# duration", "duration")
	_, err = toml.Decode(uncommented, &fc)
	require.NoError(t, err)
	require.NotNil(t, fc.Practice.Duration)
	assert.Equal(t, defaultDuration, *fc.Practice.Duration)
}

func TestResolvePracticeConfigFlagBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, writeFile(path, "[practice]\nduration = 30\nlines = 2\nadvance = \"replace\"\n"))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--duration", "120", "--log-file", ""}))

	cfg, err := resolvePracticeConfig(cmd, path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Duration)
	assert.Equal(t, 2, cfg.Lines)
	assert.Equal(t, model.AdvanceReplace, cfg.Advance)
	assert.Equal(t, "", cfg.LogFile)
}

func TestResolvePracticeConfigRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, writeFile(path, "[practice]\nadvance = \"sideways\"\n"))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))
	_, err := resolvePracticeConfig(cmd, path)
	require.Error(t, err)
}

func TestWriteSamplesTruncates(t *testing.T) {
	entries := []string{"short", strings.Repeat("long ", 20)}
	var buf bytes.Buffer
	require.NoError(t, writeSamples(&buf, entries, []int{1, 0}, 30))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "2  long"))
	assert.True(t, strings.HasSuffix(lines[0], "…"))
	assert.Equal(t, "1  short", lines[1])
}

func TestWriteChunks(t *testing.T) {
	texts, err := corpus.New([]string{"One two three. Four five six."})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, writeChunks(&buf, texts, 0, 1, corpus.MinWidth))
	assert.Equal(t, "# passage 1 (width 20)\nOne two three.\nFour five six.\n", buf.String())
}
