package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/config"
	"github.com/ontypehq/qwen-tts/internal/platform"
	"github.com/ontypehq/qwen-tts/internal/proc/proctest"
)

func TestConfigSetPersists(t *testing.T) {
	ta := newTestApp(t, platform.MLX)

	require.NoError(t, (&ConfigSetCmd{Key: "default_speed", Value: "1.25"}).Run(ta.App))
	require.NoError(t, (&ConfigSetCmd{Key: "backend", Value: "cpu"}).Run(ta.App))

	loaded, created, err := config.Load(ta.Config.Path, ta.Config.BaseDir, "linux", func() platform.Backend {
		t.Fatal("config file should exist")
		return platform.CPU
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.InDelta(t, 1.25, loaded.Config.DefaultSpeed, 1e-9)
	assert.Equal(t, platform.CPU, loaded.Config.Backend)
}

func TestLoadAppWithExistingConfigDoesNotDetect(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("backend = \"cpu\"\n"), 0o644))
	runner := &proctest.Runner{}

	app, err := loadApp(context.Background(), path, base, runner, nil)
	require.NoError(t, err)
	assert.Equal(t, platform.CPU, app.Config.Config.Backend)
	assert.Empty(t, runner.Probes())
	assert.Empty(t, runner.Calls())
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	ta := newTestApp(t, platform.MLX)

	assert.ErrorIs(t, (&ConfigSetCmd{Key: "default_speed", Value: "-2"}).Run(ta.App), apperr.ErrUsage)
	assert.ErrorIs(t, (&ConfigSetCmd{Key: "colour", Value: "red"}).Run(ta.App), apperr.ErrUsage)
	assert.NoFileExists(t, ta.Config.Path, "nothing saved on error")
}

func TestModelsListIncludesUnknownDirectories(t *testing.T) {
	ta := newTestApp(t, platform.MLX)
	ta.installModel(t, "base")
	ta.installModel(t, "scratch")

	require.NoError(t, (&ModelsListCmd{}).Run(ta.App))

	entries, err := ta.Pipeline().Inventory()
	require.NoError(t, err)
	known := map[string]bool{}
	for _, e := range entries {
		known[e.Name] = e.Known
	}
	assert.True(t, known["base"])
	assert.Contains(t, known, "scratch")
	assert.False(t, known["scratch"])
}

func TestOutputsClear(t *testing.T) {
	ta := newTestApp(t, platform.MLX)
	dir := ta.Config.OutputDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tts_1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tts_1", "audio.wav"), []byte("RIFF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "take.wav"), []byte("RIFF"), 0o644))

	require.NoError(t, (&OutputsStatusCmd{}).Run(ta.App))
	require.NoError(t, (&OutputsClearCmd{}).Run(ta.App))

	require.Len(t, ta.asked, 1)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.DirExists(t, dir)
}

func TestOutputsClearDeclined(t *testing.T) {
	ta := newTestApp(t, platform.MLX)
	ta.Confirm = func(string, bool) bool { return false }
	dir := ta.Config.OutputDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "take.wav"), []byte("RIFF"), 0o644))

	require.NoError(t, (&OutputsClearCmd{}).Run(ta.App))
	assert.FileExists(t, filepath.Join(dir, "take.wav"))
}
