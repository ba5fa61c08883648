package models

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/platform"
	"github.com/ontypehq/qwen-tts/internal/proc"
	"github.com/ontypehq/qwen-tts/internal/proc/proctest"
)

type fixture struct {
	root     string
	python   string
	pipeline *Pipeline
	runner   *proctest.Runner
	notes    *proctest.Notes
}

// newFixture builds a pipeline whose interpreter exists when withPython is set.
func newFixture(t *testing.T, withPython bool) *fixture {
	t.Helper()
	root := t.TempDir()
	python := filepath.Join(root, "venv", "bin", "python")
	if withPython {
		mustWriteFile(t, python, "#!/bin/sh\n")
	}

	f := &fixture{root: root, python: python, runner: &proctest.Runner{}, notes: &proctest.Notes{}}
	f.pipeline = NewPipeline(platform.MLX, filepath.Join(root, "models"), python, f.runner, f.notes)
	return f
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func isHub(f *fixture, name string) bool { return name == f.python }

func isClone(name string, args []string) bool {
	return name == "git" && len(args) > 0 && args[0] == "clone"
}

// cloneInto fakes a successful shallow clone.
func cloneInto(t *testing.T, args []string) {
	dest := args[len(args)-1]
	mustWriteFile(t, filepath.Join(dest, ".git", "HEAD"), "ref: refs/heads/main\n")
	mustWriteFile(t, filepath.Join(dest, "model.safetensors"), "weights")
}

func TestEnsureInstalledIsNoOpWhenInstalled(t *testing.T) {
	f := newFixture(t, true)
	dest := f.pipeline.Path(Base)
	mustWriteFile(t, filepath.Join(dest, "config.json"), "{}")

	path, err := f.pipeline.EnsureInstalled(context.Background(), "base")
	require.NoError(t, err)
	assert.Equal(t, dest, path)
	assert.Empty(t, f.runner.Calls())
	assert.Empty(t, f.runner.Probes())
}

func TestEnsureInstalledTreatsEmptyDirectoryAsMissing(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, os.MkdirAll(f.pipeline.Path(Base), 0o755))
	f.runner.OnRun = func(name string, args ...string) error {
		mustWriteFile(t, filepath.Join(f.pipeline.Path(Base), "config.json"), "{}")
		return nil
	}

	_, err := f.pipeline.EnsureInstalled(context.Background(), "base")
	require.NoError(t, err)
	require.Len(t, f.runner.Calls(), 1)
	assert.Equal(t, f.python, f.runner.Calls()[0].Name)
}

func TestEnsureInstalledDeclinedPromptIsUsageError(t *testing.T) {
	f := newFixture(t, true)
	var asked string
	f.pipeline.Confirm = func(q string, defaultYes bool) bool {
		asked = q
		assert.True(t, defaultYes)
		return false
	}

	_, err := f.pipeline.EnsureInstalled(context.Background(), "design")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUsage)
	assert.Contains(t, asked, "Model 'design'")
	assert.Empty(t, f.runner.Calls())
}

func TestEnsureInstalledUnknownVariant(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.pipeline.EnsureInstalled(context.Background(), "mega")
	assert.ErrorIs(t, err, apperr.ErrUsage)
	assert.Empty(t, f.runner.Calls())
}

func TestDownloadViaHub(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.pipeline.Download(context.Background(), "custom"))

	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, f.python, calls[0].Name)
	require.Len(t, calls[0].Args, 2)
	assert.Equal(t, "-c", calls[0].Args[0])
	assert.Contains(t, calls[0].Args[1], `snapshot_download("mlx-community/Qwen3-TTS-12Hz-0.6B-CustomVoice-bf16"`)
	assert.Contains(t, calls[0].Args[1], f.pipeline.Path(Custom))
	assert.Empty(t, f.notes.Warnings)
}

func TestDownloadFallsBackToGitWhenHubFails(t *testing.T) {
	f := newFixture(t, true)
	f.runner.OnRun = func(name string, args ...string) error {
		if isHub(f, name) {
			mustWriteFile(t, filepath.Join(f.pipeline.Path(Base), "partial.bin"), "x")
			return &proc.ExitError{Name: name, Code: 1}
		}
		if isClone(name, args) {
			cloneInto(t, args)
		}
		return nil
	}

	require.NoError(t, f.pipeline.Download(context.Background(), "base"))

	calls := f.runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, f.python, calls[0].Name)
	assert.Equal(t, []string{"clone", "--depth", "1",
		"https://huggingface.co/mlx-community/Qwen3-TTS-12Hz-0.6B-Base-bf16", f.pipeline.Path(Base)}, calls[1].Args)

	assert.True(t, f.notes.HasWarning("huggingface_hub download failed"))
	assert.False(t, f.notes.HasWarning("git-lfs"))
	assert.NoFileExists(t, filepath.Join(f.pipeline.Path(Base), "partial.bin"))
	assert.True(t, f.pipeline.Installed(Base))
}

func TestDownloadSkipsHubWithoutInterpreter(t *testing.T) {
	f := newFixture(t, false)
	f.runner.OnRun = func(name string, args ...string) error {
		if isClone(name, args) {
			cloneInto(t, args)
		}
		return nil
	}

	require.NoError(t, f.pipeline.Download(context.Background(), "base-4bit"))

	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "git", calls[0].Name)
	assert.Empty(t, f.notes.Warnings)
}

func TestDownloadWarnsWithoutGitLFS(t *testing.T) {
	f := newFixture(t, false)
	f.runner.OnProbe = func(name string, args ...string) bool {
		return !(name == "git" && len(args) > 0 && args[0] == "lfs")
	}

	require.NoError(t, f.pipeline.Download(context.Background(), "base"))
	assert.True(t, f.notes.HasWarning("git-lfs not found"))
}

func TestDownloadGitFailureIsFatal(t *testing.T) {
	f := newFixture(t, true)
	f.runner.OnRun = func(name string, args ...string) error {
		return &proc.ExitError{Name: name, Code: 128}
	}

	err := f.pipeline.Download(context.Background(), "base")
	require.Error(t, err)

	var perr *apperr.ProcessError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "git", perr.Tool)
	assert.True(t, proc.IsExit(err))
	assert.Len(t, f.runner.Calls(), 2)
}

func TestUpdatePullSuccessKeepsInstallation(t *testing.T) {
	f := newFixture(t, true)
	dest := f.pipeline.Path(Base)
	mustWriteFile(t, filepath.Join(dest, ".git", "HEAD"), "ref")
	mustWriteFile(t, filepath.Join(dest, "model.safetensors"), "old")

	require.NoError(t, f.pipeline.Update(context.Background(), "base"))

	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "git -C "+dest+" pull --ff-only", calls[0].String())
	assert.FileExists(t, filepath.Join(dest, "model.safetensors"))
}

func TestUpdatePullFailureRedownloads(t *testing.T) {
	f := newFixture(t, true)
	dest := f.pipeline.Path(Base)
	mustWriteFile(t, filepath.Join(dest, ".git", "HEAD"), "ref")
	mustWriteFile(t, filepath.Join(dest, "stale.bin"), "old")

	f.runner.OnRun = func(name string, args ...string) error {
		if name == "git" && len(args) > 2 && args[2] == "pull" {
			return &proc.ExitError{Name: name, Code: 1}
		}
		if isHub(f, name) {
			mustWriteFile(t, filepath.Join(dest, "model.safetensors"), "new")
		}
		return nil
	}

	require.NoError(t, f.pipeline.Update(context.Background(), "base"))

	calls := f.runner.Calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0].String(), "pull --ff-only")
	assert.Equal(t, f.python, calls[1].Name)
	assert.True(t, f.notes.HasWarning("git pull failed"))
	assert.NoFileExists(t, filepath.Join(dest, "stale.bin"))
	assert.FileExists(t, filepath.Join(dest, "model.safetensors"))
}

func TestUpdateNonGitInstallationRedownloads(t *testing.T) {
	f := newFixture(t, true)
	dest := f.pipeline.Path(Design)
	mustWriteFile(t, filepath.Join(dest, "stale.bin"), "old")

	require.NoError(t, f.pipeline.Update(context.Background(), "design"))

	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, f.python, calls[0].Name)
	assert.NoFileExists(t, filepath.Join(dest, "stale.bin"))
}

func TestUpdateMissingBehavesLikeDownload(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.pipeline.Update(context.Background(), "custom-4bit"))

	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, f.python, calls[0].Name)
	assert.Empty(t, f.notes.Warnings)
}

func TestUpdateFailedRedownloadLeavesNothingInstalled(t *testing.T) {
	f := newFixture(t, true)
	dest := f.pipeline.Path(Base)
	mustWriteFile(t, filepath.Join(dest, "stale.bin"), "old")

	f.runner.OnRun = func(name string, args ...string) error {
		mustWriteFile(t, filepath.Join(dest, "partial.bin"), "x")
		return &proc.ExitError{Name: name, Code: 1}
	}

	require.Error(t, f.pipeline.Update(context.Background(), "base"))
	assert.False(t, f.pipeline.Installed(Base))
}

func TestAliasInstallsUnderOwnNameAndWarns(t *testing.T) {
	f := newFixture(t, true)

	path, err := f.pipeline.EnsureInstalled(context.Background(), "lite")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.pipeline.ModelsDir, "lite"), path)
	assert.True(t, f.notes.HasWarning("deprecated"))

	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Args[1], "Qwen3-TTS-12Hz-0.6B-Base-4bit")
}

func TestAutoInstall(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		f := newFixture(t, true)
		f.pipeline.AutoInstall(context.Background(), "base", func(string, bool) bool { return false })
		assert.Empty(t, f.runner.Calls())
		require.Len(t, f.notes.Infos, 2)
		assert.Contains(t, f.notes.Infos[0], "No TTS model installed")
		assert.Contains(t, f.notes.Infos[1], "Skipped")
	})

	t.Run("accepted", func(t *testing.T) {
		f := newFixture(t, true)
		f.pipeline.AutoInstall(context.Background(), "base", func(string, bool) bool { return true })
		assert.Len(t, f.runner.Calls(), 1)
		assert.Contains(t, f.notes.Statuses, "Ready model 'base'")
	})

	t.Run("already installed is not asked", func(t *testing.T) {
		f := newFixture(t, true)
		mustWriteFile(t, filepath.Join(f.pipeline.Path(Base), "config.json"), "{}")
		f.pipeline.AutoInstall(context.Background(), "base", func(string, bool) bool {
			t.Fatal("unexpected prompt")
			return false
		})
	})

	t.Run("failure is only a warning", func(t *testing.T) {
		f := newFixture(t, true)
		f.runner.OnRun = func(name string, args ...string) error {
			return &proc.ExitError{Name: name, Code: 1}
		}
		f.pipeline.AutoInstall(context.Background(), "base", func(string, bool) bool { return true })
		assert.True(t, f.notes.HasWarning("Auto-download failed"))
		assert.Contains(t, f.notes.Infos, "Run `qwen-tts models download` to try again.")
	})
}

func TestInventory(t *testing.T) {
	f := newFixture(t, true)
	mustWriteFile(t, filepath.Join(f.pipeline.Path(Base), "model.safetensors"), "12345")
	mustWriteFile(t, filepath.Join(f.pipeline.ModelsDir, "lite", "model.safetensors"), "12")
	mustWriteFile(t, filepath.Join(f.pipeline.ModelsDir, "scratch", "notes.txt"), "1")

	entries, err := f.pipeline.Inventory()
	require.NoError(t, err)
	require.Len(t, entries, len(Canonical)+2)

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.True(t, byName["base"].Installed)
	assert.Equal(t, uint64(5), byName["base"].Size)
	assert.False(t, byName["design"].Installed)
	assert.True(t, byName["lite"].Known)
	assert.False(t, byName["scratch"].Known)
	assert.True(t, strings.HasSuffix(string(byName["lite"].Repository), "Base-4bit"))

	assert.Equal(t, "lite", entries[len(Canonical)].Name)
}

func TestInventoryWithoutModelsDir(t *testing.T) {
	f := newFixture(t, true)
	entries, err := f.pipeline.Inventory()
	require.NoError(t, err)
	assert.Len(t, entries, len(Canonical))
}
