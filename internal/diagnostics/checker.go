// Package diagnostics checks that the host can run generations.
package diagnostics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ontypehq/qwen-tts/internal/generate"
	"github.com/ontypehq/qwen-tts/internal/models"
	"github.com/ontypehq/qwen-tts/internal/platform"
	"github.com/ontypehq/qwen-tts/internal/proc"
)

// Status is the outcome of one check.
type Status string

const (
	StatusPass Status = "pass"
	StatusInfo Status = "info"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Item is one line of the report.
type Item struct {
	ID      string
	Name    string
	Status  Status
	Message string
	Hint    string
}

// Report is the full doctor output.
type Report struct {
	GeneratedAt time.Time
	HasFailures bool
	Items       []Item
}

// Settings is the slice of configuration the checks look at.
type Settings struct {
	Backend   platform.Backend
	Python    string
	BaseDir   string
	ModelsDir string
	Variant   string
	OutputDir string
	// Players are the playback programs tried on this OS, in order.
	Players []string
}

// Checker validates external tools and required filesystem paths.
type Checker struct {
	runner     proc.Runner
	stat       func(string) (os.FileInfo, error)
	readDir    func(string) ([]os.DirEntry, error)
	mkdirAll   func(string, os.FileMode) error
	createTemp func(string, string) (*os.File, error)
	remove     func(string) error
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker(runner proc.Runner) *Checker {
	return &Checker{
		runner:     runner,
		stat:       os.Stat,
		readDir:    os.ReadDir,
		mkdirAll:   os.MkdirAll,
		createTemp: os.CreateTemp,
		remove:     os.Remove,
	}
}

// Run executes all checks and returns a combined report.
func (c *Checker) Run(ctx context.Context, s Settings) Report {
	items := []Item{
		c.checkPython(s.Python),
		c.checkHub(ctx, s.Python),
		c.checkTool("git", StatusWarn, "Needed when huggingface_hub is unavailable."),
		c.checkLFS(ctx),
		c.checkGPU(ctx),
		c.checkModel(s),
	}
	if !s.Backend.IsApple() {
		items = append(items, c.checkCompatScript(s.BaseDir))
	}
	items = append(items,
		c.checkTool("ffmpeg", StatusWarn, "Needed to add non-wav reference audio."),
		c.checkPlayers(s.Players),
		c.checkOutputDir(s.OutputDir),
	)

	hasFailures := false
	for _, item := range items {
		if item.Status == StatusFail {
			hasFailures = true
			break
		}
	}

	return Report{
		GeneratedAt: time.Now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

func (c *Checker) checkPython(python string) Item {
	item := Item{ID: "python", Name: "Python interpreter"}
	if _, err := c.stat(python); err != nil {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("Not found: %s", python)
		item.Hint = "Create the venv or point python_path at one: qwen-tts config set python_path <path>"
		return item
	}
	item.Status = StatusPass
	item.Message = python
	return item
}

func (c *Checker) checkHub(ctx context.Context, python string) Item {
	item := Item{ID: "huggingface_hub", Name: "huggingface_hub"}
	if c.runner.Probe(ctx, python, "-c", "import huggingface_hub") {
		item.Status = StatusPass
		item.Message = "importable"
		return item
	}
	item.Status = StatusWarn
	item.Message = "not importable; downloads will fall back to git"
	item.Hint = "pip install huggingface_hub"
	return item
}

// checkTool looks name up on PATH. A miss is reported at level missing.
func (c *Checker) checkTool(name string, missing Status, hint string) Item {
	item := Item{ID: "tool_" + name, Name: name, Status: StatusPass}
	path, err := c.runner.LookPath(name)
	if err != nil {
		item.Status = missing
		item.Message = name + " is not on PATH"
		item.Hint = hint
		return item
	}
	item.Message = path
	return item
}

func (c *Checker) checkLFS(ctx context.Context) Item {
	item := Item{ID: "git_lfs", Name: "git-lfs"}
	if c.runner.Probe(ctx, "git", "lfs", "version") {
		item.Status = StatusPass
		item.Message = "installed"
		return item
	}
	item.Status = StatusWarn
	item.Message = "not installed; git downloads may truncate model weights"
	item.Hint = "brew install git-lfs  OR  apt install git-lfs"
	return item
}

func (c *Checker) checkGPU(ctx context.Context) Item {
	item := Item{ID: "nvidia", Name: "NVIDIA GPU", Status: StatusInfo}
	if c.runner.Probe(ctx, "nvidia-smi") {
		item.Message = "nvidia-smi responded"
	} else {
		item.Message = "none detected"
	}
	return item
}

func (c *Checker) checkModel(s Settings) Item {
	item := Item{ID: "model", Name: "Model " + s.Variant}
	v, err := models.ParseVariant(s.Variant)
	if err != nil {
		item.Status = StatusFail
		item.Message = err.Error()
		item.Hint = "qwen-tts config set model_variant base"
		return item
	}

	dir := models.LocalPathFor(s.ModelsDir, v)
	entries, err := c.readDir(dir)
	if err != nil || len(entries) == 0 {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("Not installed (%s)", models.Repository(s.Backend, v))
		item.Hint = "qwen-tts models download --variant " + v.String()
		return item
	}
	item.Status = StatusPass
	item.Message = fmt.Sprintf("%s (%s)", dir, humanize.Bytes(models.DirSize(dir)))
	return item
}

func (c *Checker) checkCompatScript(baseDir string) Item {
	script := filepath.Join(baseDir, generate.CompatScript)
	item := Item{ID: "compat_script", Name: generate.CompatScript}
	if _, err := c.stat(script); err != nil {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("Not found: %s", script)
		item.Hint = "Reinstall qwen-tts; the cuda and cpu backends run this script."
		return item
	}
	item.Status = StatusPass
	item.Message = script
	return item
}

func (c *Checker) checkPlayers(players []string) Item {
	item := Item{ID: "player", Name: "Audio player"}
	for _, name := range players {
		if path, err := c.runner.LookPath(name); err == nil {
			item.Status = StatusPass
			item.Message = fmt.Sprintf("%s (%s)", name, path)
			return item
		}
	}
	item.Status = StatusWarn
	item.Message = fmt.Sprintf("none of %s found; audio will be saved but not played", strings.Join(players, ", "))
	item.Hint = "Install one, or disable playback: qwen-tts config set auto_play false"
	return item
}

// checkOutputDir makes sure generated audio can be saved: the directory
// exists (or can be made) and accepts a scratch file.
func (c *Checker) checkOutputDir(outputDir string) Item {
	item := Item{ID: "output_dir", Name: "Output directory", Status: StatusFail}
	fix := "qwen-tts config set output_dir <writable path>"

	if strings.TrimSpace(outputDir) == "" {
		item.Message = "output_dir is not set"
		item.Hint = fix
		return item
	}
	if err := c.mkdirAll(outputDir, 0o755); err != nil {
		item.Message = fmt.Sprintf("%s: %v", outputDir, err)
		item.Hint = fix
		return item
	}

	scratch, err := c.createTemp(outputDir, ".qwen-tts-*.wav")
	if err != nil {
		item.Message = fmt.Sprintf("cannot save audio in %s: %v", outputDir, err)
		item.Hint = fix
		return item
	}
	name := scratch.Name()
	_ = scratch.Close()
	_ = c.remove(name)

	item.Status = StatusPass
	item.Message = outputDir
	return item
}
