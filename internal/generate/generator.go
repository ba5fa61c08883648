package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/logging"
	"github.com/ontypehq/qwen-tts/internal/output"
	"github.com/ontypehq/qwen-tts/internal/proc"
	"github.com/ontypehq/qwen-tts/internal/ui"
)

// Installer makes a model variant available locally.
type Installer interface {
	EnsureInstalled(ctx context.Context, variant string) (string, error)
}

// Player plays a file or a directory of chunks. It never fails.
type Player interface {
	Play(ctx context.Context, path string)
}

// Request is one generation, with text already resolved.
type Request struct {
	Mode        Mode
	Text        string
	Instruction string
	Speed       float64
	// Output is the explicit destination; empty picks a timestamped name.
	Output string

	Voice     string
	Reference Reference
}

// Result describes what the engine produced.
type Result struct {
	// Requested is the output path handed to the engine.
	Requested string
	// Path is the located audio, or Requested when nothing was found.
	Path  string
	Found bool
	// Files are the playable files in order: the joined file or every chunk.
	Files []string
}

// Generator runs the engine once per request: model, command, output, playback.
type Generator struct {
	Engine    Engine
	Runner    proc.Runner
	Models    Installer
	Variant   string
	OutputDir string
	AutoPlay  bool
	Player    Player
	Notify    ui.Notifier
	Now       func() time.Time
}

// Generate blocks until the engine exits. A non-zero exit is fatal.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	modelPath, err := g.Models.EnsureInstalled(ctx, g.Variant)
	if err != nil {
		return Result{}, err
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	out := output.ResolvePath(req.Output, g.OutputDir, now())
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	cmd := g.Engine.Build(Params{
		Mode:        req.Mode,
		ModelPath:   modelPath,
		Text:        req.Text,
		Instruction: req.Instruction,
		Speed:       req.Speed,
		OutputPath:  out,
		Voice:       req.Voice,
		RefAudio:    req.Reference.Audio,
		RefText:     req.Reference.Transcript,
	})
	logging.Debug("generate", "mode", req.Mode, "model", modelPath, "output", out)

	if err := g.Runner.Run(ctx, cmd.Name, cmd.Args...); err != nil {
		return Result{}, &apperr.ProcessError{Tool: cmd.Name, Op: "TTS generation", Err: err}
	}

	res := Result{Requested: out, Path: out, Files: output.Playable(out)}
	if len(res.Files) > 0 {
		res.Path, res.Found = res.Files[0], true
	}
	g.Notify.Status("Saved", res.Path)

	if g.AutoPlay && g.Player != nil {
		// unjoined chunks: hand over the directory so every chunk plays
		target := res.Path
		if len(res.Files) > 1 {
			target = out
		}
		g.Player.Play(ctx, target)
	}
	return res, nil
}
