// Package generate turns a speak, design or clone request into an engine
// invocation.
package generate

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/ontypehq/qwen-tts/internal/platform"
)

// Mode selects how the instruction and voice flags are derived.
type Mode int

const (
	Speak Mode = iota
	Design
	Clone
)

func (m Mode) String() string {
	switch m {
	case Speak:
		return "speak"
	case Design:
		return "design"
	case Clone:
		return "clone"
	}
	return "unknown"
}

const (
	// mlxModule is the engine entry point on Apple silicon.
	mlxModule = "mlx_audio.tts.generate"
	// CompatScript lives in the base directory and serves cuda and cpu.
	CompatScript = "generate_compat.py"

	// CloneInstruction is the fixed instruction for voice cloning.
	CloneInstruction = "Clone the voice from the reference audio."
)

// SpeakInstruction renders "Speak as {voice}." with an optional emotion clause.
func SpeakInstruction(voice, emotion string) string {
	if emotion == "" {
		return fmt.Sprintf("Speak as %s.", voice)
	}
	return fmt.Sprintf("Speak as %s with %s emotion.", voice, emotion)
}

// Params is everything the engine needs for one generation. Text and
// ModelPath must already be resolved.
type Params struct {
	Mode        Mode
	ModelPath   string
	Text        string
	Instruction string
	Speed       float64
	OutputPath  string

	// Voice is passed only in Speak mode.
	Voice string
	// RefAudio and RefText are passed only in Clone mode.
	RefAudio string
	RefText  string
}

// Command is a program and its arguments.
type Command struct {
	Name string
	Args []string
}

// Engine describes how to reach the external inference engine.
type Engine struct {
	Backend platform.Backend
	Python  string
	BaseDir string
}

// Build assembles the engine invocation. It does no I/O.
func (e Engine) Build(p Params) Command {
	var args []string
	if e.Backend.IsApple() {
		args = append(args, "-m", mlxModule)
	} else {
		args = append(args, filepath.Join(e.BaseDir, CompatScript))
	}

	args = append(args,
		"--model", p.ModelPath,
		"--text", p.Text,
		"--instruct", p.Instruction,
		"--speed", strconv.FormatFloat(p.Speed, 'f', -1, 64),
		"--output_path", p.OutputPath,
	)
	if p.Mode == Speak && p.Voice != "" {
		// keeps the voice consistent across chunks
		args = append(args, "--voice", p.Voice)
	}
	args = append(args, "--join_audio")

	if p.Mode == Clone {
		if p.RefAudio != "" {
			args = append(args, "--ref_audio", p.RefAudio)
		}
		if p.RefText != "" {
			args = append(args, "--ref_text", p.RefText)
		}
	}
	return Command{Name: e.Python, Args: args}
}
