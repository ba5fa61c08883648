package audio

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/ontypehq/qwen-tts/internal/logging"
	"github.com/ontypehq/qwen-tts/internal/output"
	"github.com/ontypehq/qwen-tts/internal/proc"
	"github.com/ontypehq/qwen-tts/internal/ui"
)

// Candidate is one player program and its arguments for a file.
type Candidate struct {
	Name string
	Args []string
}

// Player plays audio files through whatever player program the host has.
type Player struct {
	GOOS   string
	Runner proc.Runner
	Notify ui.Notifier
}

// NewPlayer returns a player for the current OS.
func NewPlayer(runner proc.Runner, notify ui.Notifier) *Player {
	return &Player{GOOS: runtime.GOOS, Runner: runner, Notify: notify}
}

// Candidates lists the programs to try for file, native player first.
func (p *Player) Candidates(file string) []Candidate {
	switch p.GOOS {
	case "darwin":
		return []Candidate{
			{"afplay", []string{file}},
			{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}},
		}
	case "windows":
		script := "(New-Object Media.SoundPlayer '" + strings.ReplaceAll(file, "'", "''") + "').PlaySync()"
		return []Candidate{
			{"powershell", []string{"-NoProfile", "-Command", script}},
			{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}},
		}
	default:
		return []Candidate{
			{"aplay", []string{file}},
			{"paplay", []string{file}},
			{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}},
			{"mpv", []string{"--no-terminal", file}},
		}
	}
}

// Play plays path. A directory plays its joined audio.wav, or every chunk
// in name order. Failures are reported as warnings only.
func (p *Player) Play(ctx context.Context, path string) {
	files := []string{path}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		files = output.Playable(path)
		if len(files) == 0 {
			p.Notify.Warn("nothing to play in %s", path)
			return
		}
	}

	for _, f := range files {
		if ctx.Err() != nil {
			return
		}
		p.Notify.Status("Playing", f)
		p.playOne(ctx, f)
	}
}

func (p *Player) playOne(ctx context.Context, file string) {
	var tried []string
	for _, c := range p.Candidates(file) {
		tried = append(tried, c.Name)
		err := p.Runner.Run(ctx, c.Name, c.Args...)
		if err == nil {
			return
		}
		if proc.IsExit(err) {
			p.Notify.Warn("%s: %v", c.Name, err)
			continue
		}
		logging.Debug("player unavailable", "player", c.Name, "err", err)
	}
	p.Notify.Warn("could not play %s (tried %s)", file, strings.Join(tried, ", "))
}
