package cmd

import (
	"context"
	"runtime"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/audio"
	"github.com/ontypehq/qwen-tts/internal/config"
	"github.com/ontypehq/qwen-tts/internal/generate"
	"github.com/ontypehq/qwen-tts/internal/models"
	"github.com/ontypehq/qwen-tts/internal/platform"
	"github.com/ontypehq/qwen-tts/internal/proc"
	"github.com/ontypehq/qwen-tts/internal/ui"
	"github.com/ontypehq/qwen-tts/internal/voices"
)

// App is what every command's Run receives.
type App struct {
	Ctx      context.Context
	Config   *config.AppConfig
	Runner   proc.Runner
	Detector *platform.Detector
	Notify   ui.Notifier
	// Confirm asks yes/no questions; ui.Confirm outside tests.
	Confirm func(question string, defaultYes bool) bool
	// Editor collects text when neither an argument nor --file is given.
	Editor generate.EditorFunc
}

// NewApp loads (or on first run creates) the configuration at path.
// An empty path uses the platform default.
func NewApp(ctx context.Context, path string, runner proc.Runner, editor generate.EditorFunc) (*App, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	return loadApp(ctx, path, config.BaseDir(), runner, editor)
}

func loadApp(ctx context.Context, path, base string, runner proc.Runner, editor generate.EditorFunc) (*App, error) {
	app := &App{
		Ctx:      ctx,
		Runner:   runner,
		Detector: platform.NewDetector(runner),
		Notify:   ui.Console{},
		Confirm:  ui.Confirm,
		Editor:   editor,
	}

	cfg, created, err := config.Load(path, base, runtime.GOOS, func() platform.Backend {
		return app.Detector.Detect(ctx)
	})
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if created {
		ui.Success("Created config at %s", cfg.Path)
		ui.Info("Platform: %s", app.Detector.Summary(ctx))
		app.Pipeline().AutoInstall(ctx, cfg.Config.ModelVariant, app.Confirm)
	}
	return app, nil
}

// Pipeline returns the model pipeline for the configured backend.
func (a *App) Pipeline() *models.Pipeline {
	p := models.NewPipeline(a.Config.Config.Backend, a.Config.ModelsDir(), a.Config.PythonPath(), a.Runner, a.Notify)
	p.Confirm = a.Confirm
	return p
}

// Voices returns the saved-voice store.
func (a *App) Voices() *voices.Store {
	return voices.NewStore(a.Config.VoicesDir())
}

// Player returns the external player chain for this OS.
func (a *App) Player() *audio.Player {
	return audio.NewPlayer(a.Runner, a.Notify)
}

// Generator wires the engine for the configured backend. noPlay overrides
// auto_play for one invocation.
func (a *App) Generator(noPlay bool) *generate.Generator {
	cfg := a.Config.Config
	return &generate.Generator{
		Engine:    generate.Engine{Backend: cfg.Backend, Python: a.Config.PythonPath(), BaseDir: a.Config.BaseDir},
		Runner:    a.Runner,
		Models:    a.Pipeline(),
		Variant:   cfg.ModelVariant,
		OutputDir: a.Config.OutputDir(),
		AutoPlay:  cfg.AutoPlay && !noPlay,
		Player:    a.Player(),
		Notify:    a.Notify,
	}
}

// speed returns the flag value, or the configured default when unset.
func (a *App) speed(flag float64) (float64, error) {
	switch {
	case flag == 0:
		return a.Config.Config.DefaultSpeed, nil
	case flag < 0:
		return 0, apperr.Usage("invalid speed: %v (expected a positive number)", flag)
	}
	return flag, nil
}

// OutputFlags are shared by the three generation commands.
type OutputFlags struct {
	Speed  float64 `short:"s" help:"Speech speed multiplier (default from config)"`
	Output string  `short:"o" help:"Output path (default: timestamped name in output_dir)"`
	NoPlay bool    `help:"Do not play the result even if auto_play is on"`
}
