package cmd

import (
	"errors"

	"github.com/ontypehq/qwen-tts/internal/diagnostics"
	"github.com/ontypehq/qwen-tts/internal/ui"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(app *App) error {
	cfg := app.Config.Config

	var players []string
	for _, cand := range app.Player().Candidates("") {
		players = append(players, cand.Name)
	}

	ui.Info("%s", ui.Brand("qwen-tts doctor"))
	ui.KV("Platform", app.Detector.Summary(app.Ctx))
	ui.KV("Config", app.Config.Path)
	ui.Info("")

	report := diagnostics.NewChecker(app.Runner).Run(app.Ctx, diagnostics.Settings{
		Backend:   cfg.Backend,
		Python:    app.Config.PythonPath(),
		BaseDir:   app.Config.BaseDir,
		ModelsDir: app.Config.ModelsDir(),
		Variant:   cfg.ModelVariant,
		OutputDir: app.Config.OutputDir(),
		Players:   players,
	})

	for _, item := range report.Items {
		switch item.Status {
		case diagnostics.StatusPass:
			ui.Success("%s: %s", item.Name, item.Message)
		case diagnostics.StatusInfo:
			ui.Info("  %s: %s", item.Name, ui.Dim(item.Message))
		case diagnostics.StatusWarn:
			ui.Warn("%s: %s", item.Name, item.Message)
		case diagnostics.StatusFail:
			ui.Error("%s: %s", item.Name, item.Message)
		}
		if item.Hint != "" && item.Status != diagnostics.StatusPass {
			ui.Info("    %s", ui.Dim(item.Hint))
		}
	}

	if report.HasFailures {
		return errors.New("doctor found problems")
	}
	return nil
}
