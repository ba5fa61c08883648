package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/ontypehq/qwen-tts/internal/config"
	"github.com/ontypehq/qwen-tts/internal/ui"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Show current configuration"`
	Set  ConfigSetCmd  `cmd:"" help:"Set a configuration value"`
	Init ConfigInitCmd `cmd:"" help:"Reset configuration to detected defaults"`
	Path ConfigPathCmd `cmd:"" help:"Print the config file location"`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(app *App) error {
	text, err := config.Encode(app.Config.Config)
	if err != nil {
		return err
	}
	ui.Info("%s", ui.Dim("# "+app.Config.Path))
	fmt.Fprint(os.Stdout, string(text))
	return nil
}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key"`
	Value string `arg:"" help:"New value"`
}

func (c *ConfigSetCmd) Run(app *App) error {
	warning, err := app.Config.Config.Set(c.Key, c.Value)
	if err != nil {
		return err
	}
	if warning != "" {
		ui.Warn("%s", warning)
	}
	if err := app.Config.Save(); err != nil {
		return err
	}
	ui.Success("Set %s = %s", ui.Key(c.Key), c.Value)
	return nil
}

type ConfigInitCmd struct{}

func (c *ConfigInitCmd) Run(app *App) error {
	backend := app.Detector.Detect(app.Ctx)
	app.Config.Config = config.Defaults(app.Config.BaseDir, runtime.GOOS, backend)
	if err := app.Config.EnsureDirs(); err != nil {
		return err
	}
	if err := app.Config.Save(); err != nil {
		return err
	}

	ui.Success("Config initialized at %s", app.Config.Path)
	ui.KV("Platform", app.Detector.Summary(app.Ctx))
	ui.KV("Backend", backend.String())
	return nil
}

type ConfigPathCmd struct{}

func (c *ConfigPathCmd) Run(app *App) error {
	fmt.Fprintln(os.Stdout, app.Config.Path)
	return nil
}
