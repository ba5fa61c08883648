package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/ontypehq/qwen-tts/internal/ui"
)

type ModelsCmd struct {
	List     ModelsListCmd     `cmd:"" default:"1" help:"List model variants and what is installed"`
	Download ModelsDownloadCmd `cmd:"" help:"Download a model variant"`
	Update   ModelsUpdateCmd   `cmd:"" help:"Update a model variant to the latest release"`
}

type ModelsListCmd struct{}

func (c *ModelsListCmd) Run(app *App) error {
	cfg := app.Config.Config
	entries, err := app.Pipeline().Inventory()
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}

	ui.Info("%s %s", ui.Key("Models"), ui.Dim(fmt.Sprintf("(%s backend, %s)", cfg.Backend, app.Config.ModelsDir())))
	for _, e := range entries {
		marker := " "
		if e.Name == cfg.ModelVariant {
			marker = "*"
		}

		state := ui.Dim("not installed")
		if e.Installed {
			state = ui.Val("installed " + humanize.Bytes(e.Size))
		}
		repo := string(e.Repository)
		if !e.Known {
			repo = "unknown variant"
		}
		ui.Info(" %s %-12s %s  %s", marker, ui.Key(e.Name), state, ui.Dim(repo))
	}
	ui.Info("\n%s", ui.Dim("  * default variant (qwen-tts config set model_variant <name>)"))
	return nil
}

type ModelsDownloadCmd struct {
	Variant string `short:"m" help:"Model variant (default from config)"`
}

func (c *ModelsDownloadCmd) Run(app *App) error {
	variant := c.Variant
	if variant == "" {
		variant = app.Config.Config.ModelVariant
	}
	if err := app.Pipeline().Download(app.Ctx, variant); err != nil {
		return err
	}
	ui.Success("Model '%s' downloaded.", variant)
	return nil
}

type ModelsUpdateCmd struct {
	Variant string `short:"m" help:"Model variant (default from config)"`
}

func (c *ModelsUpdateCmd) Run(app *App) error {
	variant := c.Variant
	if variant == "" {
		variant = app.Config.Config.ModelVariant
	}
	if err := app.Pipeline().Update(app.Ctx, variant); err != nil {
		return err
	}
	ui.Success("Model '%s' is up to date.", variant)
	return nil
}
