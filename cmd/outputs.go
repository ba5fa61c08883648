package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/ontypehq/qwen-tts/internal/models"
	"github.com/ontypehq/qwen-tts/internal/ui"
)

type OutputsCmd struct {
	Status OutputsStatusCmd `cmd:"" default:"withargs" help:"Show generated audio size and count"`
	Clear  OutputsClearCmd  `cmd:"" help:"Delete all generated audio"`
}

type OutputsStatusCmd struct{}

func (c *OutputsStatusCmd) Run(app *App) error {
	dir := app.Config.OutputDir()
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		ui.Info("%s %s", ui.Dim("outputs"), ui.Dim("empty"))
		return nil
	}

	ui.KV("Path", dir)
	ui.KV("Entries", fmt.Sprintf("%d", len(entries)))
	ui.KV("Size", humanize.Bytes(models.DirSize(dir)))
	return nil
}

type OutputsClearCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation"`
}

func (c *OutputsClearCmd) Run(app *App) error {
	dir := app.Config.OutputDir()
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		ui.Info("%s", ui.Dim("outputs already empty"))
		return nil
	}

	if !c.Yes && !app.Confirm(fmt.Sprintf("Delete %d entries in %s?", len(entries), dir), false) {
		return nil
	}

	var count int
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err == nil {
			count++
		}
	}

	ui.Success("Cleared %d outputs", count)
	return nil
}
