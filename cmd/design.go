package cmd

import (
	"strings"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/generate"
)

type DesignCmd struct {
	Description string `arg:"" help:"Voice description, e.g. \"A deep calm British narrator\""`
	Text        string `short:"t" help:"Text to speak (opens an editor when omitted)"`
	File        string `short:"f" help:"Read text from a file"`
	OutputFlags `embed:""`
}

func (c *DesignCmd) Run(app *App) error {
	if strings.TrimSpace(c.Description) == "" {
		return apperr.Usage("voice description must not be empty")
	}
	text, err := generate.ResolveText(generate.TextSource{
		Literal: c.Text,
		File:    c.File,
		Editor:  app.Editor,
		Title:   "qwen-tts design",
	})
	if err != nil {
		return err
	}
	speed, err := app.speed(c.Speed)
	if err != nil {
		return err
	}

	app.Notify.Status("Designing", "voice from description...")
	_, err = app.Generator(c.NoPlay).Generate(app.Ctx, generate.Request{
		Mode:        generate.Design,
		Text:        text,
		Instruction: c.Description,
		Speed:       speed,
		Output:      c.Output,
	})
	return err
}
