package cmd

import (
	"github.com/ontypehq/qwen-tts/internal/generate"
)

type CloneCmd struct {
	Ref     string `short:"r" help:"Reference audio file"`
	RefText string `help:"Transcript of the reference audio (overrides a saved transcript)"`
	Voice   string `short:"v" help:"Saved voice name"`
	Text    string `short:"t" help:"Text to speak (opens an editor when omitted)"`
	File    string `short:"f" help:"Read text from a file"`
	OutputFlags `embed:""`
}

func (c *CloneCmd) Run(app *App) error {
	// Reference problems surface before the editor opens.
	ref, err := generate.ResolveReference(app.Voices(), c.Voice, c.Ref, c.RefText)
	if err != nil {
		return err
	}
	text, err := generate.ResolveText(generate.TextSource{
		Literal: c.Text,
		File:    c.File,
		Editor:  app.Editor,
		Title:   "qwen-tts clone",
	})
	if err != nil {
		return err
	}
	speed, err := app.speed(c.Speed)
	if err != nil {
		return err
	}

	app.Notify.Status("Cloning", "voice from reference audio...")
	_, err = app.Generator(c.NoPlay).Generate(app.Ctx, generate.Request{
		Mode:        generate.Clone,
		Text:        text,
		Instruction: generate.CloneInstruction,
		Speed:       speed,
		Output:      c.Output,
		Reference:   ref,
	})
	return err
}
