package cmd

import (
	"fmt"

	"github.com/ontypehq/qwen-tts/internal/generate"
	"github.com/ontypehq/qwen-tts/internal/ui"
	"github.com/ontypehq/qwen-tts/internal/voices"
)

type SpeakCmd struct {
	Text    string `arg:"" optional:"" help:"Text to speak (opens an editor when omitted)"`
	File    string `short:"f" help:"Read text from a file"`
	Voice   string `short:"v" help:"Preset speaker (default from config)"`
	Emotion string `short:"e" help:"Emotion or style, e.g. Excited, Calm"`
	OutputFlags `embed:""`
}

func (c *SpeakCmd) Run(app *App) error {
	text, err := generate.ResolveText(generate.TextSource{
		Literal: c.Text,
		File:    c.File,
		Editor:  app.Editor,
		Title:   "qwen-tts speak",
	})
	if err != nil {
		return err
	}
	speed, err := app.speed(c.Speed)
	if err != nil {
		return err
	}

	voice := c.Voice
	if voice == "" {
		voice = app.Config.Config.DefaultVoice
	}
	if !voices.IsPreset(voice) {
		ui.Warn("'%s' is not a preset speaker; saved voices are used with `qwen-tts clone --voice`", voice)
	}

	app.Notify.Status("Generating", fmt.Sprintf("speech with %s voice...", voice))
	_, err = app.Generator(c.NoPlay).Generate(app.Ctx, generate.Request{
		Mode:        generate.Speak,
		Text:        text,
		Instruction: generate.SpeakInstruction(voice, c.Emotion),
		Speed:       speed,
		Output:      c.Output,
		Voice:       voice,
	})
	return err
}
