package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ontypehq/qwen-tts/cmd"
	"github.com/ontypehq/qwen-tts/internal/editor"
	"github.com/ontypehq/qwen-tts/internal/logging"
	"github.com/ontypehq/qwen-tts/internal/proc"
	"github.com/ontypehq/qwen-tts/internal/ui"
)

var cli struct {
	ConfigFile string `name:"config" env:"QWEN_TTS_CONFIG" placeholder:"PATH" help:"Config file (default: user config dir)"`
	Verbose    bool   `short:"V" help:"Log spawned commands and decisions"`

	Speak   cmd.SpeakCmd   `cmd:"" help:"Speak text with a preset speaker"`
	Design  cmd.DesignCmd  `cmd:"" help:"Speak text with a voice designed from a description"`
	Clone   cmd.CloneCmd   `cmd:"" help:"Speak text in a voice cloned from reference audio"`
	Voices  cmd.VoicesCmd  `cmd:"" help:"Manage saved reference voices"`
	Models  cmd.ModelsCmd  `cmd:"" help:"Manage TTS models"`
	Config  cmd.ConfigCmd  `cmd:"" help:"View and modify configuration"`
	Outputs cmd.OutputsCmd `cmd:"" help:"Manage generated audio"`
	Doctor  cmd.DoctorCmd  `cmd:"" help:"Check that this machine can generate speech"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("qwen-tts"),
		kong.Description("Local Qwen3-TTS from the command line"),
		kong.UsageOnError(),
	)
	logging.SetVerbose(cli.Verbose)

	app, err := cmd.NewApp(context.Background(), cli.ConfigFile, proc.NewExecRunner(), editor.Run)
	if err != nil {
		ui.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	if err := ctx.Run(app); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}
