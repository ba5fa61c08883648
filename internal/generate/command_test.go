package generate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ontypehq/qwen-tts/internal/platform"
)

func TestSpeakInstruction(t *testing.T) {
	assert.Equal(t, "Speak as Vivian.", SpeakInstruction("Vivian", ""))
	assert.Equal(t, "Speak as Ryan with Excited emotion.", SpeakInstruction("Ryan", "Excited"))
}

func TestBuildMLX(t *testing.T) {
	e := Engine{Backend: platform.MLX, Python: "/venv/bin/python", BaseDir: "/base"}
	cmd := e.Build(Params{
		Mode:        Speak,
		ModelPath:   "/models/base",
		Text:        "Hello world",
		Instruction: "Speak as Vivian.",
		Speed:       1,
		OutputPath:  "/out/tts_1",
		Voice:       "Vivian",
	})

	assert.Equal(t, "/venv/bin/python", cmd.Name)
	assert.Equal(t, []string{
		"-m", "mlx_audio.tts.generate",
		"--model", "/models/base",
		"--text", "Hello world",
		"--instruct", "Speak as Vivian.",
		"--speed", "1",
		"--output_path", "/out/tts_1",
		"--voice", "Vivian",
		"--join_audio",
	}, cmd.Args)
}

func TestBuildCompatBackends(t *testing.T) {
	for _, b := range []platform.Backend{platform.CUDA, platform.CPU} {
		t.Run(b.String(), func(t *testing.T) {
			e := Engine{Backend: b, Python: "python", BaseDir: "/base"}
			cmd := e.Build(Params{Mode: Design, Text: "t", Instruction: "a calm narrator", Speed: 1.25, OutputPath: "o"})

			assert.Equal(t, filepath.Join("/base", CompatScript), cmd.Args[0])
			assert.Contains(t, cmd.Args, "--join_audio")
			assert.Contains(t, cmd.Args, "1.25")
			assert.NotContains(t, cmd.Args, "--voice", "design never names a voice")
		})
	}
}

func TestBuildClone(t *testing.T) {
	e := Engine{Backend: platform.MLX, Python: "python"}

	cmd := e.Build(Params{
		Mode:        Clone,
		Instruction: CloneInstruction,
		Speed:       0.9,
		Voice:       "ignored",
		RefAudio:    "/voices/Alice.wav",
		RefText:     "Hi there",
	})
	assert.NotContains(t, cmd.Args, "--voice")
	assert.Equal(t, []string{"--join_audio", "--ref_audio", "/voices/Alice.wav", "--ref_text", "Hi there"}, cmd.Args[len(cmd.Args)-5:])

	cmd = e.Build(Params{Mode: Clone, Instruction: CloneInstruction, Speed: 1, RefAudio: "/ref.wav"})
	assert.NotContains(t, cmd.Args, "--ref_text")
	assert.Equal(t, "--join_audio", cmd.Args[len(cmd.Args)-3])
}
