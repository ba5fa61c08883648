package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/audio"
	"github.com/ontypehq/qwen-tts/internal/config"
	"github.com/ontypehq/qwen-tts/internal/proc"
	"github.com/ontypehq/qwen-tts/internal/ui"
	"github.com/ontypehq/qwen-tts/internal/voices"
)

type VoicesCmd struct {
	List   VoicesListCmd   `cmd:"" default:"1" help:"List preset speakers and saved voices"`
	Add    VoicesAddCmd    `cmd:"" help:"Save a reference voice from an audio file"`
	Record VoicesRecordCmd `cmd:"" help:"Record a reference voice from the microphone"`
	Remove VoicesRemoveCmd `cmd:"" help:"Remove a saved voice"`
}

// --- voices list ---

type VoicesListCmd struct{}

const transcriptPreview = 60

func (c *VoicesListCmd) Run(app *App) error {
	ui.Info("%s", ui.Key("Preset Speakers"))
	ui.Info("%s", ui.Dim("  (use with: qwen-tts speak --voice <name> \"text\")"))
	for _, p := range voices.Presets {
		ui.Info("  %-10s %s  %s", ui.Key(p.Name), ui.Dim(p.Gender), ui.Dim(p.Language))
	}

	saved, err := app.Voices().List()
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		ui.Info("\n%s", ui.Dim("  No saved voices. Use: qwen-tts voices add <name> --ref <file>"))
		return nil
	}

	ui.Info("\n%s", ui.Key("Saved Voices"))
	ui.Info("%s", ui.Dim("  (use with: qwen-tts clone --voice <name> \"text\")"))
	for _, v := range saved {
		transcript := ui.Dim("(no transcript)")
		if v.HasTranscript {
			transcript = ui.Dim(preview(v.Transcript, transcriptPreview))
		}
		ui.Info("  %-10s %s", ui.Key(v.Name), transcript)
	}
	return nil
}

// preview cuts s to n runes on one line.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// --- voices add ---

type VoicesAddCmd struct {
	Name       string `arg:"" help:"Name for the voice"`
	Ref        string `short:"r" required:"" help:"Reference audio file (non-wav is converted with ffmpeg)"`
	Transcript string `short:"t" help:"Transcript of the reference audio"`
}

func (c *VoicesAddCmd) Run(app *App) error {
	if err := voices.ValidateName(c.Name); err != nil {
		return err
	}
	src := config.ExpandPath(c.Ref)
	if _, err := os.Stat(src); err != nil {
		return apperr.Missing("reference audio not found: %s", c.Ref)
	}

	store := app.Voices()
	wav := src
	if !audio.IsWAV(src) {
		converted, cleanup, err := convertReference(app.Ctx, app.Runner, src)
		if err != nil {
			return err
		}
		defer cleanup()
		wav = converted
	}

	v, err := store.Add(c.Name, wav, c.Transcript)
	if err != nil {
		return err
	}

	ui.Success("Saved voice '%s'", v.Name)
	ui.KV("Audio", v.AudioPath)
	if v.HasTranscript {
		ui.KV("Transcript", v.TranscriptPath)
	} else {
		ui.Info("%s", ui.Dim("  No transcript saved; pass --ref-text when cloning for better results."))
	}
	ui.Info("\n  Use it: %s", ui.Key(fmt.Sprintf("qwen-tts clone --voice %s \"Hello!\"", v.Name)))
	return nil
}

// convertReference transcodes src into a temporary wav.
func convertReference(ctx context.Context, runner proc.Runner, src string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "qwen-tts-ref-*")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	dst := filepath.Join(dir, "reference.wav")
	ui.Status("Converting", fmt.Sprintf("%s to wav...", filepath.Base(src)))
	if err := audio.ConvertToWAV(ctx, runner, src, dst); err != nil {
		cleanup()
		return "", nil, err
	}
	return dst, cleanup, nil
}

// --- voices record ---

var sampleTexts = map[string]string{
	"zh": "今天天气真不错，适合出去走走。技术正在以前所未有的速度发展，改变着我们的生活方式。",
	"en": "The quick brown fox jumps over the lazy dog. Technology is evolving faster than ever before, reshaping how we live and work.",
	"ja": "今日はとても良い天気ですね。テクノロジーはかつてないスピードで進化しています。私たちの生活を大きく変えています。",
	"ko": "오늘 날씨가 정말 좋네요, 산책하기 딱 좋아요. 기술은 전례 없는 속도로 발전하며 우리의 생활 방식을 바꾸고 있습니다.",
	"de": "Das Wetter ist heute wirklich schön, perfekt für einen Spaziergang. Die Technologie entwickelt sich schneller als je zuvor und verändert unsere Lebensweise.",
	"fr": "Le temps est vraiment magnifique aujourd'hui, parfait pour une promenade. La technologie évolue plus vite que jamais et transforme notre façon de vivre.",
	"es": "El tiempo está muy bonito hoy, perfecto para dar un paseo. La tecnología avanza más rápido que nunca y está cambiando nuestra forma de vivir.",
	"pt": "O tempo está muito bom hoje, perfeito para um passeio. A tecnologia está avançando mais rápido do que nunca e mudando a nossa forma de viver.",
	"it": "Il tempo è davvero bello oggi, perfetto per una passeggiata. La tecnologia si evolve più velocemente che mai e sta cambiando il nostro modo di vivere.",
	"ru": "Сегодня прекрасная погода, отлично подходит для прогулки. Технологии развиваются быстрее, чем когда-либо, меняя наш образ жизни.",
}

type VoicesRecordCmd struct {
	Name     string `arg:"" help:"Name for the voice"`
	Lang     string `short:"l" help:"Language of the sample sentence (zh, en, ja, ko, ...). Auto-detected if omitted."`
	Duration int    `short:"d" default:"15" help:"Recording duration in seconds (10-20s recommended)"`
}

func (c *VoicesRecordCmd) Run(app *App) error {
	if err := voices.ValidateName(c.Name); err != nil {
		return err
	}
	if c.Duration <= 0 {
		return apperr.Usage("duration must be positive, got %d", c.Duration)
	}

	lang := c.Lang
	if lang == "" {
		lang = detectSystemLang(app.Ctx, app.Runner, os.Getenv)
		ui.Info("%s %s", ui.Dim("language"), ui.Key(lang))
	}
	sample, ok := sampleTexts[lang]
	if !ok {
		ui.Warn("no sample sentence for '%s', using English", lang)
		sample = sampleTexts["en"]
	}

	ui.Info("\n%s", ui.Key("Read this aloud:"))
	ui.Info("  %s\n", sample)
	ui.Info("Recording for %ds... %s", c.Duration, ui.Dim("(speak now)"))

	pcm, err := audio.Record(app.Ctx, time.Duration(c.Duration)*time.Second)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	if len(pcm) == 0 {
		return apperr.Missing("no audio captured from the microphone")
	}

	v, err := app.Voices().Write(c.Name, audio.WrapPCMAsWAV(pcm), sample)
	if err != nil {
		return err
	}
	ui.Success("Recorded voice '%s'", v.Name)
	ui.KV("Audio", v.AudioPath)
	ui.Info("\n  Use it: %s", ui.Key(fmt.Sprintf("qwen-tts clone --voice %s \"Hello!\"", v.Name)))
	return nil
}

// localeToLang maps locale prefixes to sample languages
var localeToLang = map[string]string{
	"zh": "zh", "en": "en", "ja": "ja", "ko": "ko",
	"de": "de", "fr": "fr", "es": "es", "pt": "pt",
	"it": "it", "ru": "ru",
}

// detectSystemLang reads the POSIX locale variables, then the macOS
// AppleLocale default, falling back to en.
func detectSystemLang(ctx context.Context, runner proc.Runner, getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if lang, ok := langFromLocale(getenv(key)); ok {
			return lang
		}
	}
	// defaults read -g AppleLocale → "zh_CN", "en_US", ...
	if out, err := runner.Output(ctx, "defaults", "read", "-g", "AppleLocale"); err == nil {
		if lang, ok := langFromLocale(string(out)); ok {
			return lang
		}
	}
	return "en"
}

func langFromLocale(locale string) (string, bool) {
	locale = strings.TrimSpace(locale)
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "", false
	}
	// "zh_CN.UTF-8" → "zh"
	parts := strings.FieldsFunc(locale, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	if len(parts) == 0 {
		return "", false
	}
	lang, ok := localeToLang[strings.ToLower(parts[0])]
	return lang, ok
}

// --- voices remove ---

type VoicesRemoveCmd struct {
	Name string `arg:"" help:"Name of the voice to remove"`
}

func (c *VoicesRemoveCmd) Run(app *App) error {
	if voices.IsPreset(c.Name) {
		if _, err := app.Voices().Lookup(c.Name); err != nil {
			return apperr.Usage("cannot remove preset speaker: %s", c.Name)
		}
	}
	if err := app.Voices().Remove(c.Name); err != nil {
		return err
	}
	ui.Success("Removed voice: %s", c.Name)
	return nil
}
