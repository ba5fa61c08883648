package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/proc"
)

// IsWAV reports whether path has a .wav extension.
func IsWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

// ConvertToWAV transcodes src to 24kHz mono WAV at dst via ffmpeg.
func ConvertToWAV(ctx context.Context, runner proc.Runner, src, dst string) error {
	err := runner.Run(ctx, "ffmpeg",
		"-y",
		"-loglevel", "error",
		"-i", src,
		"-ac", strconv.Itoa(ChannelCount),
		"-ar", strconv.Itoa(SampleRate),
		dst,
	)
	if err != nil {
		return &apperr.ProcessError{Tool: "ffmpeg", Op: fmt.Sprintf("convert %s to wav", filepath.Base(src)), Err: err}
	}
	return nil
}
