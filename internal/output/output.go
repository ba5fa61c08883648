// Package output decides where generated audio goes and finds what the
// engine actually wrote there.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ontypehq/qwen-tts/internal/config"
)

// JoinedName is the file the engine writes when chunks are joined.
const JoinedName = "audio.wav"

// ResolvePath returns the tilde-expanded explicit path when one is given,
// otherwise outputDir/tts_{unix seconds}.
func ResolvePath(explicit, outputDir string, now time.Time) string {
	if explicit != "" {
		return config.ExpandPath(explicit)
	}
	return filepath.Join(outputDir, fmt.Sprintf("tts_%d", now.Unix()))
}

// Playable returns the files that make up the audio at path, in play order.
// A directory yields audio.wav alone when the engine joined its chunks,
// otherwise every .wav in name order. An existing file is returned as is.
func Playable(path string) []string {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if !info.IsDir() {
		return []string{path}
	}

	joined := filepath.Join(path, JoinedName)
	if fi, err := os.Stat(joined); err == nil && !fi.IsDir() {
		return []string{joined}
	}
	return WAVFiles(path)
}

// Locate normalizes what the engine produced at path to one file: audio.wav,
// else the first chunk, else path itself when it is a file. ok is false when
// nothing usable exists.
func Locate(path string) (string, bool) {
	files := Playable(path)
	if len(files) == 0 {
		return "", false
	}
	return files[0], true
}

// WAVFiles lists the .wav files directly inside dir in lexicographic order.
func WAVFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out
}
