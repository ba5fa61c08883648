package generate

import (
	"os"
	"strings"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/config"
	"github.com/ontypehq/qwen-tts/internal/voices"
)

// Reference is the audio (and optional transcript) a clone copies from.
type Reference struct {
	Audio      string
	Transcript string
}

// ResolveReference picks the clone reference. Exactly one of savedVoice and
// refPath must be set. A saved voice's transcript is used unless refText
// overrides it.
func ResolveReference(store *voices.Store, savedVoice, refPath, refText string) (Reference, error) {
	switch {
	case savedVoice != "" && refPath != "":
		return Reference{}, apperr.Usage("provide either --ref <audio_file> or --voice <saved_voice>, not both")
	case savedVoice == "" && refPath == "":
		return Reference{}, apperr.Usage("provide either --ref <audio_file> or --voice <saved_voice>")
	}

	if savedVoice != "" {
		v, err := store.Lookup(savedVoice)
		if err != nil {
			return Reference{}, err
		}
		ref := Reference{Audio: v.AudioPath, Transcript: v.Transcript}
		if refText != "" {
			ref.Transcript = refText
		}
		return ref, nil
	}

	path := config.ExpandPath(refPath)
	if _, err := os.Stat(path); err != nil {
		return Reference{}, apperr.Missing("reference audio not found: %s", refPath)
	}
	return Reference{Audio: path, Transcript: refText}, nil
}

// EditorFunc collects text interactively. ok is false when the user cancels.
type EditorFunc func(title string) (text string, ok bool, err error)

// TextSource is where the text to speak comes from: a literal, a file, or
// the interactive editor when neither is given.
type TextSource struct {
	Literal string
	File    string
	Editor  EditorFunc
	// Title is shown in the editor header.
	Title string
}

// ResolveText returns the text to synthesize.
func ResolveText(src TextSource) (string, error) {
	if src.Literal != "" && src.File != "" {
		return "", apperr.Usage("provide text or --file, not both")
	}

	if src.Literal != "" {
		return src.Literal, nil
	}

	if src.File != "" {
		data, err := os.ReadFile(config.ExpandPath(src.File))
		if err != nil {
			return "", apperr.Missing("failed to read text file %s: %v", src.File, err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", apperr.Usage("text file %s is empty", src.File)
		}
		return text, nil
	}

	if src.Editor == nil {
		return "", apperr.Usage("no text provided")
	}
	text, ok, err := src.Editor(src.Title)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return "", apperr.Usage("no text provided")
	}
	return text, nil
}
