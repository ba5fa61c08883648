// Package voices manages saved reference voices: {name}.wav with an optional
// {name}.txt transcript, side by side in one directory.
package voices

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ontypehq/qwen-tts/internal/apperr"
)

const (
	audioExt      = ".wav"
	transcriptExt = ".txt"
)

// Voice is one saved reference voice.
type Voice struct {
	Name           string
	AudioPath      string
	TranscriptPath string
	// Transcript is empty when no .txt exists.
	Transcript    string
	HasTranscript bool
}

// Store is a voices directory.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// AudioPath is where name's reference audio lives.
func (s *Store) AudioPath(name string) string {
	return filepath.Join(s.Dir, name+audioExt)
}

// TranscriptPath is where name's transcript lives.
func (s *Store) TranscriptPath(name string) string {
	return filepath.Join(s.Dir, name+transcriptExt)
}

// ValidateName rejects names that would escape the voices directory.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Usage("voice name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return apperr.Usage("invalid voice name %q: must not contain path separators", name)
	}
	return nil
}

// Lookup loads a saved voice. The .wav must exist; the .txt is optional.
func (s *Store) Lookup(name string) (Voice, error) {
	if err := ValidateName(name); err != nil {
		return Voice{}, err
	}
	v := Voice{Name: name, AudioPath: s.AudioPath(name), TranscriptPath: s.TranscriptPath(name)}

	if _, err := os.Stat(v.AudioPath); err != nil {
		return Voice{}, apperr.Missing("voice '%s' not found (no %s%s in %s)", name, name, audioExt, s.Dir)
	}

	data, err := os.ReadFile(v.TranscriptPath)
	switch {
	case err == nil:
		v.Transcript = strings.TrimSpace(string(data))
		v.HasTranscript = true
	case !errors.Is(err, os.ErrNotExist):
		return Voice{}, fmt.Errorf("read voice transcript: %w", err)
	}
	return v, nil
}

// List returns saved voices sorted by name. A missing directory is empty.
func (s *Store) List() ([]Voice, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read voices directory: %w", err)
	}

	var out []Voice
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != audioExt {
			continue
		}
		v, err := s.Lookup(strings.TrimSuffix(e.Name(), audioExt))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Add copies a .wav file into the store under name and writes the transcript
// when one is given. Non-wav sources must be converted by the caller.
func (s *Store) Add(name, wavSrc, transcript string) (Voice, error) {
	if err := ValidateName(name); err != nil {
		return Voice{}, err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Voice{}, fmt.Errorf("create voices directory: %w", err)
	}
	if _, err := os.Stat(wavSrc); err != nil {
		return Voice{}, apperr.Missing("reference audio not found: %s", wavSrc)
	}

	dest := s.AudioPath(name)
	if err := copyFile(wavSrc, dest); err != nil {
		return Voice{}, fmt.Errorf("copy %s → %s: %w", wavSrc, dest, err)
	}
	if err := s.SetTranscript(name, transcript); err != nil {
		return Voice{}, err
	}
	return s.Lookup(name)
}

// Write stores already-encoded wav data under name.
func (s *Store) Write(name string, wav []byte, transcript string) (Voice, error) {
	if err := ValidateName(name); err != nil {
		return Voice{}, err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Voice{}, fmt.Errorf("create voices directory: %w", err)
	}
	if err := os.WriteFile(s.AudioPath(name), wav, 0o644); err != nil {
		return Voice{}, fmt.Errorf("write %s: %w", s.AudioPath(name), err)
	}
	if err := s.SetTranscript(name, transcript); err != nil {
		return Voice{}, err
	}
	return s.Lookup(name)
}

// SetTranscript writes name's transcript. Empty text leaves any existing one.
func (s *Store) SetTranscript(name, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if err := os.WriteFile(s.TranscriptPath(name), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Remove deletes both files of a saved voice.
func (s *Store) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	wav := s.AudioPath(name)
	if _, err := os.Stat(wav); err != nil {
		return apperr.Missing("voice '%s' not found", name)
	}
	if err := os.Remove(wav); err != nil {
		return fmt.Errorf("remove %s: %w", wav, err)
	}
	if err := os.Remove(s.TranscriptPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove transcript: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
