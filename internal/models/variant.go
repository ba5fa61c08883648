package models

import (
	"path/filepath"
	"strings"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/platform"
)

// Variant is a named model configuration (capability, size, quantization).
type Variant int

const (
	Base Variant = iota
	Base4Bit
	Custom
	Custom4Bit
	Design
	Design4Bit

	// LegacyPro and LegacyLite are deprecated spellings kept for configs
	// written by older releases.
	LegacyPro
	LegacyLite

	variantCount
)

// DefaultVariant is the variant new configurations start with.
const DefaultVariant = "base"

var variantNames = [variantCount]string{
	Base:       "base",
	Base4Bit:   "base-4bit",
	Custom:     "custom",
	Custom4Bit: "custom-4bit",
	Design:     "design",
	Design4Bit: "design-4bit",
	LegacyPro:  "pro",
	LegacyLite: "lite",
}

// Canonical lists the supported, non-deprecated variants.
var Canonical = []Variant{Base, Base4Bit, Custom, Custom4Bit, Design, Design4Bit}

// All includes the legacy aliases.
var All = []Variant{Base, Base4Bit, Custom, Custom4Bit, Design, Design4Bit, LegacyPro, LegacyLite}

func (v Variant) String() string {
	if v < 0 || v >= variantCount {
		return "unknown"
	}
	return variantNames[v]
}

// IsAlias reports whether v is a deprecated spelling of another variant.
func (v Variant) IsAlias() bool { return v == LegacyPro || v == LegacyLite }

// Target resolves aliases to the variant they stand for.
func (v Variant) Target() Variant {
	switch v {
	case LegacyPro:
		return Base
	case LegacyLite:
		return Base4Bit
	}
	return v
}

// ParseVariant accepts any canonical name or legacy alias.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, v := range All {
		if variantNames[v] == name {
			return v, nil
		}
	}
	return 0, apperr.Usage("unknown variant: %s\nAvailable: %s", s, vocabulary())
}

func vocabulary() string {
	names := make([]string, len(Canonical))
	for i, v := range Canonical {
		names[i] = v.String()
	}
	return strings.Join(names, ", ")
}

// DeprecationNotice is the warning shown when an alias is used.
func DeprecationNotice(v Variant) string {
	return "variant '" + v.String() + "' is deprecated, use '" + v.Target().String() + "' instead"
}

// RepositoryID names a model repository on the Hugging Face hub.
type RepositoryID string

// URL is the web-hosted git mirror of the repository.
func (r RepositoryID) URL() string { return "https://huggingface.co/" + string(r) }

type backendClass int

const (
	appleClass backendClass = iota
	// portableClass covers CUDA and CPU: the PyTorch path loads the same
	// checkpoints regardless of device.
	portableClass
	classCount
)

func classOf(b platform.Backend) backendClass {
	if b.IsApple() {
		return appleClass
	}
	return portableClass
}

const portableBase RepositoryID = "Qwen/Qwen3-TTS-12Hz-0.6B-Base"

var repositories = [classCount][Design4Bit + 1]RepositoryID{
	appleClass: {
		Base:       "mlx-community/Qwen3-TTS-12Hz-0.6B-Base-bf16",
		Base4Bit:   "mlx-community/Qwen3-TTS-12Hz-0.6B-Base-4bit",
		Custom:     "mlx-community/Qwen3-TTS-12Hz-0.6B-CustomVoice-bf16",
		Custom4Bit: "mlx-community/Qwen3-TTS-12Hz-0.6B-CustomVoice-4bit",
		Design:     "mlx-community/Qwen3-TTS-12Hz-1.7B-VoiceDesign-bf16",
		Design4Bit: "mlx-community/Qwen3-TTS-12Hz-1.7B-VoiceDesign-4bit",
	},
	portableClass: {
		Base:       portableBase,
		Base4Bit:   portableBase,
		Custom:     portableBase,
		Custom4Bit: portableBase,
		Design:     portableBase,
		Design4Bit: portableBase,
	},
}

// Repository returns the repository for v on backend b. It is total over Variant.
func Repository(b platform.Backend, v Variant) RepositoryID {
	return repositories[classOf(b)][v.Target()]
}

// RepositoryFor maps a backend and variant name to its repository.
func RepositoryFor(b platform.Backend, variant string) (RepositoryID, error) {
	v, err := ParseVariant(variant)
	if err != nil {
		return "", err
	}
	return Repository(b, v), nil
}

// LocalPathFor joins the models directory and the variant name. It does not
// touch the filesystem.
func LocalPathFor(modelsDir string, v Variant) string {
	return filepath.Join(modelsDir, v.String())
}
