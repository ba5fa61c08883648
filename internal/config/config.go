package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/models"
	"github.com/ontypehq/qwen-tts/internal/platform"
)

const (
	appDir     = ".qwen-tts"
	configDir  = "qwen-tts"
	configFile = "config.toml"

	// DefaultVoice is a preset speaker of the custom-voice model.
	DefaultVoice = "Vivian"
)

// Config is the persisted configuration.
type Config struct {
	PythonPath   string           `toml:"python_path"`
	ModelsDir    string           `toml:"models_dir"`
	VoicesDir    string           `toml:"voices_dir"`
	OutputDir    string           `toml:"output_dir"`
	Backend      platform.Backend `toml:"backend"`
	DefaultVoice string           `toml:"default_voice"`
	DefaultSpeed float64          `toml:"default_speed"`
	AutoPlay     bool             `toml:"auto_play"`
	ModelVariant string           `toml:"model_variant"`
}

// AppConfig is the loaded configuration plus where it came from.
type AppConfig struct {
	Config Config
	// Path is the config file location.
	Path string
	// BaseDir holds the venv, compat script and default data directories.
	BaseDir string
}

// BaseDir returns ~/.qwen-tts.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, appDir)
}

// DefaultPath returns the platform config location, e.g.
// ~/.config/qwen-tts/config.toml on Linux.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = BaseDir()
	}
	return filepath.Join(dir, configDir, configFile)
}

// Defaults builds a fresh configuration rooted at base.
func Defaults(base, goos string, backend platform.Backend) Config {
	python := filepath.Join(base, "venv", "bin", "python")
	if goos == "windows" {
		python = filepath.Join(base, "venv", "Scripts", "python.exe")
	}
	return Config{
		PythonPath:   python,
		ModelsDir:    filepath.Join(base, "models"),
		VoicesDir:    filepath.Join(base, "voices"),
		OutputDir:    filepath.Join(base, "outputs"),
		Backend:      backend,
		DefaultVoice: DefaultVoice,
		DefaultSpeed: 1.0,
		AutoPlay:     true,
		ModelVariant: models.DefaultVariant,
	}
}

// Load reads the config at path. When the file does not exist it is created
// with the backend from detect and created is true. An existing file only
// triggers detect when it has no backend key, and the result is saved.
func Load(path, base, goos string, detect func() platform.Backend) (ac *AppConfig, created bool, err error) {
	ac = &AppConfig{Path: path, BaseDir: base}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		ac.Config = Defaults(base, goos, detect())
		if err := ac.EnsureDirs(); err != nil {
			return nil, false, err
		}
		if err := ac.Save(); err != nil {
			return nil, false, err
		}
		return ac, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	// Start from defaults so keys missing from older files still get values.
	ac.Config = Defaults(base, goos, platform.CPU)
	md, err := toml.Decode(string(data), &ac.Config)
	if err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", path, err)
	}
	if !md.IsDefined("backend") {
		ac.Config.Backend = detect()
		if err := ac.Save(); err != nil {
			return nil, false, err
		}
	}
	return ac, false, nil
}

// EnsureDirs creates the models, voices and output directories.
func (ac *AppConfig) EnsureDirs() error {
	for _, dir := range []string{ac.Config.ModelsDir, ac.Config.VoicesDir, ac.Config.OutputDir} {
		if err := os.MkdirAll(ExpandPath(dir), 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Save writes the config file, creating its parent directory.
func (ac *AppConfig) Save() error {
	if err := os.MkdirAll(filepath.Dir(ac.Path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(ac.Path), err)
	}
	text, err := Encode(ac.Config)
	if err != nil {
		return err
	}
	if err := os.WriteFile(ac.Path, text, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", ac.Path, err)
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"python_path", "models_dir", "voices_dir", "output_dir", "backend",
	"default_voice", "default_speed", "auto_play", "model_variant",
}

// Set assigns one key from its string form. It returns a warning for
// accepted-but-deprecated values.
func (c *Config) Set(key, value string) (warning string, err error) {
	switch key {
	case "python_path":
		c.PythonPath = value
	case "models_dir":
		c.ModelsDir = value
	case "voices_dir":
		c.VoicesDir = value
	case "output_dir":
		c.OutputDir = value
	case "backend":
		b, err := platform.ParseBackend(value)
		if err != nil {
			return "", apperr.Usage("%v", err)
		}
		c.Backend = b
	case "default_voice":
		if strings.TrimSpace(value) == "" {
			return "", apperr.Usage("default_voice must not be empty")
		}
		c.DefaultVoice = value
	case "default_speed":
		speed, err := strconv.ParseFloat(value, 64)
		if err != nil || speed <= 0 {
			return "", apperr.Usage("invalid speed: %s (expected a positive number)", value)
		}
		c.DefaultSpeed = speed
	case "auto_play":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", apperr.Usage("invalid bool: %s", value)
		}
		c.AutoPlay = b
	case "model_variant":
		v, err := models.ParseVariant(value)
		if err != nil {
			return "", err
		}
		if v.IsAlias() {
			warning = models.DeprecationNotice(v)
		}
		c.ModelVariant = v.String()
	default:
		return "", apperr.Usage("unknown config key: %s (expected one of: %s)", key, strings.Join(Keys, ", "))
	}
	return warning, nil
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(p string) string {
	if p == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[2:])
	}
	return p
}

// ModelsDir returns the expanded models directory.
func (ac *AppConfig) ModelsDir() string { return ExpandPath(ac.Config.ModelsDir) }

// VoicesDir returns the expanded voices directory.
func (ac *AppConfig) VoicesDir() string { return ExpandPath(ac.Config.VoicesDir) }

// OutputDir returns the expanded output directory.
func (ac *AppConfig) OutputDir() string { return ExpandPath(ac.Config.OutputDir) }

// PythonPath returns the expanded interpreter path.
func (ac *AppConfig) PythonPath() string { return ExpandPath(ac.Config.PythonPath) }
