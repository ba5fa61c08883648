package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/logging"
	"github.com/ontypehq/qwen-tts/internal/platform"
	"github.com/ontypehq/qwen-tts/internal/proc"
	"github.com/ontypehq/qwen-tts/internal/ui"
)

// Pipeline makes model variants present on disk.
type Pipeline struct {
	Backend   platform.Backend
	ModelsDir string
	// Strategies are tried in order; only the last failure is fatal.
	Strategies []Strategy
	Runner     proc.Runner
	Notify     ui.Notifier
	// Confirm, when set, is asked before a missing model is downloaded on
	// demand. Nil downloads without asking.
	Confirm func(question string, defaultYes bool) bool

	stat      func(string) (os.FileInfo, error)
	readDir   func(string) ([]os.DirEntry, error)
	mkdirAll  func(string, os.FileMode) error
	removeAll func(string) error
}

// NewPipeline wires the hub-then-git strategy chain.
func NewPipeline(backend platform.Backend, modelsDir, python string, runner proc.Runner, notify ui.Notifier) *Pipeline {
	return &Pipeline{
		Backend:   backend,
		ModelsDir: modelsDir,
		Strategies: []Strategy{
			&HubStrategy{Python: python, Runner: runner, Notify: notify},
			&GitStrategy{Runner: runner, Notify: notify},
		},
		Runner:    runner,
		Notify:    notify,
		stat:      os.Stat,
		readDir:   os.ReadDir,
		mkdirAll:  os.MkdirAll,
		removeAll: os.RemoveAll,
	}
}

// Path returns where v is installed.
func (p *Pipeline) Path(v Variant) string {
	return LocalPathFor(p.ModelsDir, v)
}

// Installed reports whether v's directory exists and has at least one entry.
func (p *Pipeline) Installed(v Variant) bool {
	entries, err := p.readDir(p.Path(v))
	return err == nil && len(entries) > 0
}

// EnsureInstalled returns the installation path of variant, downloading it
// first when it is missing. An installed variant is never re-downloaded.
func (p *Pipeline) EnsureInstalled(ctx context.Context, variant string) (string, error) {
	v, err := p.parse(variant)
	if err != nil {
		return "", err
	}
	dest := p.Path(v)
	if p.Installed(v) {
		return dest, nil
	}

	if p.Confirm != nil {
		question := fmt.Sprintf("Model '%s' (%s) is not installed. Download it now?", v, Repository(p.Backend, v))
		if !p.Confirm(question, true) {
			return "", apperr.Usage("model '%s' is not installed; run `qwen-tts models download --variant %s`", v, v)
		}
	} else {
		p.Notify.Status("Model", "not found locally, downloading...")
	}

	if err := p.download(ctx, v); err != nil {
		return "", err
	}
	return dest, nil
}

// Download fetches variant into its installation directory.
func (p *Pipeline) Download(ctx context.Context, variant string) error {
	v, err := p.parse(variant)
	if err != nil {
		return err
	}
	return p.download(ctx, v)
}

func (p *Pipeline) download(ctx context.Context, v Variant) error {
	repo := Repository(p.Backend, v)
	p.Notify.Status("Downloading", fmt.Sprintf("%s (%s backend)...", repo, p.Backend))

	if err := p.mkdirAll(p.ModelsDir, 0o755); err != nil {
		return fmt.Errorf("create models directory: %w", err)
	}
	return p.fetch(ctx, repo, p.Path(v))
}

// fetch walks the strategy chain. Unavailable strategies are skipped
// silently; failures before the last one are downgraded to warnings.
func (p *Pipeline) fetch(ctx context.Context, repo RepositoryID, dest string) error {
	var lastErr error
	for i, s := range p.Strategies {
		err := s.Fetch(ctx, repo, dest)
		if err == nil {
			return nil
		}
		lastErr = err

		last := i == len(p.Strategies)-1
		if errors.Is(err, ErrUnavailable) {
			logging.Debug("strategy skipped", "strategy", s.Name(), "reason", err)
			continue
		}
		if !last {
			p.Notify.Warn("%s download failed, trying %s...", s.Name(), p.Strategies[i+1].Name())
			logging.Debug("strategy failed", "strategy", s.Name(), "err", err)
		}
	}
	if lastErr == nil {
		return fmt.Errorf("no download strategy configured for %s", repo)
	}
	return lastErr
}

// Update brings an installed variant to the latest revision. A git checkout
// is fast-forwarded in place; anything else is deleted and re-downloaded.
func (p *Pipeline) Update(ctx context.Context, variant string) error {
	v, err := p.parse(variant)
	if err != nil {
		return err
	}
	dest := p.Path(v)
	repo := Repository(p.Backend, v)

	if _, err := p.stat(dest); errors.Is(err, os.ErrNotExist) {
		p.Notify.Status("Downloading", fmt.Sprintf("%s (not installed yet)...", repo))
		return p.download(ctx, v)
	}

	p.Notify.Status("Updating", fmt.Sprintf("%s to latest version...", repo))
	if p.isGitCheckout(dest) {
		err := p.Runner.Run(ctx, "git", "-C", dest, "pull", "--ff-only")
		if err == nil {
			return nil
		}
		p.Notify.Warn("git pull failed, re-downloading...")
		logging.Debug("pull failed", "dest", dest, "err", err)
	}

	if err := p.removeAll(dest); err != nil {
		return fmt.Errorf("remove %s: %w", dest, err)
	}
	if err := p.download(ctx, v); err != nil {
		// Leave nothing that would pass the installed check.
		if rmErr := p.removeAll(dest); rmErr != nil {
			logging.Warn("could not clean up failed update", "dest", dest, "err", rmErr)
		}
		return err
	}
	return nil
}

// AutoInstall is the first-run offer to fetch the default variant. It never
// fails; problems are reported as warnings.
func (p *Pipeline) AutoInstall(ctx context.Context, variant string, confirm func(string, bool) bool) {
	v, err := ParseVariant(variant)
	if err != nil || p.Installed(v) {
		return
	}

	p.Notify.Info("No TTS model installed. The '%s' model (%s) is required to generate speech.", v, Repository(p.Backend, v))
	if !confirm("Download it now?", true) {
		p.Notify.Info("Skipped. Run `qwen-tts models download` later to install.")
		return
	}

	if err := p.download(ctx, v); err != nil {
		p.Notify.Warn("Auto-download failed: %v", err)
		p.Notify.Info("Run `qwen-tts models download` to try again.")
		return
	}
	p.Notify.Status("Ready", fmt.Sprintf("model '%s'", v))
}

func (p *Pipeline) isGitCheckout(dest string) bool {
	_, err := p.stat(filepath.Join(dest, ".git"))
	return err == nil
}

func (p *Pipeline) parse(variant string) (Variant, error) {
	v, err := ParseVariant(variant)
	if err != nil {
		return 0, err
	}
	if v.IsAlias() {
		p.Notify.Warn("%s", DeprecationNotice(v))
	}
	return v, nil
}
