package models

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ontypehq/qwen-tts/internal/apperr"
	"github.com/ontypehq/qwen-tts/internal/proc"
	"github.com/ontypehq/qwen-tts/internal/ui"
)

// ErrUnavailable is returned by a strategy whose tooling is not installed.
var ErrUnavailable = errors.New("strategy unavailable")

// Strategy is one way of fetching a full repository snapshot into dest.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, repo RepositoryID, dest string) error
}

// HubStrategy downloads through huggingface_hub in the configured interpreter.
type HubStrategy struct {
	Python string
	Runner proc.Runner
	Notify ui.Notifier
	stat   func(string) (os.FileInfo, error)
}

func (s *HubStrategy) Name() string { return "huggingface_hub" }

func (s *HubStrategy) Fetch(ctx context.Context, repo RepositoryID, dest string) error {
	stat := s.stat
	if stat == nil {
		stat = os.Stat
	}
	if _, err := stat(s.Python); err != nil {
		return fmt.Errorf("%w: no interpreter at %s", ErrUnavailable, s.Python)
	}

	s.Notify.Status("Downloading", fmt.Sprintf("%s via huggingface_hub...", repo))
	if err := s.Runner.Run(ctx, s.Python, "-c", snapshotScript(repo, dest)); err != nil {
		return &apperr.ProcessError{Tool: "huggingface_hub", Op: "download " + string(repo), Err: err}
	}
	return nil
}

func snapshotScript(repo RepositoryID, dest string) string {
	return fmt.Sprintf(
		"from huggingface_hub import snapshot_download; snapshot_download(%q, local_dir=%q)",
		string(repo), dest,
	)
}

// GitStrategy shallow-clones the repository's git mirror.
type GitStrategy struct {
	Runner    proc.Runner
	Notify    ui.Notifier
	removeAll func(string) error
}

func (s *GitStrategy) Name() string { return "git" }

func (s *GitStrategy) Fetch(ctx context.Context, repo RepositoryID, dest string) error {
	s.Notify.Status("Downloading", fmt.Sprintf("%s via git clone...", repo))

	if !s.Runner.Probe(ctx, "git", "lfs", "version") {
		s.Notify.Warn("git-lfs not found; large model files may not download correctly")
		s.Notify.Warn("Install git-lfs: https://git-lfs.github.com")
	}

	// git refuses to clone into a non-empty directory, e.g. one left behind
	// by a failed hub download.
	removeAll := s.removeAll
	if removeAll == nil {
		removeAll = os.RemoveAll
	}
	if err := removeAll(dest); err != nil {
		return fmt.Errorf("clear %s: %w", dest, err)
	}

	if err := s.Runner.Run(ctx, "git", "clone", "--depth", "1", repo.URL(), dest); err != nil {
		return &apperr.ProcessError{Tool: "git", Op: "git clone " + string(repo), Err: err}
	}
	return nil
}
