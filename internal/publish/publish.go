// Package publish commits and pushes the generated snapshot. Publishing is
// what makes a regenerated snapshot visible to the static host, so the commit
// message carries the author-supplied release title.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
)

// Publisher commits the working tree of the configured repository and pushes
// it to the configured remote.
type Publisher struct {
	cfg config.PublishConfig
	now func() time.Time
}

// New creates a publisher for the given publish configuration.
func New(cfg config.PublishConfig) *Publisher {
	return &Publisher{cfg: cfg, now: time.Now}
}

// WithClock injects a clock (for tests).
func (p *Publisher) WithClock(now func() time.Time) *Publisher {
	p.now = now
	return p
}

// Publish stages every change in the repository, commits it with the given
// title, and pushes to the remote. A clean working tree publishes nothing and
// is not an error. The caller regenerates the snapshot before publishing.
func (p *Publisher) Publish(ctx context.Context, title string) error {
	if title == "" {
		return errors.ValidationMsg("publish title is required")
	}

	repo, err := git.PlainOpen(p.cfg.RepoDir)
	if err != nil {
		return errors.Publish("open repository", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return errors.Publish("open worktree", err)
	}

	status, err := wt.Status()
	if err != nil {
		return errors.Publish("read status", err)
	}
	if status.IsClean() {
		slog.Info("Nothing to publish, working tree is clean", logfields.Path(p.cfg.RepoDir))
		return nil
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return errors.Publish("stage changes", err)
	}

	hash, err := wt.Commit(fmt.Sprintf("publish: %s", title), &git.CommitOptions{
		Author: &object.Signature{
			Name:  p.cfg.AuthorName,
			Email: p.cfg.AuthorEmail,
			When:  p.now(),
		},
	})
	if err != nil {
		return errors.Publish("commit", err)
	}
	slog.Info("Snapshot committed", slog.String("commit", hash.String()[:8]), slog.String("title", title))

	push := &git.PushOptions{RemoteName: p.cfg.Remote}
	if p.cfg.Branch != "" {
		ref := fmt.Sprintf("refs/heads/%s:refs/heads/%s", p.cfg.Branch, p.cfg.Branch)
		push.RefSpecs = []gitcfg.RefSpec{gitcfg.RefSpec(ref)}
	}
	err = repo.PushContext(ctx, push)
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return errors.Publish("push", err)
	}
	slog.Info("Snapshot pushed",
		slog.String("remote", p.cfg.Remote), slog.String("branch", p.cfg.Branch))
	return nil
}
