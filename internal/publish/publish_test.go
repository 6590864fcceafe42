package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/errors"
)

// newTestRepo creates a working repository with an origin remote pointing at
// a local bare repository, so pushes stay on disk.
func newTestRepo(t *testing.T) (workDir string, bare *git.Repository) {
	t.Helper()

	bareDir := filepath.Join(t.TempDir(), "remote.git")
	bare, err := git.PlainInit(bareDir, true)
	require.NoError(t, err)

	workDir = filepath.Join(t.TempDir(), "work")
	repo, err := git.PlainInit(workDir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitcfg.RemoteConfig{Name: "origin", URLs: []string{bareDir}})
	require.NoError(t, err)

	return workDir, bare
}

func testPublisher(repoDir string) *Publisher {
	return New(config.PublishConfig{
		RepoDir:     repoDir,
		Remote:      "origin",
		Branch:      "master",
		AuthorName:  "tester",
		AuthorEmail: "tester@example.com",
	}).WithClock(func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC) })
}

func TestPublish_CommitsAndPushes(t *testing.T) {
	workDir, bare := newTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "posts.json"), []byte("[]\n"), 0o644))

	err := testPublisher(workDir).Publish(context.Background(), "first release")
	require.NoError(t, err)

	// The commit must have arrived at the remote with the titled message.
	ref, err := bare.Head()
	require.NoError(t, err)
	commit, err := bare.CommitObject(ref.Hash())
	require.NoError(t, err)
	require.Equal(t, "publish: first release", commit.Message)
	require.Equal(t, "tester", commit.Author.Name)
}

func TestPublish_CleanTreeIsNoOp(t *testing.T) {
	workDir, bare := newTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "posts.json"), []byte("[]\n"), 0o644))
	require.NoError(t, testPublisher(workDir).Publish(context.Background(), "first release"))

	require.NoError(t, testPublisher(workDir).Publish(context.Background(), "second release"))

	ref, err := bare.Head()
	require.NoError(t, err)
	commit, err := bare.CommitObject(ref.Hash())
	require.NoError(t, err)
	require.Equal(t, "publish: first release", commit.Message)
}

func TestPublish_PushesConfiguredBranch(t *testing.T) {
	workDir, bare := newTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "posts.json"), []byte("[]\n"), 0o644))

	require.NoError(t, testPublisher(workDir).Publish(context.Background(), "release"))

	// The configured branch ref must exist at the remote, not just HEAD.
	ref, err := bare.Reference(plumbing.NewBranchReferenceName("master"), true)
	require.NoError(t, err)
	commit, err := bare.CommitObject(ref.Hash())
	require.NoError(t, err)
	require.Equal(t, "publish: release", commit.Message)
}

func TestPublish_UnknownConfiguredBranchFailsThePush(t *testing.T) {
	workDir, _ := newTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "posts.json"), []byte("[]\n"), 0o644))

	p := New(config.PublishConfig{
		RepoDir:     workDir,
		Remote:      "origin",
		Branch:      "release-train",
		AuthorName:  "tester",
		AuthorEmail: "tester@example.com",
	})
	err := p.Publish(context.Background(), "release")
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryPublish))
}

func TestPublish_RequiresTitle(t *testing.T) {
	workDir, _ := newTestRepo(t)

	err := testPublisher(workDir).Publish(context.Background(), "")
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestPublish_MissingRepository(t *testing.T) {
	err := testPublisher(t.TempDir()).Publish(context.Background(), "release")
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryPublish))
}
