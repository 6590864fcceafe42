package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blogsmith.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "seed:\n  dir: content/seed\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "content/seed", cfg.Seed.Dir)
	require.Equal(t, "public/data", cfg.Output.Dir)
	require.Equal(t, "127.0.0.1:8087", cfg.Server.Addr())
	require.Equal(t, "origin", cfg.Publish.Remote)
	require.Equal(t, "main", cfg.Publish.Branch)
	require.Equal(t, 500*time.Millisecond, cfg.Generate.Debounce)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("BLOG_SEED_DIR", "/srv/blog/seed")
	path := writeConfig(t, "seed:\n  dir: ${BLOG_SEED_DIR}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/srv/blog/seed", cfg.Seed.Dir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestLoad_RejectsBadPort(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 99999\n")

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestLoad_RejectsUnknownLogLevel(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: verbose\n")

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogsmith.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "seed", cfg.Seed.Dir)
	require.Equal(t, "0 3 * * *", cfg.Generate.Schedule)
}

func TestInit_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogsmith.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	require.NoError(t, Init(path, true))
}
