package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogsmith/internal/generator"
	"git.home.luguber.info/inful/blogsmith/internal/seed"
	"git.home.luguber.info/inful/blogsmith/internal/storage"
)

func TestSeedWatcher_TriggersOnceAfterBurst(t *testing.T) {
	dir := t.TempDir()
	var fired atomic.Int32

	watcher, err := NewSeedWatcher(dir, 50*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))

	// A burst of writes within the debounce window collapses to one trigger.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "posts.json"), []byte("[]"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return fired.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load())
}

func TestSeedWatcher_IgnoresNonJSONFiles(t *testing.T) {
	dir := t.TempDir()
	var fired atomic.Int32

	watcher, err := NewSeedWatcher(dir, 20*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load())
}

func TestRuntime_GenerateWritesSnapshot(t *testing.T) {
	store := storage.NewMemStore()
	require.NoError(t, store.Seed(seed.KindPosts, []seed.Raw{}))
	require.NoError(t, store.Seed(seed.KindCategories, []seed.Raw{}))
	require.NoError(t, store.Seed(seed.KindTags, []seed.Raw{}))

	outDir := filepath.Join(t.TempDir(), "data")
	rt := NewRuntime(generator.New(store), outDir, nil)

	require.NoError(t, rt.Generate())
	require.FileExists(t, filepath.Join(outDir, "posts.json"))
	require.FileExists(t, filepath.Join(outDir, "categories.json"))
	require.FileExists(t, filepath.Join(outDir, "tags.json"))
}

func TestRuntime_GenerateFailurePropagates(t *testing.T) {
	store := storage.NewMemStore() // no seed collections at all
	rt := NewRuntime(generator.New(store), t.TempDir(), nil)

	require.Error(t, rt.Generate())
}
