package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })
	log.WithClock(func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC) })
	return log
}

func TestRecordAndRecent(t *testing.T) {
	log := openTestLog(t)

	log.Record("create", "posts", "post-1", "Hello World")
	log.Record("update", "posts", "post-1", "Hello Again")
	log.Record("delete", "tags", "tag-1", "")

	entries, err := log.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	require.Equal(t, "delete", entries[0].Action)
	require.Equal(t, "tags", entries[0].Kind)
	require.Equal(t, "create", entries[2].Action)
	require.Equal(t, "Hello World", entries[2].Detail)
	require.Equal(t, time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC), entries[0].CreatedAt)
}

func TestRecent_LimitsResults(t *testing.T) {
	log := openTestLog(t)
	for i := 0; i < 5; i++ {
		log.Record("update", "settings", "settings", "")
	}

	entries, err := log.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestRecent_EmptyLog(t *testing.T) {
	log := openTestLog(t)

	entries, err := log.Recent(10)
	require.NoError(t, err)
	require.Empty(t, entries)
}
