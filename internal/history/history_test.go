package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RecordAndRecent_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry := Entry{
		BuildID:    "abc123",
		StartedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		DurationMS: 420,
		Outcome:    OutcomeBuilt,
		Posts:      7,
		Pages:      2,
		Deployed:   true,
		Stages:     map[string]string{"load_posts": "12ms", "render_posts": "30ms"},
	}
	require.NoError(t, s.Record(ctx, entry))

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "abc123", got[0].BuildID)
	require.Equal(t, OutcomeBuilt, got[0].Outcome)
	require.Equal(t, 7, got[0].Posts)
	require.True(t, got[0].Deployed)
	require.Equal(t, "12ms", got[0].Stages["load_posts"])
	require.Equal(t, entry.StartedAt.Unix(), got[0].StartedAt.Unix())
}

func TestStore_Recent_NewestFirstAndLimited(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, Entry{
			BuildID:   fmt.Sprintf("build-%d", i),
			StartedAt: time.Now(),
			Outcome:   OutcomeSkipped,
		}))
	}

	got, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "build-4", got[0].BuildID)
	require.Equal(t, "build-2", got[2].BuildID)
}

func TestStore_Record_FailedRunKeepsError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Entry{
		BuildID:   "broken",
		StartedAt: time.Now(),
		Outcome:   OutcomeFailed,
		Error:     "build failed in stage load_posts: missing title",
	}))

	got, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, OutcomeFailed, got[0].Outcome)
	require.Contains(t, got[0].Error, "missing title")
}

func TestStore_Open_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, Entry{BuildID: "persisted", StartedAt: time.Now(), Outcome: OutcomeBuilt}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "persisted", got[0].BuildID)
}

func TestStore_Open_MissingStateDir_Created(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".inkwell", "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Record(context.Background(), Entry{BuildID: "fresh", StartedAt: time.Now(), Outcome: OutcomeBuilt}))
	require.FileExists(t, path)
}
