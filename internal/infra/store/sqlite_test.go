package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/moodmix/internal/domain/playlist"
	"github.com/osa030/moodmix/internal/domain/track"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "moodmix.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_SaveAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	older := playlist.Playlist{
		Mood:            "calm",
		MoodDescription: "A calm playlist",
		PlaylistConcept: "calm music",
		Tracks:          []track.Track{{ID: "t1", Name: "One", DurationMs: 180000}},
		PlaylistLength:  30,
		VibeLevel:       2,
		Genres:          []string{"jazz"},
		CreatedAt:       base,
		UserID:          "user-1",
	}
	newer := older
	newer.Mood = "happy"
	newer.CreatedAt = base.Add(time.Hour)
	other := older
	other.UserID = "user-2"

	olderID, err := s.Save(ctx, older)
	require.NoError(t, err)
	newerID, err := s.Save(ctx, newer)
	require.NoError(t, err)
	_, err = s.Save(ctx, other)
	require.NoError(t, err)
	assert.NotEqual(t, olderID, newerID)

	got, err := s.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, newerID, got[0].ID)
	assert.Equal(t, "happy", got[0].Mood)
	assert.Equal(t, olderID, got[1].ID)
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))

	// Stored verbatim apart from the assigned id.
	want := older
	want.ID = olderID
	assert.Equal(t, want.Tracks, got[1].Tracks)
	assert.Equal(t, want.Genres, got[1].Genres)
	assert.True(t, want.CreatedAt.Equal(got[1].CreatedAt))
}

func TestSQLite_ListByUser_Empty(t *testing.T) {
	s := openTestStore(t)

	got, err := s.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLite_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, playlist.Playlist{Mood: "sad", UserID: "user-1", CreatedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	got, err := s.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	// Deleting again, or an unknown id, is not an error.
	assert.NoError(t, s.Delete(ctx, id))
	assert.NoError(t, s.Delete(ctx, "does-not-exist"))
}

func TestSQLite_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Save(context.Background(), playlist.Playlist{Mood: "x", UserID: "u", CreatedAt: time.Now()})
	require.NoError(t, err)

	got, err := s.ListByUser(context.Background(), "u")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
