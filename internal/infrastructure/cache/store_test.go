package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	"github.com/johnquangdev/video-summarizer/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
)

func sampleSession(id string) entities.Session {
	transcript := entities.NewTranscript("English", []entities.TranscriptSegment{
		{Start: 0, Duration: 2, Text: "Hello"},
		{Start: 2, Duration: 3, Text: "world"},
	})
	return entities.NewSession(id).
		WithTranscript("dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ", transcript).
		WithSummary("summary", "moments").
		WithChatTurn("q1", "a1")
}

func exerciseStore(t *testing.T, store repositories.SessionStore) {
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, usecaseErrors.ErrSessionNotFound))

	sess := sampleSession("s1")
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", got.VideoID)
	assert.Equal(t, " Hello world", got.Transcript.FullText)
	assert.Equal(t, sess.Transcript.Segments, got.Transcript.Segments)
	assert.Equal(t, []entities.ChatTurn{{Question: "q1", Answer: "a1"}}, got.Chat)

	// Replacing the session is visible to the next Get
	require.NoError(t, store.Put(ctx, got.ClearChat()))
	got, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got.Chat)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.True(t, errors.Is(err, usecaseErrors.ErrSessionNotFound))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	exerciseStore(t, store)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	defer store.Close()

	require.NoError(t, store.Put(context.Background(), sampleSession("s1")))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(context.Background(), "s1")
	assert.True(t, errors.Is(err, usecaseErrors.ErrSessionNotFound))

	store.removeExpired(time.Now())
	assert.Empty(t, store.items)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	exerciseStore(t, NewRedisStore(client, time.Hour))
}

func TestRedisStore_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, time.Minute)
	require.NoError(t, store.Put(context.Background(), sampleSession("s1")))
	assert.Equal(t, time.Minute, mr.TTL(sessionKeyPrefix+"s1"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(context.Background(), "s1")
	assert.True(t, errors.Is(err, usecaseErrors.ErrSessionNotFound))
}
