package transcript

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/video-summarizer/pkg/youtube"
)

type fakeSource struct {
	tracks       []youtube.Track
	listErr      error
	segments     map[string][]youtube.Segment
	translated   []youtube.Segment
	translateErr error

	listCalls      int
	fetched        []string
	translateCalls int
}

func (f *fakeSource) ListTracks(_ context.Context, _ string) ([]youtube.Track, error) {
	f.listCalls++
	return f.tracks, f.listErr
}

func (f *fakeSource) Fetch(_ context.Context, track youtube.Track) ([]youtube.Segment, error) {
	f.fetched = append(f.fetched, track.LanguageCode)
	return f.segments[track.LanguageCode], nil
}

func (f *fakeSource) Translate(_ context.Context, _ youtube.Track, _ string) ([]youtube.Segment, error) {
	f.translateCalls++
	return f.translated, f.translateErr
}

func TestAcquire_EnglishAutoGenerated(t *testing.T) {
	src := &fakeSource{
		tracks: []youtube.Track{{LanguageCode: "en", Language: "English (auto-generated)", Generated: true, Translatable: true}},
		segments: map[string][]youtube.Segment{
			"en": {{Start: 0.0, Duration: 2.0, Text: "Hello"}, {Start: 2.0, Duration: 3.0, Text: "world"}},
		},
	}
	a := NewAcquirer(src, zaptest.NewLogger(t))

	tr, err := a.Acquire(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, " Hello world", tr.FullText)
	assert.Equal(t, "English (Auto-generated)", tr.Language)
	require.Len(t, tr.Segments, 2)
	assert.Equal(t, 2.0, tr.Segments[1].Start)
	assert.Equal(t, 3.0, tr.Segments[1].Duration)
	assert.Zero(t, src.translateCalls)
}

func TestAcquire_PrefersManualEnglish(t *testing.T) {
	src := &fakeSource{
		tracks: []youtube.Track{
			{LanguageCode: "fr", Language: "French", Translatable: true},
			{LanguageCode: "en", Language: "English (auto-generated)", Generated: true},
			{LanguageCode: "en", Language: "English"},
		},
		segments: map[string][]youtube.Segment{"en": {{Text: "cheers"}}},
	}
	tr, err := NewAcquirer(src, nil).Acquire(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "English", tr.Language)
	assert.Equal(t, " cheers", tr.FullText)
	assert.Equal(t, []string{"en"}, src.fetched)
}

func TestAcquire_RegionalEnglishIsNotPlainEnglish(t *testing.T) {
	src := &fakeSource{
		tracks: []youtube.Track{
			{LanguageCode: "en-GB", Language: "English (United Kingdom)"},
			{LanguageCode: "en", Language: "English (auto-generated)", Generated: true},
		},
		segments: map[string][]youtube.Segment{
			"en":    {{Text: "auto"}},
			"en-GB": {{Text: "manual"}},
		},
	}
	tr, err := NewAcquirer(src, nil).Acquire(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "English (Auto-generated)", tr.Language)
	assert.Equal(t, " auto", tr.FullText)
	assert.Equal(t, []string{"en"}, src.fetched)

	t.Run("regional only falls back to first track", func(t *testing.T) {
		src := &fakeSource{
			tracks:   []youtube.Track{{LanguageCode: "en-GB", Language: "English (United Kingdom)"}},
			segments: map[string][]youtube.Segment{"en-GB": {{Text: "cheers"}}},
		}
		tr, err := NewAcquirer(src, nil).Acquire(context.Background(), "dQw4w9WgXcQ")
		require.NoError(t, err)
		assert.Equal(t, "English (United Kingdom) (en-GB)", tr.Language)
		assert.Zero(t, src.translateCalls)
	})
}

func TestAcquire_TranslatesNonEnglish(t *testing.T) {
	src := &fakeSource{
		tracks:     []youtube.Track{{LanguageCode: "es", Language: "Spanish", Translatable: true}},
		translated: []youtube.Segment{{Start: 0, Duration: 1, Text: "Good"}, {Start: 1, Duration: 1, Text: "morning"}},
	}
	tr, err := NewAcquirer(src, zaptest.NewLogger(t)).Acquire(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, " Good morning", tr.FullText)
	assert.Contains(t, tr.Language, "Translated to English")
	assert.Equal(t, "Spanish (Translated to English)", tr.Language)
	assert.Empty(t, src.fetched)
}

func TestAcquire_TranslationFailureFallsBack(t *testing.T) {
	src := &fakeSource{
		tracks:       []youtube.Track{{LanguageCode: "es", Language: "Spanish", Translatable: true}},
		translateErr: errors.New("boom"),
		segments:     map[string][]youtube.Segment{"es": {{Text: "Buenos"}, {Text: "días"}}},
	}
	tr, err := NewAcquirer(src, zaptest.NewLogger(t)).Acquire(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, " Buenos días", tr.FullText)
	assert.Equal(t, "Spanish (es)", tr.Language)
	assert.Equal(t, 1, src.translateCalls)
}

func TestAcquire_NotTranslatable(t *testing.T) {
	src := &fakeSource{
		tracks:   []youtube.Track{{LanguageCode: "de", Language: "German"}},
		segments: map[string][]youtube.Segment{"de": {{Text: "Hallo"}}},
	}
	tr, err := NewAcquirer(src, nil).Acquire(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "German (de)", tr.Language)
	assert.Zero(t, src.translateCalls)
}

func TestAcquire_NoTracks(t *testing.T) {
	a := NewAcquirer(&fakeSource{}, nil)
	_, err := a.Acquire(context.Background(), "dQw4w9WgXcQ")
	assert.True(t, errors.Is(err, usecaseErrors.ErrNoTranscript))

	a = NewAcquirer(&fakeSource{listErr: youtube.ErrTranscriptsDisabled}, nil)
	_, err = a.Acquire(context.Background(), "dQw4w9WgXcQ")
	assert.True(t, errors.Is(err, usecaseErrors.ErrNoTranscript))
}

func TestAcquire_InvalidID(t *testing.T) {
	src := &fakeSource{}
	a := NewAcquirer(src, nil)

	for _, id := range []string{"", "abc", "dQw4w9WgXcQX"} {
		_, err := a.Acquire(context.Background(), id)
		assert.True(t, errors.Is(err, usecaseErrors.ErrInvalidReference), id)
	}
	assert.Zero(t, src.listCalls)

	a = NewAcquirer(&fakeSource{listErr: youtube.ErrVideoUnavailable}, nil)
	_, err := a.Acquire(context.Background(), "dQw4w9WgXcQ")
	assert.True(t, errors.Is(err, usecaseErrors.ErrInvalidReference))
}

func TestAcquire_NoCaching(t *testing.T) {
	src := &fakeSource{
		tracks:   []youtube.Track{{LanguageCode: "en", Language: "English"}},
		segments: map[string][]youtube.Segment{"en": {{Text: "hi"}}},
	}
	a := NewAcquirer(src, nil)
	for i := 0; i < 2; i++ {
		_, err := a.Acquire(context.Background(), "dQw4w9WgXcQ")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, src.listCalls)
	assert.Len(t, src.fetched, 2)
}
