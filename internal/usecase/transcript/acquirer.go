package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/video-summarizer/pkg/runcontext"
	"github.com/johnquangdev/video-summarizer/pkg/youtube"
)

// VideoIDLength is the length of every valid video id
const VideoIDLength = 11

// TrackSource lists, fetches and translates caption tracks
type TrackSource interface {
	ListTracks(ctx context.Context, videoID string) ([]youtube.Track, error)
	Fetch(ctx context.Context, track youtube.Track) ([]youtube.Segment, error)
	Translate(ctx context.Context, track youtube.Track, lang string) ([]youtube.Segment, error)
}

// Selection is a chosen track and its display label
type Selection struct {
	Track youtube.Track
	Label string
}

// SelectionStrategy picks a track from the listed ones
type SelectionStrategy struct {
	Name   string
	Select func(tracks []youtube.Track) (Selection, bool)
}

// DefaultSelection prefers English and otherwise takes the first listed track
var DefaultSelection = []SelectionStrategy{
	{Name: "english", Select: selectEnglish},
	{Name: "first-available", Select: selectFirst},
}

// Acquirer fetches the transcript of a video. Every call fetches again;
// nothing is cached or retried.
type Acquirer struct {
	source     TrackSource
	strategies []SelectionStrategy
	logger     *zap.Logger
}

// NewAcquirer creates a transcript acquirer
func NewAcquirer(source TrackSource, logger *zap.Logger) *Acquirer {
	return &Acquirer{
		source:     source,
		strategies: DefaultSelection,
		logger:     logger,
	}
}

// Acquire returns the transcript for videoID
func (a *Acquirer) Acquire(ctx context.Context, videoID string) (*entities.Transcript, error) {
	if len(videoID) != VideoIDLength {
		return nil, fmt.Errorf("%w: invalid video id %q", usecaseErrors.ErrInvalidReference, videoID)
	}

	tracks, err := a.source.ListTracks(ctx, videoID)
	if err != nil {
		switch {
		case errors.Is(err, youtube.ErrTranscriptsDisabled):
			return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrNoTranscript, err)
		case errors.Is(err, youtube.ErrVideoUnavailable):
			return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidReference, err)
		}
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: video %s has no caption tracks", usecaseErrors.ErrNoTranscript, videoID)
	}

	sel, strategy, ok := a.selectTrack(tracks)
	if !ok {
		return nil, fmt.Errorf("%w: no usable caption track", usecaseErrors.ErrNoTranscript)
	}
	if a.logger != nil {
		a.logger.Info("📜 Caption track selected",
			append(runcontext.Fields(ctx),
				zap.String("strategy", strategy),
				zap.String("language_code", sel.Track.LanguageCode),
				zap.Bool("generated", sel.Track.Generated),
			)...)
	}

	if !isEnglish(sel.Track.LanguageCode) && sel.Track.Translatable {
		segments, err := a.source.Translate(ctx, sel.Track, "en")
		if err == nil && len(segments) > 0 {
			return entities.NewTranscript(fmt.Sprintf("%s (Translated to English)", sel.Track.Language), toEntities(segments)), nil
		}
		// Translation failure is not fatal; keep the original language
		if a.logger != nil {
			a.logger.Warn("⚠️  Translation to English failed, using original language",
				append(runcontext.Fields(ctx),
					zap.String("language_code", sel.Track.LanguageCode),
					zap.Error(err),
				)...)
		}
	}

	segments, err := a.source.Fetch(ctx, sel.Track)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	return entities.NewTranscript(sel.Label, toEntities(segments)), nil
}

func (a *Acquirer) selectTrack(tracks []youtube.Track) (Selection, string, bool) {
	for _, s := range a.strategies {
		if sel, ok := s.Select(tracks); ok {
			return sel, s.Name, true
		}
	}
	return Selection{}, "", false
}

// selectEnglish prefers a manually created English track over an
// auto-generated one
func selectEnglish(tracks []youtube.Track) (Selection, bool) {
	var generated *youtube.Track
	for i := range tracks {
		if !isEnglish(tracks[i].LanguageCode) {
			continue
		}
		if !tracks[i].Generated {
			return Selection{Track: tracks[i], Label: "English"}, true
		}
		if generated == nil {
			generated = &tracks[i]
		}
	}
	if generated != nil {
		return Selection{Track: *generated, Label: "English (Auto-generated)"}, true
	}
	return Selection{}, false
}

func selectFirst(tracks []youtube.Track) (Selection, bool) {
	if len(tracks) == 0 {
		return Selection{}, false
	}
	t := tracks[0]
	return Selection{Track: t, Label: fmt.Sprintf("%s (%s)", t.Language, t.LanguageCode)}, true
}

// isEnglish matches the plain "en" code only; regional variants such as
// en-GB go through the first-track fallback
func isEnglish(code string) bool {
	return strings.EqualFold(code, "en")
}

func toEntities(segments []youtube.Segment) []entities.TranscriptSegment {
	out := make([]entities.TranscriptSegment, len(segments))
	for i, s := range segments {
		out[i] = entities.TranscriptSegment{Start: s.Start, Duration: s.Duration, Text: s.Text}
	}
	return out
}
