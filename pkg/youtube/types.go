package youtube

import (
	"errors"
	"strings"
)

var (
	// ErrVideoUnavailable is returned when the watch page reports the video cannot be played
	ErrVideoUnavailable = errors.New("video unavailable")
	// ErrTranscriptsDisabled is returned when the video exposes no caption tracks
	ErrTranscriptsDisabled = errors.New("transcripts disabled for video")
	// ErrPlayerResponseMissing is returned when the watch page carries no player response
	ErrPlayerResponseMissing = errors.New("player response not found in watch page")
	// ErrNotTranslatable is returned by Translate for tracks YouTube cannot translate
	ErrNotTranslatable = errors.New("track is not translatable")
)

// Track is one caption track listed for a video
type Track struct {
	LanguageCode string `json:"language_code"`
	Language     string `json:"language"`
	Generated    bool   `json:"generated"`
	Translatable bool   `json:"translatable"`
	BaseURL      string `json:"-"`
}

// Segment is one timed caption line
type Segment struct {
	Start    float64
	Duration float64
	Text     string
}

// playerResponse is the subset of ytInitialPlayerResponse we read
type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL        string   `json:"baseUrl"`
	Name           textRuns `json:"name"`
	LanguageCode   string   `json:"languageCode"`
	Kind           string   `json:"kind"` // "asr" = auto-generated
	IsTranslatable bool     `json:"isTranslatable"`
}

type textRuns struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t textRuns) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var sb strings.Builder
	for _, r := range t.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// timedText is the default (srv1) timedtext XML document
type timedText struct {
	Lines []timedLine `xml:"text"`
}

type timedLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}
