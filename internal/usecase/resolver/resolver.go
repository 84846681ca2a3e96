package resolver

import (
	"fmt"
	"net/url"
	"strings"

	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
)

// Strategy extracts a video id from one URL shape. u is nil when the
// reference does not parse as a URL.
type Strategy struct {
	Name    string
	Extract func(u *url.URL, raw string) (string, bool)
}

// DefaultStrategies are tried in order; the first success wins
var DefaultStrategies = []Strategy{
	{Name: "canonical-host", Extract: fromCanonicalHost},
	{Name: "short-link", Extract: fromShortLink},
	{Name: "split-fallback", Extract: fromSplit},
}

// Resolver turns a video reference into a video id
type Resolver struct {
	strategies []Strategy
}

// New creates a resolver over the given strategies (DefaultStrategies when none)
func New(strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies
	}
	return &Resolver{strategies: strategies}
}

// Resolve returns the id found by the first matching strategy. The id
// length is not checked here; the transcript acquirer rejects ids that
// are not 11 characters.
func (r *Resolver) Resolve(ref string) (string, error) {
	id, _, err := r.ResolveWith(ref)
	return id, err
}

// ResolveWith is Resolve that also reports which strategy matched
func (r *Resolver) ResolveWith(ref string) (string, string, error) {
	raw := strings.TrimSpace(ref)
	if raw == "" {
		return "", "", fmt.Errorf("%w: empty reference", usecaseErrors.ErrInvalidReference)
	}

	u, err := url.Parse(raw)
	if err != nil {
		u = nil
	}

	for _, s := range r.strategies {
		if id, ok := s.Extract(u, raw); ok {
			return id, s.Name, nil
		}
	}
	return "", "", fmt.Errorf("%w: no video id in %q", usecaseErrors.ErrInvalidReference, raw)
}

// Thumbnail returns the default thumbnail image URL for a video id
func Thumbnail(videoID string) string {
	return fmt.Sprintf("http://img.youtube.com/vi/%s/0.jpg", videoID)
}

func fromCanonicalHost(u *url.URL, _ string) (string, bool) {
	if u == nil {
		return "", false
	}
	switch strings.ToLower(u.Hostname()) {
	case "www.youtube.com", "youtube.com", "m.youtube.com":
		id := u.Query().Get("v")
		return id, id != ""
	}
	return "", false
}

func fromShortLink(u *url.URL, _ string) (string, bool) {
	if u == nil || strings.ToLower(u.Hostname()) != "youtu.be" {
		return "", false
	}
	id := strings.TrimPrefix(u.Path, "/")
	return id, id != ""
}

// fromSplit takes the text between the first "=" and the following "&"
func fromSplit(_ *url.URL, raw string) (string, bool) {
	parts := strings.Split(raw, "=")
	if len(parts) < 2 {
		return "", false
	}
	id := strings.Split(parts[1], "&")[0]
	return id, id != ""
}
