package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/johnquangdev/video-summarizer/pkg/config"
)

const (
	userAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	playerResponseVar = "ytInitialPlayerResponse"
	maxCaptionBytes   = 4 << 20
)

var tagRE = regexp.MustCompile(`<[^>]*>`)

// Client lists, fetches and translates caption tracks by scraping the
// public watch page and the timedtext endpoint
type Client struct {
	baseURL        string
	acceptLanguage string
	client         *http.Client
}

// NewClient creates a caption client. Pass a nil config for defaults.
func NewClient(cfg *config.YouTubeConfig) *Client {
	c := &Client{
		baseURL:        "https://www.youtube.com",
		acceptLanguage: "en-US,en;q=0.9",
		client:         &http.Client{Timeout: 30 * time.Second},
	}
	if cfg != nil {
		if cfg.BaseURL != "" {
			c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
		}
		if cfg.Language != "" {
			c.acceptLanguage = cfg.Language
		}
		if cfg.Timeout > 0 {
			c.client.Timeout = cfg.Timeout
		}
	}
	return c
}

// ListTracks returns the caption tracks of a video, manually created
// tracks first and auto-generated ones after, each group in page order.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	page, err := c.get(ctx, c.baseURL+"/watch?v="+url.QueryEscape(videoID))
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}
	defer page.Close()

	pr, err := parsePlayerResponse(page)
	if err != nil {
		return nil, err
	}

	if status := pr.PlayabilityStatus.Status; status != "" && status != "OK" {
		return nil, fmt.Errorf("%w: %s %s", ErrVideoUnavailable, status, pr.PlayabilityStatus.Reason)
	}
	if pr.Captions == nil || len(pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		return nil, ErrTranscriptsDisabled
	}

	var manual, generated []Track
	for _, ct := range pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks {
		t := Track{
			LanguageCode: ct.LanguageCode,
			Language:     ct.Name.String(),
			Generated:    ct.Kind == "asr",
			Translatable: ct.IsTranslatable,
			BaseURL:      ct.BaseURL,
		}
		if t.Generated {
			generated = append(generated, t)
		} else {
			manual = append(manual, t)
		}
	}
	return append(manual, generated...), nil
}

// Fetch downloads the timed segments of a track
func (c *Client) Fetch(ctx context.Context, track Track) ([]Segment, error) {
	u, err := c.captionURL(track, "")
	if err != nil {
		return nil, err
	}
	return c.fetchTimedText(ctx, u)
}

// Translate downloads the segments of a track machine-translated to lang
func (c *Client) Translate(ctx context.Context, track Track, lang string) ([]Segment, error) {
	if !track.Translatable {
		return nil, ErrNotTranslatable
	}
	u, err := c.captionURL(track, lang)
	if err != nil {
		return nil, err
	}
	return c.fetchTimedText(ctx, u)
}

// captionURL resolves the track URL against the base and sets the query
// parameters for the srv1 XML format and optional translation
func (c *Client) captionURL(track Track, tlang string) (string, error) {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid caption url: %w", err)
	}
	u := base.ResolveReference(ref)
	q := u.Query()
	q.Del("fmt")
	if tlang != "" {
		q.Set("tlang", tlang)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) fetchTimedText(ctx context.Context, captionURL string) ([]Segment, error) {
	body, err := c.get(ctx, captionURL)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxCaptionBytes))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("empty timedtext response")
	}

	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaption(line.Text)
		if text == "" {
			continue
		}
		segments = append(segments, Segment{Start: line.Start, Duration: line.Dur, Text: text})
	}
	return segments, nil
}

func (c *Client) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", c.acceptLanguage)
	// Skip the EU consent interstitial
	req.AddCookie(&http.Cookie{Name: "CONSENT", Value: "YES+cb"})

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("youtube returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// parsePlayerResponse finds the inline script assigning
// ytInitialPlayerResponse and decodes the JSON object it holds
func parsePlayerResponse(r io.Reader) (*playerResponse, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, playerResponseVar)
		if idx < 0 {
			return true
		}
		rest := text[idx+len(playerResponseVar):]
		eq := strings.Index(rest, "=")
		if eq < 0 {
			return true
		}
		rest = strings.TrimSpace(rest[eq+1:])
		if !strings.HasPrefix(rest, "{") {
			return true
		}
		raw = rest
		return false
	})
	if raw == "" {
		return nil, ErrPlayerResponseMissing
	}

	// The decoder stops after the first value, ignoring the trailing JS
	var pr playerResponse
	if err := json.NewDecoder(strings.NewReader(raw)).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &pr, nil
}

// cleanCaption unescapes the doubly escaped caption text and drops
// inline formatting tags
func cleanCaption(s string) string {
	s = html.UnescapeString(s)
	s = tagRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
