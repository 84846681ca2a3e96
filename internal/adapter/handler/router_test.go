package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/video-summarizer/errors"
	"github.com/johnquangdev/video-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	"github.com/johnquangdev/video-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/video-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/video-summarizer/internal/usecase/ai"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
	historyUsecase "github.com/johnquangdev/video-summarizer/internal/usecase/history"
	"github.com/johnquangdev/video-summarizer/internal/usecase/pipeline"
	"github.com/johnquangdev/video-summarizer/internal/usecase/resolver"
	sessionUsecase "github.com/johnquangdev/video-summarizer/internal/usecase/session"
	"github.com/johnquangdev/video-summarizer/pkg/config"
	"github.com/johnquangdev/video-summarizer/pkg/validator"
)

const (
	testVideoID   = "dQw4w9WgXcQ"
	noCaptionsID  = "noCaptions1"
	unreachableID = "unreachabl1"
)

type stubAcquirer struct{}

func (stubAcquirer) Acquire(_ context.Context, videoID string) (*entities.Transcript, error) {
	switch {
	case len(videoID) != 11:
		return nil, fmt.Errorf("%w: invalid video id %q", usecaseErrors.ErrInvalidReference, videoID)
	case videoID == noCaptionsID:
		return nil, fmt.Errorf("%w: captions disabled", usecaseErrors.ErrNoTranscript)
	case videoID == unreachableID:
		return nil, fmt.Errorf("list transcripts: connection reset")
	}
	return entities.NewTranscript("English", []entities.TranscriptSegment{
		{Start: 0, Duration: 2, Text: "Hello"},
		{Start: 65, Duration: 3, Text: "world"},
	}), nil
}

type stubCompleter struct{}

func (stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.HasPrefix(prompt, "You are a YouTube video summarizer"):
		return "- greets the world", nil
	case strings.HasPrefix(prompt, "Analyze this video transcript"):
		return "TIMESTAMP: Greeting - hello", nil
	case strings.HasPrefix(prompt, "Create a clean, simple Mind Map"):
		return "```dot\ndigraph MindMap { Hello -> world; }\n```", nil
	}
	return "A greeting.", nil
}

type stubPublisher struct {
	objects []string
}

func (p *stubPublisher) UploadExport(_ context.Context, objectName string, _ []byte, _ string) (string, error) {
	p.objects = append(p.objects, objectName)
	return "https://minio.local/" + objectName + "?X-Amz-Signature=abc", nil
}

func (p *stubPublisher) ListExports(_ context.Context, prefix string) ([]string, error) {
	var out []string
	for _, o := range p.objects {
		if strings.HasPrefix(o, prefix) {
			out = append(out, o)
		}
	}
	return out, nil
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

type testApp struct {
	e         *echo.Echo
	sessionID string
}

func newTestApp(t *testing.T, publisher ExportPublisher) *testApp {
	t.Helper()
	logger := zaptest.NewLogger(t)

	db, err := database.NewSQLiteDB(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { database.CloseDB(db) })

	store := cache.NewMemoryStore(time.Hour)
	t.Cleanup(func() { store.Close() })

	historySvc := historyUsecase.NewHistoryService(repository.NewHistoryRepository(db), logger)
	sessions := sessionUsecase.NewSessionService(store, logger)
	p := pipeline.NewPipeline(resolver.New(), stubAcquirer{}, ai.NewAIService(stubCompleter{}, logger), historySvc, logger)

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Session.CookieName = "sid"
	cfg.Session.TTL = time.Hour

	e := echo.New()
	e.Validator = validator.New()
	NewRouter(cfg, sessions,
		NewSummaryHandler(p, sessions, logger),
		NewSessionHandler(p, sessions, logger),
		NewHistoryHandler(historySvc, p, sessions, logger),
		NewExportHandler(historySvc, publisher, logger),
	).Setup(e)

	return &testApp{e: e, sessionID: uuid.NewString()}
}

func (a *testApp) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-Session-ID", a.sessionID)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (a *testApp) summarize(t *testing.T) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/v1/summaries", `{"url":"https://www.youtube.com/watch?v=`+testVideoID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)
	rec := app.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSummarize(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodPost, "/v1/summaries",
		`{"url":"https://youtu.be/`+testVideoID+`","length":"detailed","style":"paragraphs"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		VideoID    string `json:"video_id"`
		Thumbnail  string `json:"thumbnail"`
		Summary    string `json:"summary"`
		KeyMoments string `json:"key_moments"`
		Stats      struct {
			SummaryWords    int `json:"summary_words"`
			ReadMinutes     int `json:"read_minutes"`
			TranscriptWords int `json:"transcript_words"`
		} `json:"stats"`
		Segments []struct {
			Timestamp string `json:"timestamp"`
		} `json:"segments"`
	}
	env := decode(t, rec, &data)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "success", env.Message)
	assert.Equal(t, testVideoID, data.VideoID)
	assert.Equal(t, "http://img.youtube.com/vi/"+testVideoID+"/0.jpg", data.Thumbnail)
	assert.Equal(t, "- greets the world", data.Summary)
	assert.Equal(t, "TIMESTAMP: Greeting - hello", data.KeyMoments)
	assert.Equal(t, 4, data.Stats.SummaryWords)
	assert.Equal(t, 1, data.Stats.ReadMinutes)
	assert.Equal(t, 2, data.Stats.TranscriptWords)
	require.Len(t, data.Segments, 2)
	assert.Equal(t, "01:05", data.Segments[1].Timestamp)

	rec = app.do(t, http.MethodGet, "/v1/session", "")
	var sess struct {
		HasTranscript bool   `json:"has_transcript"`
		VideoID       string `json:"video_id"`
		Summary       string `json:"summary"`
	}
	decode(t, rec, &sess)
	assert.True(t, sess.HasTranscript)
	assert.Equal(t, testVideoID, sess.VideoID)
	assert.Equal(t, "- greets the world", sess.Summary)
}

func TestSummarize_Errors(t *testing.T) {
	app := newTestApp(t, nil)

	cases := []struct {
		name string
		body string
		code int
		app  errors.ErrorCode
	}{
		{"malformed json", `{"url":`, http.StatusBadRequest, errors.ErrorCode_INVALID_PAYLOAD},
		{"missing url", `{}`, http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT},
		{"bad length", `{"url":"https://youtu.be/x","length":"huge"}`, http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT},
		{"unresolvable", `{"url":"not a video"}`, http.StatusBadRequest, errors.ErrorCode_VIDEO_INVALID_REFERENCE},
		{"short id", `{"url":"https://youtu.be/abc"}`, http.StatusBadRequest, errors.ErrorCode_VIDEO_INVALID_REFERENCE},
		{"no captions", `{"url":"https://youtu.be/` + noCaptionsID + `"}`, http.StatusUnprocessableEntity, errors.ErrorCode_VIDEO_NO_TRANSCRIPT},
		{"caption source down", `{"url":"https://youtu.be/` + unreachableID + `"}`, http.StatusBadGateway, errors.ErrorCode_VIDEO_FETCH_FAILED},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/v1/summaries", tc.body)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
			env := decode(t, rec, nil)
			assert.Equal(t, int(tc.app), env.Code)
		})
	}

	rec := app.do(t, http.MethodPost, "/v1/summaries", `{"url":"not a video"}`)
	env := decode(t, rec, nil)
	assert.Equal(t, "not a video", env.Details["reference"])
}

func TestSessionRoutesRequireTranscript(t *testing.T) {
	app := newTestApp(t, &stubPublisher{})

	for _, r := range []struct{ method, path, body string }{
		{http.MethodPost, "/v1/session/mindmap", ""},
		{http.MethodPost, "/v1/session/chat", `{"question":"hi?"}`},
		{http.MethodDelete, "/v1/session/chat", ""},
		{http.MethodPost, "/v1/session/save", ""},
		{http.MethodGet, "/v1/session/export", ""},
		{http.MethodPost, "/v1/session/export/publish", ""},
	} {
		rec := app.do(t, r.method, r.path, r.body)
		assert.Equal(t, http.StatusConflict, rec.Code, r.path)
		env := decode(t, rec, nil)
		assert.Equal(t, int(errors.ErrorCode_SESSION_NO_ACTIVE_TRANSCRIPT), env.Code, r.path)
	}
}

func TestMindMapAndChat(t *testing.T) {
	app := newTestApp(t, nil)
	app.summarize(t)

	rec := app.do(t, http.MethodPost, "/v1/session/mindmap", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var mm struct {
		DOT string `json:"dot"`
	}
	decode(t, rec, &mm)
	assert.Equal(t, "digraph MindMap { Hello -> world; }", mm.DOT)

	rec = app.do(t, http.MethodPost, "/v1/session/chat", `{"question":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for i := 0; i < 2; i++ {
		rec = app.do(t, http.MethodPost, "/v1/session/chat", `{"question":"What is said?"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	var chat struct {
		Answer string `json:"answer"`
		Chat   []struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		} `json:"chat"`
	}
	decode(t, rec, &chat)
	assert.Equal(t, "A greeting.", chat.Answer)
	assert.Len(t, chat.Chat, 2)

	rec = app.do(t, http.MethodDelete, "/v1/session/chat", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sess struct {
		HasTranscript bool              `json:"has_transcript"`
		Chat          []json.RawMessage `json:"chat"`
	}
	decode(t, rec, &sess)
	assert.True(t, sess.HasTranscript)
	assert.Empty(t, sess.Chat)
}

func TestHistoryLifecycle(t *testing.T) {
	app := newTestApp(t, nil)
	app.summarize(t)

	rec := app.do(t, http.MethodPost, "/v1/session/save", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved struct {
		ID         int64  `json:"id"`
		Title      string `json:"title"`
		IsFavorite bool   `json:"is_favorite"`
	}
	decode(t, rec, &saved)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "Video "+testVideoID, saved.Title)
	assert.False(t, saved.IsFavorite)

	idPath := fmt.Sprintf("/v1/history/%d", saved.ID)

	rec = app.do(t, http.MethodGet, "/v1/history", "")
	var list struct {
		Records []struct {
			ID int64 `json:"id"`
		} `json:"records"`
		Total int `json:"total"`
	}
	decode(t, rec, &list)
	assert.Equal(t, 1, list.Total)

	rec = app.do(t, http.MethodGet, idPath, "")
	var full struct {
		Transcript string `json:"transcript"`
		Timestamps []struct {
			Text string `json:"text"`
		} `json:"timestamps"`
	}
	decode(t, rec, &full)
	assert.Equal(t, " Hello world", full.Transcript)
	assert.Len(t, full.Timestamps, 2)

	rec = app.do(t, http.MethodPatch, idPath+"/favorite", "")
	decode(t, rec, &saved)
	assert.True(t, saved.IsFavorite)

	// Chat, then load the saved record: chat must be cleared
	rec = app.do(t, http.MethodPost, "/v1/session/chat", `{"question":"q?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodPost, idPath+"/load", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var loaded struct {
		VideoID string            `json:"video_id"`
		Chat    []json.RawMessage `json:"chat"`
	}
	decode(t, rec, &loaded)
	assert.Equal(t, testVideoID, loaded.VideoID)
	assert.Empty(t, loaded.Chat)

	rec = app.do(t, http.MethodGet, idPath+"/export?format=md", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "summary_"+testVideoID+".md")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "# YouTube Video Summary"))

	rec = app.do(t, http.MethodDelete, idPath, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodDelete, idPath, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = app.do(t, http.MethodPatch, idPath+"/favorite", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodGet, "/v1/history/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	publisher := &stubPublisher{}
	app := newTestApp(t, publisher)
	app.summarize(t)

	rec := app.do(t, http.MethodGet, "/v1/session/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "summary_"+testVideoID+".txt")
	assert.Contains(t, rec.Body.String(), "KEY TIMESTAMPS")

	rec = app.do(t, http.MethodGet, "/v1/session/export?format=pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	rec = app.do(t, http.MethodGet, "/v1/session/export?format=docx", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPost, "/v1/session/export/publish?format=md", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var pub struct {
		Object   string `json:"object"`
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}
	decode(t, rec, &pub)
	assert.Equal(t, "summary_"+testVideoID+".md", pub.Filename)
	assert.True(t, strings.HasPrefix(pub.Object, "exports/"+app.sessionID+"/"))
	assert.Contains(t, pub.URL, pub.Object)

	rec = app.do(t, http.MethodGet, "/v1/session/exports", "")
	var listed struct {
		Objects []string `json:"objects"`
	}
	decode(t, rec, &listed)
	assert.Equal(t, []string{pub.Object}, listed.Objects)
}

func TestExport_PublishingDisabled(t *testing.T) {
	app := newTestApp(t, nil)
	app.summarize(t)

	rec := app.do(t, http.MethodPost, "/v1/session/export/publish", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	rec = app.do(t, http.MethodGet, "/v1/session/exports", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	app := newTestApp(t, nil)
	app.summarize(t)

	other := &testApp{e: app.e, sessionID: uuid.NewString()}
	rec := other.do(t, http.MethodGet, "/v1/session", "")
	var sess struct {
		HasTranscript bool `json:"has_transcript"`
	}
	decode(t, rec, &sess)
	assert.False(t, sess.HasTranscript)

	rec = app.do(t, http.MethodDelete, "/v1/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodGet, "/v1/session", "")
	decode(t, rec, &sess)
	assert.False(t, sess.HasTranscript)
}
