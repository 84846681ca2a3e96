package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
)

func sampleDoc() Document {
	return Document{
		VideoID:     "dQw4w9WgXcQ",
		VideoURL:    "https://youtu.be/dQw4w9WgXcQ",
		Language:    "English",
		Summary:     "- point one\n- point two",
		GeneratedAt: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
	}
}

func TestText(t *testing.T) {
	ruler := strings.Repeat("=", 50)
	want := "YouTube Video Summary\n" + ruler + "\n\n" +
		"Video URL: https://youtu.be/dQw4w9WgXcQ\nLanguage: English\nGenerated: 2026-03-04 05:06\n\n" +
		ruler + "\nSUMMARY\n" + ruler + "\n\n- point one\n- point two\n"
	assert.Equal(t, want, Text(sampleDoc()))

	doc := sampleDoc()
	doc.KeyMoments = "TIMESTAMP: Intro - hello"
	assert.True(t, strings.HasSuffix(Text(doc), "\n"+ruler+"\nKEY TIMESTAMPS\n"+ruler+"\n\nTIMESTAMP: Intro - hello\n"))
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleDoc())
	assert.True(t, strings.HasPrefix(md, "# YouTube Video Summary\n\n**Video URL:** https://youtu.be/dQw4w9WgXcQ  \n"))
	assert.Contains(t, md, "**Generated:** 2026-03-04 05:06\n\n---\n\n## Summary\n\n- point one")
	assert.NotContains(t, md, "Key Timestamps")

	doc := sampleDoc()
	doc.KeyMoments = "moments"
	assert.True(t, strings.HasSuffix(Markdown(doc), "\n---\n\n## Key Timestamps\n\nmoments\n"))
}

func TestPDF(t *testing.T) {
	doc := sampleDoc()
	doc.Summary = "Café ✓ naïve"
	doc.KeyMoments = "TIMESTAMP: Intro - hello"

	body, err := PDF(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		format      Format
		contentType string
	}{
		{FormatText, "text/plain; charset=utf-8"},
		{FormatMarkdown, "text/markdown; charset=utf-8"},
		{FormatPDF, "application/pdf"},
	} {
		out, err := Render(tc.format, sampleDoc())
		require.NoError(t, err)
		assert.Equal(t, tc.contentType, out.ContentType)
		assert.Equal(t, "summary_dQw4w9WgXcQ."+string(tc.format), out.Filename)
		assert.NotEmpty(t, out.Body)
	}

	_, err := Render(Format("docx"), sampleDoc())
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("markdown")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("html")
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestFromSession(t *testing.T) {
	now := time.Now()
	_, err := FromSession(entities.NewSession("sid"), now)
	assert.ErrorIs(t, err, usecaseErrors.ErrNoActiveTranscript)

	sess := entities.NewSession("sid").WithTranscript("abc", "u", entities.NewTranscript("German (de)", nil))
	_, err = FromSession(sess, now)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)

	doc, err := FromSession(sess.WithSummary("sum", "km"), now)
	require.NoError(t, err)
	assert.Equal(t, Document{VideoID: "abc", VideoURL: "u", Language: "German (de)", Summary: "sum", KeyMoments: "km", GeneratedAt: now}, doc)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00", FormatTimestamp(0))
	assert.Equal(t, "00:59", FormatTimestamp(59.9))
	assert.Equal(t, "01:05", FormatTimestamp(65))
	assert.Equal(t, "61:01", FormatTimestamp(3661))
}
