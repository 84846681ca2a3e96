package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
)

// Format is a supported export format
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

const (
	title        = "YouTube Video Summary"
	dateLayout   = "2006-01-02 15:04"
	rulerWidth   = 50
	contentText  = "text/plain; charset=utf-8"
	contentMD    = "text/markdown; charset=utf-8"
	contentPDF   = "application/pdf"
	pdfLineGap   = 5.0
	pdfCellH     = 10.0
	pdfBodyLineH = 5.0
)

// Document is the content of an exported summary
type Document struct {
	VideoID     string
	VideoURL    string
	Language    string
	Summary     string
	KeyMoments  string
	GeneratedAt time.Time
}

// Rendered is an export ready to be downloaded or published
type Rendered struct {
	Body        []byte
	ContentType string
	Extension   string
	Filename    string
}

// FromSession builds a document from the active summary of a session
func FromSession(sess entities.Session, now time.Time) (Document, error) {
	if !sess.HasTranscript() {
		return Document{}, usecaseErrors.ErrNoActiveTranscript
	}
	if strings.TrimSpace(sess.Summary) == "" {
		return Document{}, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, entities.ErrEmptySummary)
	}
	return Document{
		VideoID:     sess.VideoID,
		VideoURL:    sess.VideoURL,
		Language:    sess.Transcript.Language,
		Summary:     sess.Summary,
		KeyMoments:  sess.KeyMoments,
		GeneratedAt: now,
	}, nil
}

// FromRecord builds a document from a saved summary
func FromRecord(record *entities.HistoryRecord) Document {
	return Document{
		VideoID:     record.VideoID,
		VideoURL:    record.VideoURL,
		Language:    record.Language,
		Summary:     record.Summary,
		GeneratedAt: record.CreatedAt,
	}
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatPDF:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q", usecaseErrors.ErrInvalidInput, s)
}

// Render produces the export of doc in the given format
func Render(format Format, doc Document) (*Rendered, error) {
	out := &Rendered{Extension: string(format), Filename: Filename(doc.VideoID, format)}
	switch format {
	case FormatText:
		out.Body = []byte(Text(doc))
		out.ContentType = contentText
	case FormatMarkdown:
		out.Body = []byte(Markdown(doc))
		out.ContentType = contentMD
	case FormatPDF:
		body, err := PDF(doc)
		if err != nil {
			return nil, err
		}
		out.Body = body
		out.ContentType = contentPDF
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", usecaseErrors.ErrInvalidInput, format)
	}
	return out, nil
}

// Filename returns summary_{video id}.{ext}
func Filename(videoID string, format Format) string {
	return fmt.Sprintf("summary_%s.%s", videoID, format)
}

// Text renders the plain text export
func Text(doc Document) string {
	ruler := strings.Repeat("=", rulerWidth)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", title, ruler)
	fmt.Fprintf(&b, "Video URL: %s\nLanguage: %s\nGenerated: %s\n\n", doc.VideoURL, doc.Language, doc.GeneratedAt.Format(dateLayout))
	fmt.Fprintf(&b, "%s\nSUMMARY\n%s\n\n%s\n", ruler, ruler, doc.Summary)
	if doc.KeyMoments != "" {
		fmt.Fprintf(&b, "\n%s\nKEY TIMESTAMPS\n%s\n\n%s\n", ruler, ruler, doc.KeyMoments)
	}
	return b.String()
}

// Markdown renders the Markdown export
func Markdown(doc Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	// trailing double spaces are Markdown line breaks
	fmt.Fprintf(&b, "**Video URL:** %s  \n**Language:** %s  \n**Generated:** %s\n\n", doc.VideoURL, doc.Language, doc.GeneratedAt.Format(dateLayout))
	fmt.Fprintf(&b, "---\n\n## Summary\n\n%s\n", doc.Summary)
	if doc.KeyMoments != "" {
		fmt.Fprintf(&b, "\n---\n\n## Key Timestamps\n\n%s\n", doc.KeyMoments)
	}
	return b.String()
}

// PDF renders the PDF export. Core fonts only cover cp1252; other
// characters are replaced.
func PDF(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(doc.GeneratedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, pdfCellH, title, "", 1, "C", false, 0, "")
	pdf.Ln(pdfLineGap)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, pdfCellH, tr("Video: "+doc.VideoURL), "", 1, "", false, 0, "")
	pdf.CellFormat(0, pdfCellH, tr("Language: "+doc.Language), "", 1, "", false, 0, "")
	pdf.CellFormat(0, pdfCellH, "Generated: "+doc.GeneratedAt.Format(dateLayout), "", 1, "", false, 0, "")
	pdf.Ln(pdfLineGap)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, pdfCellH, "Summary:", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, pdfBodyLineH, tr(doc.Summary), "", "", false)

	if doc.KeyMoments != "" {
		pdf.Ln(pdfLineGap)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, pdfCellH, "Key Timestamps:", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, pdfBodyLineH, tr(doc.KeyMoments), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatTimestamp converts seconds to MM:SS
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
