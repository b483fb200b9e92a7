// Package export renders a book's quotes into downloadable documents.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/librisapp/libris-backend/internal/model"
)

// Format identifies a supported export format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
	FormatTXT Format = "txt"
)

// ParseFormat resolves a query-string format value, case-insensitive.
// Empty and unknown values fall back to txt rather than erroring.
func ParseFormat(raw string) Format {
	switch strings.ToLower(raw) {
	case "csv":
		return FormatCSV
	case "pdf":
		return FormatPDF
	default:
		return FormatTXT
	}
}

// ContentType returns the media type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain"
	}
}

// Filename derives the attachment filename from the book title,
// falling back to "book" when the title is empty.
func (f Format) Filename(title string) string {
	if title == "" {
		title = "book"
	}
	return fmt.Sprintf("%s-quotes.%s", title, f)
}

// Render produces the document for the chosen format.
// Quotes are expected in their stored order (newest first).
func Render(f Format, book *model.Book, quotes []model.Quote) ([]byte, error) {
	switch f {
	case FormatCSV:
		return renderCSV(quotes)
	case FormatPDF:
		return renderPDF(book, quotes)
	default:
		return renderTXT(book, quotes), nil
	}
}

func renderCSV(quotes []model.Quote) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"index", "text", "favorite", "created_at"}); err != nil {
		return nil, err
	}
	for i, q := range quotes {
		favorite := "no"
		if q.Favorite {
			favorite = "yes"
		}
		record := []string{
			fmt.Sprintf("%d", i+1),
			q.Text,
			favorite,
			q.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(book *model.Book, quotes []model.Quote) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 input so curly quotes and
	// accented text survive instead of rendering as mojibake.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := book.Title
	if title == "" {
		title = "Quotes"
	}
	pdf.SetFont("Helvetica", "U", 20)
	pdf.MultiCell(0, 10, tr(title), "", "L", false)
	pdf.Ln(4)

	if book.Author != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, tr("Author: "+book.Author), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 11)
	for i, q := range quotes {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, q.Text)), "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderTXT(book *model.Book, quotes []model.Quote) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Quotes — %s\n\n", book.Title)
	for i, q := range quotes {
		fmt.Fprintf(&sb, "%d. %s\n\n", i+1, q.Text)
	}
	return []byte(sb.String())
}
