package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/librisapp/libris-backend/internal/model"
)

func sampleBook() *model.Book {
	return &model.Book{Title: "Dune", Author: "Frank Herbert"}
}

func sampleQuotes() []model.Quote {
	return []model.Quote{
		{Text: "Fear is the mind-killer", Favorite: true, CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{Text: "The spice must flow", CreatedAt: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)},
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		raw  string
		want Format
	}{
		{"csv", FormatCSV},
		{"CSV", FormatCSV},
		{"pdf", FormatPDF},
		{"txt", FormatTXT},
		{"", FormatTXT},
		{"xlsx", FormatTXT},
	}
	for _, c := range cases {
		if got := ParseFormat(c.raw); got != c.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestFilename(t *testing.T) {
	if got := FormatCSV.Filename("Dune"); got != "Dune-quotes.csv" {
		t.Errorf("got %q", got)
	}
	if got := FormatTXT.Filename(""); got != "book-quotes.txt" {
		t.Errorf("empty title fallback: got %q", got)
	}
}

func TestContentType(t *testing.T) {
	if got := FormatCSV.ContentType(); got != "text/csv" {
		t.Errorf("csv: got %q", got)
	}
	if got := FormatPDF.ContentType(); got != "application/pdf" {
		t.Errorf("pdf: got %q", got)
	}
	if got := FormatTXT.ContentType(); got != "text/plain" {
		t.Errorf("txt: got %q", got)
	}
}

func TestRenderTXT(t *testing.T) {
	data, err := Render(FormatTXT, sampleBook(), sampleQuotes())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "Quotes — Dune\n\n") {
		t.Errorf("missing header, got %q", out)
	}
	if !strings.Contains(out, "1. Fear is the mind-killer\n\n") {
		t.Errorf("missing first quote, got %q", out)
	}
	if !strings.Contains(out, "2. The spice must flow\n\n") {
		t.Errorf("missing second quote, got %q", out)
	}
}

func TestRenderTXTEmpty(t *testing.T) {
	data, err := Render(FormatTXT, sampleBook(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(data) != "Quotes — Dune\n\n" {
		t.Errorf("got %q", string(data))
	}
}

func TestRenderCSV(t *testing.T) {
	data, err := Render(FormatCSV, sampleBook(), sampleQuotes())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	header := strings.Join(rows[0], ",")
	if header != "index,text,favorite,created_at" {
		t.Errorf("header: got %q", header)
	}
	if rows[1][0] != "1" || rows[1][1] != "Fear is the mind-killer" || rows[1][2] != "yes" {
		t.Errorf("row 1: got %v", rows[1])
	}
	if rows[1][3] != "2024-03-01T10:00:00Z" {
		t.Errorf("row 1 timestamp: got %q", rows[1][3])
	}
	if rows[2][2] != "no" {
		t.Errorf("row 2 favorite: got %q", rows[2][2])
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := Render(FormatPDF, sampleBook(), sampleQuotes())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF document")
	}
}

func TestRenderPDFNonASCII(t *testing.T) {
	book := &model.Book{Title: "Cien años de soledad", Author: "Gabriel García Márquez"}
	quotes := []model.Quote{
		{Text: "“Muchos años después, frente al pelotón de fusilamiento…”"},
	}

	// Curly quotes and accents go through the cp1252 translator instead of
	// leaking raw UTF-8 bytes into the page stream.
	data, err := Render(FormatPDF, book, quotes)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF document")
	}
}
