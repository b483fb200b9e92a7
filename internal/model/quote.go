package model

import (
	"time"

	"github.com/google/uuid"
)

// FileType classifies a quote attachment.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypePDF   FileType = "pdf"
)

// Quote represents a passage saved from a book, optionally backed by an
// uploaded image or PDF. The file fields are set together or not at all.
type Quote struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	BookID    uuid.UUID `json:"book_id"`
	Text      string    `json:"text,omitempty"`
	FileURL   *string   `json:"file_url,omitempty"`
	FileID    *string   `json:"file_id,omitempty"`
	FileType  *FileType `json:"file_type,omitempty"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"created_at"`
}

// HasFile reports whether the quote carries an attachment.
func (q *Quote) HasFile() bool {
	return q.FileID != nil && *q.FileID != ""
}

// UpdateQuoteRequest is the payload for partially updating a quote.
// A replacement file, if any, arrives as a separate multipart part.
type UpdateQuoteRequest struct {
	Text     *string `form:"text" binding:"omitempty,max=10000"`
	Favorite *bool   `form:"favorite"`
}
