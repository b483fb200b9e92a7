package model

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a book on a user's shelf.
type Book struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author,omitempty"`
	Year          int       `json:"year,omitempty"`
	Genre         string    `json:"genre,omitempty"`
	Rating        float64   `json:"rating"`
	Summary       string    `json:"summary,omitempty"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	Favorite      bool      `json:"favorite"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateBookRequest is the payload for creating a book.
type CreateBookRequest struct {
	Title         string  `json:"title" binding:"required,min=1,max=300"`
	Author        string  `json:"author" binding:"max=200"`
	Year          int     `json:"year" binding:"omitempty,min=0,max=3000"`
	Genre         string  `json:"genre" binding:"max=100"`
	Rating        float64 `json:"rating" binding:"min=0,max=5"`
	Summary       string  `json:"summary" binding:"max=5000"`
	CoverImageURL string  `json:"cover_image_url" binding:"omitempty,url"`
}

// UpdateBookRequest is the payload for partially updating a book.
// Only fields present in the body are applied.
type UpdateBookRequest struct {
	Title         *string  `json:"title" binding:"omitempty,min=1,max=300"`
	Author        *string  `json:"author" binding:"omitempty,max=200"`
	Year          *int     `json:"year" binding:"omitempty,min=0,max=3000"`
	Genre         *string  `json:"genre" binding:"omitempty,max=100"`
	Rating        *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	Summary       *string  `json:"summary" binding:"omitempty,max=5000"`
	CoverImageURL *string  `json:"cover_image_url" binding:"omitempty,url"`
	Favorite      *bool    `json:"favorite"`
}

// BookListFilter narrows a user's book list.
type BookListFilter struct {
	FavoriteOnly bool
	Search       string
}
