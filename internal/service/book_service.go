package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/librisapp/libris-backend/internal/model"
	"github.com/librisapp/libris-backend/internal/repository"
)

// BookService handles book business logic: owner-scoped CRUD, search and
// the favorite toggle.
type BookService struct {
	bookRepo *repository.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(bookRepo *repository.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// Create persists a new book owned by the acting user.
func (s *BookService) Create(ctx context.Context, actingUser uuid.UUID, req *model.CreateBookRequest) (*model.Book, error) {
	book := &model.Book{
		OwnerID:       actingUser,
		Title:         req.Title,
		Author:        req.Author,
		Year:          req.Year,
		Genre:         req.Genre,
		Rating:        req.Rating,
		Summary:       req.Summary,
		CoverImageURL: req.CoverImageURL,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// List returns the acting user's books, newest-first, with optional
// favorite/search narrowing.
func (s *BookService) List(ctx context.Context, actingUser uuid.UUID, filter model.BookListFilter) ([]model.Book, error) {
	return s.bookRepo.ListByOwner(ctx, actingUser, filter)
}

// GetByID fetches a single book. Reads are not owner-scoped.
func (s *BookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

// getOwned fetches a book and enforces ownership for mutating operations.
func (s *BookService) getOwned(ctx context.Context, id, actingUser uuid.UUID) (*model.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book.OwnerID != actingUser {
		return nil, ErrForbidden
	}
	return book, nil
}

// Update applies the fields present in the partial payload and persists.
func (s *BookService) Update(ctx context.Context, id, actingUser uuid.UUID, req *model.UpdateBookRequest) (*model.Book, error) {
	book, err := s.getOwned(ctx, id, actingUser)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Year != nil {
		book.Year = *req.Year
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}
	if req.Rating != nil {
		book.Rating = *req.Rating
	}
	if req.Summary != nil {
		book.Summary = *req.Summary
	}
	if req.CoverImageURL != nil {
		book.CoverImageURL = *req.CoverImageURL
	}
	if req.Favorite != nil {
		book.Favorite = *req.Favorite
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book owned by the acting user.
func (s *BookService) Delete(ctx context.Context, id, actingUser uuid.UUID) error {
	if _, err := s.getOwned(ctx, id, actingUser); err != nil {
		return err
	}
	return s.bookRepo.Delete(ctx, id)
}

// ToggleFavorite flips the favorite flag on a book owned by the acting user.
func (s *BookService) ToggleFavorite(ctx context.Context, id, actingUser uuid.UUID) (*model.Book, error) {
	book, err := s.getOwned(ctx, id, actingUser)
	if err != nil {
		return nil, err
	}
	book.Favorite = !book.Favorite
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}
