package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/librisapp/libris-backend/internal/model"
)

// BookRepository handles book data access.
type BookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

const bookColumns = `id, owner_id, title, author, year, genre, rating, summary, cover_image_url, favorite, created_at, updated_at`

func scanBook(row interface{ Scan(...any) error }, b *model.Book) error {
	return row.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Author, &b.Year, &b.Genre,
		&b.Rating, &b.Summary, &b.CoverImageURL, &b.Favorite, &b.CreatedAt, &b.UpdatedAt)
}

// Create inserts a new book.
func (r *BookRepository) Create(ctx context.Context, b *model.Book) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO books (owner_id, title, author, year, genre, rating, summary, cover_image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, favorite, created_at, updated_at`,
		b.OwnerID, b.Title, b.Author, b.Year, b.Genre, b.Rating, b.Summary, b.CoverImageURL,
	).Scan(&b.ID, &b.Favorite, &b.CreatedAt, &b.UpdatedAt)
}

// GetByID retrieves a single book.
func (r *BookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var b model.Book
	row := r.pool.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	if err := scanBook(row, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByOwner retrieves the owner's books newest-first, optionally restricted
// to favorites and/or a case-insensitive substring match across
// title/author/genre.
func (r *BookRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter model.BookListFilter) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE owner_id = $1`
	args := []any{ownerID}

	if filter.FavoriteOnly {
		query += ` AND favorite = TRUE`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (title ILIKE $%d OR author ILIKE $%d OR genre ILIKE $%d)`, n, n, n)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Update persists all mutable fields of a book.
func (r *BookRepository) Update(ctx context.Context, b *model.Book) error {
	return r.pool.QueryRow(ctx,
		`UPDATE books
		 SET title = $1, author = $2, year = $3, genre = $4, rating = $5,
		     summary = $6, cover_image_url = $7, favorite = $8, updated_at = NOW()
		 WHERE id = $9
		 RETURNING updated_at`,
		b.Title, b.Author, b.Year, b.Genre, b.Rating, b.Summary, b.CoverImageURL, b.Favorite, b.ID,
	).Scan(&b.UpdatedAt)
}

// Delete removes a book; its quotes go with it via ON DELETE CASCADE.
// Attachment blobs are not cleaned up here.
func (r *BookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	return err
}
