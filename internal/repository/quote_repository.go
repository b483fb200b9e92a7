package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/librisapp/libris-backend/internal/model"
)

// QuoteRepository handles quote data access.
type QuoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository creates a new QuoteRepository.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{pool: pool}
}

// Create inserts a new quote.
func (r *QuoteRepository) Create(ctx context.Context, q *model.Quote) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quotes (owner_id, book_id, text, file_url, file_id, file_type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, favorite, created_at`,
		q.OwnerID, q.BookID, q.Text, q.FileURL, q.FileID, q.FileType,
	).Scan(&q.ID, &q.Favorite, &q.CreatedAt)
}

// GetByID retrieves a single quote.
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	var q model.Quote
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, book_id, text, file_url, file_id, file_type, favorite, created_at
		 FROM quotes WHERE id = $1`, id,
	).Scan(&q.ID, &q.OwnerID, &q.BookID, &q.Text, &q.FileURL, &q.FileID, &q.FileType, &q.Favorite, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListByBook retrieves all quotes for a book, newest-first.
func (r *QuoteRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.Quote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner_id, book_id, text, file_url, file_id, file_type, favorite, created_at
		 FROM quotes WHERE book_id = $1
		 ORDER BY created_at DESC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []model.Quote
	for rows.Next() {
		var q model.Quote
		if err := rows.Scan(&q.ID, &q.OwnerID, &q.BookID, &q.Text, &q.FileURL, &q.FileID, &q.FileType, &q.Favorite, &q.CreatedAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// Update persists the mutable fields of a quote, including the file triple.
func (r *QuoteRepository) Update(ctx context.Context, q *model.Quote) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quotes
		 SET text = $1, favorite = $2, file_url = $3, file_id = $4, file_type = $5
		 WHERE id = $6`,
		q.Text, q.Favorite, q.FileURL, q.FileID, q.FileType, q.ID)
	return err
}

// Delete removes a quote.
func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	return err
}
