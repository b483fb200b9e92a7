package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/librisapp/libris-backend/internal/config"
	"github.com/librisapp/libris-backend/internal/export"
	"github.com/librisapp/libris-backend/internal/model"
	"github.com/librisapp/libris-backend/internal/repository"
	"github.com/librisapp/libris-backend/internal/storage"
	"github.com/rs/zerolog"
)

// Attachment MIME types accepted for quotes, mapped to file extensions.
var imageMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// QuoteService handles quote business logic including the attachment
// lifecycle against the blob store and quote export.
type QuoteService struct {
	quoteRepo *repository.QuoteRepository
	bookRepo  *repository.BookRepository
	store     storage.ObjectStore
	cfg       *config.Config
	log       zerolog.Logger
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	bookRepo *repository.BookRepository,
	store storage.ObjectStore,
	cfg *config.Config,
	log zerolog.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		bookRepo:  bookRepo,
		store:     store,
		cfg:       cfg,
		log:       log.With().Str("component", "quote_service").Logger(),
	}
}

// classifyAttachment maps a declared content type onto a file type, storage
// prefix and extension. Anything that is not an image or a PDF is rejected.
func classifyAttachment(contentType string) (model.FileType, string, error) {
	if ext, ok := imageMIMETypes[contentType]; ok {
		return model.FileTypeImage, "images/" + uuid.New().String() + ext, nil
	}
	if contentType == "application/pdf" {
		return model.FileTypePDF, "documents/" + uuid.New().String() + ".pdf", nil
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
}

// storeAttachment validates and uploads a multipart file, returning the
// stored file triple.
func (s *QuoteService) storeAttachment(ctx context.Context, header *multipart.FileHeader) (string, string, model.FileType, error) {
	fileType, key, err := classifyAttachment(header.Header.Get("Content-Type"))
	if err != nil {
		return "", "", "", err
	}
	if header.Size > s.cfg.MaxUploadBytes {
		return "", "", "", fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}

	f, err := header.Open()
	if err != nil {
		return "", "", "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	if err := s.store.Put(ctx, key, f, header.Size, header.Header.Get("Content-Type")); err != nil {
		return "", "", "", err
	}
	return s.store.URL(key), key, fileType, nil
}

// deleteAttachment best-effort removes a quote's blob. A failure is logged,
// not surfaced; the record mutation already happened or is about to.
func (s *QuoteService) deleteAttachment(ctx context.Context, q *model.Quote) {
	if !q.HasFile() {
		return
	}
	if err := s.store.Delete(ctx, *q.FileID); err != nil {
		s.log.Warn().Err(err).Str("file_id", *q.FileID).Msg("Failed to delete attachment blob")
	}
}

// Create persists a new quote for a book. The quote needs text, a file, or
// both; the referenced book must exist.
func (s *QuoteService) Create(ctx context.Context, actingUser, bookID uuid.UUID, text string, file *multipart.FileHeader) (*model.Quote, error) {
	if text == "" && file == nil {
		return nil, ErrTextOrFileRequired
	}

	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	quote := &model.Quote{
		OwnerID: actingUser,
		BookID:  bookID,
		Text:    text,
	}

	if file != nil {
		url, key, fileType, err := s.storeAttachment(ctx, file)
		if err != nil {
			return nil, err
		}
		quote.FileURL, quote.FileID, quote.FileType = &url, &key, &fileType
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		// The blob is orphaned if the insert fails; clean it up.
		s.deleteAttachment(ctx, quote)
		return nil, err
	}
	return quote, nil
}

// ListForBook returns all quotes for a book, newest-first. Reads are not
// owner-scoped.
func (s *QuoteService) ListForBook(ctx context.Context, bookID uuid.UUID) ([]model.Quote, error) {
	return s.quoteRepo.ListByBook(ctx, bookID)
}

// getOwned fetches a quote and enforces ownership for mutating operations.
func (s *QuoteService) getOwned(ctx context.Context, id, actingUser uuid.UUID) (*model.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if quote.OwnerID != actingUser {
		return nil, ErrForbidden
	}
	return quote, nil
}

// Update applies partial text/favorite changes and, when a new file is
// supplied, replaces the stored attachment (old blob deleted first).
func (s *QuoteService) Update(ctx context.Context, id, actingUser uuid.UUID, req *model.UpdateQuoteRequest, file *multipart.FileHeader) (*model.Quote, error) {
	quote, err := s.getOwned(ctx, id, actingUser)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		quote.Text = *req.Text
	}
	if req.Favorite != nil {
		quote.Favorite = *req.Favorite
	}

	if file != nil {
		s.deleteAttachment(ctx, quote)
		url, key, fileType, err := s.storeAttachment(ctx, file)
		if err != nil {
			return nil, err
		}
		quote.FileURL, quote.FileID, quote.FileType = &url, &key, &fileType
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// Delete removes a quote and its attachment blob, if any.
func (s *QuoteService) Delete(ctx context.Context, id, actingUser uuid.UUID) error {
	quote, err := s.getOwned(ctx, id, actingUser)
	if err != nil {
		return err
	}
	s.deleteAttachment(ctx, quote)
	return s.quoteRepo.Delete(ctx, id)
}

// Export renders all of a book's quotes, newest-first, in the given format.
// The book is returned alongside the document for filename derivation.
func (s *QuoteService) Export(ctx context.Context, bookID uuid.UUID, format export.Format) ([]byte, *model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	quotes, err := s.quoteRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}

	data, err := export.Render(format, book, quotes)
	if err != nil {
		return nil, nil, err
	}
	return data, book, nil
}
