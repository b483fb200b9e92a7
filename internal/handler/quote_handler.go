package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/librisapp/libris-backend/internal/export"
	"github.com/librisapp/libris-backend/internal/middleware"
	"github.com/librisapp/libris-backend/internal/model"
	"github.com/librisapp/libris-backend/internal/response"
	"github.com/librisapp/libris-backend/internal/service"
)

// QuoteHandler handles quote endpoints, including attachment upload and
// export.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// formFile returns the optional single file part, nil when absent.
func formFile(c *gin.Context) *multipart.FileHeader {
	header, err := c.FormFile("file")
	if err != nil {
		return nil
	}
	return header
}

// Create godoc
// POST /api/v1/books/:id/quotes (multipart)
// Creates a quote with text, a file, or both.
func (h *QuoteHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), claims.UserID, bookID, c.PostForm("text"), formFile(c))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quote": quote})
}

// List godoc
// GET /api/v1/books/:id/quotes
// Lists a book's quotes newest-first. Reads are not owner-scoped.
func (h *QuoteHandler) List(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	quotes, err := h.quoteService.ListForBook(c.Request.Context(), bookID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if quotes == nil {
		quotes = []model.Quote{}
	}

	response.Success(c, http.StatusOK, gin.H{"quotes": quotes})
}

// Update godoc
// PUT /api/v1/quotes/:id (multipart)
// Partial text/favorite update; a supplied file replaces the stored one.
func (h *QuoteHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	// Multipart form fields are applied only when present, so bind by hand.
	var req model.UpdateQuoteRequest
	if text, ok := c.GetPostForm("text"); ok {
		req.Text = &text
	}
	if raw, ok := c.GetPostForm("favorite"); ok {
		favorite := raw == "true"
		req.Favorite = &favorite
	}

	quote, err := h.quoteService.Update(c.Request.Context(), id, claims.UserID, &req, formFile(c))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quote": quote})
}

// Delete godoc
// DELETE /api/v1/quotes/:id
// Owner only; removes the attachment blob alongside the record.
func (h *QuoteHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "quote deleted successfully"})
}

// Export godoc
// GET /api/v1/books/:id/export?format=csv|pdf|txt
// Streams the book's quotes as a downloadable attachment. Unknown formats
// fall back to txt.
func (h *QuoteHandler) Export(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	format := export.ParseFormat(c.Query("format"))

	data, book, err := h.quoteService.Export(c.Request.Context(), bookID, format)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(book.Title)))
	c.Data(http.StatusOK, format.ContentType(), data)
}
