package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/librisapp/libris-backend/internal/middleware"
	"github.com/librisapp/libris-backend/internal/model"
	"github.com/librisapp/libris-backend/internal/response"
	"github.com/librisapp/libris-backend/internal/service"
	"github.com/librisapp/libris-backend/internal/validator"
)

// BookHandler handles book endpoints.
type BookHandler struct {
	bookService *service.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bookService *service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// Create godoc
// POST /api/v1/books
func (h *BookHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateBookRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"book": book})
}

// List godoc
// GET /api/v1/books?favorite=&q=
// Lists the acting user's books newest-first, optionally restricted to
// favorites and/or a title/author/genre substring match.
func (h *BookHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	filter := model.BookListFilter{
		FavoriteOnly: c.Query("favorite") == "true",
		Search:       c.Query("q"),
	}

	books, err := h.bookService.List(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if books == nil {
		books = []model.Book{}
	}

	response.Success(c, http.StatusOK, gin.H{"books": books})
}

// Get godoc
// GET /api/v1/books/:id
// Reads are not owner-scoped; any authenticated caller may fetch a book.
func (h *BookHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	book, err := h.bookService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"book": book})
}

// Update godoc
// PUT /api/v1/books/:id
// Applies a partial update. Owner only.
func (h *BookHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateBookRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), id, claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"book": book})
}

// Delete godoc
// DELETE /api/v1/books/:id
// Owner only. The id must be a well-formed identifier.
func (h *BookHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.bookService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "book deleted successfully"})
}

// ToggleFavorite godoc
// POST /api/v1/books/:id/toggle-favorite
func (h *BookHandler) ToggleFavorite(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	book, err := h.bookService.ToggleFavorite(c.Request.Context(), id, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"book": book})
}
