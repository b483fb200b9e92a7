package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/librisapp/libris-backend/internal/middleware"
	"github.com/librisapp/libris-backend/internal/model"
	"github.com/librisapp/libris-backend/internal/response"
	"github.com/librisapp/libris-backend/internal/service"
	"github.com/librisapp/libris-backend/internal/validator"
)

// InterviewQuestionHandler handles question-bank endpoints.
type InterviewQuestionHandler struct {
	questionService *service.QuestionService
}

// NewInterviewQuestionHandler creates a new InterviewQuestionHandler.
func NewInterviewQuestionHandler(questionService *service.QuestionService) *InterviewQuestionHandler {
	return &InterviewQuestionHandler{questionService: questionService}
}

// Create godoc
// POST /api/v1/interview-questions
func (h *InterviewQuestionHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// List godoc
// GET /api/v1/interview-questions?q=&tag=&tags=&module=&difficulty=&bookmarked=&favorited=&owner=&page=&limit=&sort=
func (h *InterviewQuestionHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	query := model.QuestionListQuery{
		Search:     c.Query("q"),
		Module:     c.Query("module"),
		Difficulty: c.Query("difficulty"),
		SortColumn: c.Query("sort"),
	}

	if tag := c.Query("tag"); tag != "" {
		query.Tags = []string{tag}
	}
	if tags := c.Query("tags"); tags != "" {
		query.Tags = strings.Split(tags, ",")
	}

	// Owner filter only applies when the value is a well-formed identifier.
	if owner := c.Query("owner"); owner != "" {
		if ownerID, err := uuid.Parse(owner); err == nil {
			query.OwnerID = &ownerID
		}
	}

	if c.Query("bookmarked") == "true" {
		query.BookmarkedBy = &claims.UserID
	}
	if c.Query("favorited") == "true" {
		query.FavoritedBy = &claims.UserID
	}

	query.Page, _ = strconv.Atoi(c.Query("page"))
	query.Limit, _ = strconv.Atoi(c.Query("limit"))

	questions, pagination, err := h.questionService.List(c.Request.Context(), query)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": questions}, pagination)
}

// Get godoc
// GET /api/v1/interview-questions/:id
func (h *InterviewQuestionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Update godoc
// PUT /api/v1/interview-questions/:id
// Owner or admin; only the allow-listed fields are applied.
func (h *InterviewQuestionHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, claims.UserID, claims.Role, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Delete godoc
// DELETE /api/v1/interview-questions/:id
// Owner or admin.
func (h *InterviewQuestionHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id, claims.UserID, claims.Role); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "question deleted successfully"})
}

// ToggleBookmark godoc
// POST /api/v1/interview-questions/:id/bookmark
func (h *InterviewQuestionHandler) ToggleBookmark(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	bookmarked, count, err := h.questionService.ToggleBookmark(c.Request.Context(), id, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookmarked": bookmarked, "count": count})
}

// ToggleFavorite godoc
// POST /api/v1/interview-questions/:id/favorite
func (h *InterviewQuestionHandler) ToggleFavorite(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	favorited, count, err := h.questionService.ToggleFavorite(c.Request.Context(), id, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"favorited": favorited, "count": count})
}

// Analytics godoc
// GET /api/v1/interview-questions/analytics/summary
// Admin only; the role gate is applied in the router.
func (h *InterviewQuestionHandler) Analytics(c *gin.Context) {
	analytics, err := h.questionService.Analytics(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"analytics": analytics})
}
