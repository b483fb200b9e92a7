package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Difficulty levels for interview questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// DefaultModule is assigned when a question is created without a module.
const DefaultModule = "General"

// InterviewQuestion represents an entry in the interview-question bank.
// Bookmarks and favorites are per-user membership sets; the model carries
// their sizes plus the acting user's membership where relevant.
type InterviewQuestion struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	Owner         *OwnerRef  `json:"owner,omitempty"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	Tags          []string   `json:"tags"`
	Module        string     `json:"module"`
	Difficulty    Difficulty `json:"difficulty"`
	IsPublished   bool       `json:"is_published"`
	BookmarkCount int        `json:"bookmark_count"`
	FavoriteCount int        `json:"favorite_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateQuestionRequest is the payload for creating an interview question.
type CreateQuestionRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=500"`
	Body        string   `json:"body" binding:"required,min=1,max=20000"`
	Tags        []string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
	Module      string   `json:"module" binding:"max=100"`
	Difficulty  string   `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	IsPublished *bool    `json:"is_published"`
}

// UpdateQuestionRequest is the payload for partially updating a question.
// Only the allow-listed fields below can ever be changed.
type UpdateQuestionRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=500"`
	Body        *string  `json:"body" binding:"omitempty,min=1,max=20000"`
	Tags        []string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
	Module      *string  `json:"module" binding:"omitempty,max=100"`
	Difficulty  *string  `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	IsPublished *bool    `json:"is_published"`
}

// QuestionListQuery captures the list endpoint's filters, sort and paging.
type QuestionListQuery struct {
	Search       string
	Tags         []string
	Module       string
	Difficulty   string
	OwnerID      *uuid.UUID
	BookmarkedBy *uuid.UUID
	FavoritedBy  *uuid.UUID
	SortColumn   string
	SortDesc     bool
	Page         int
	Limit        int
}

// Sortable columns, keyed by the API's sort names.
var questionSortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"title":      "title",
	"module":     "module",
	"difficulty": "difficulty",
}

// Normalize clamps paging, resolves the signed sort key against the sortable
// column allow-list and trims tag filters. Unknown sort keys fall back to
// newest-first.
func (q *QuestionListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	tags := q.Tags[:0]
	for _, t := range q.Tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	q.Tags = tags

	key := q.SortColumn
	desc := false
	if strings.HasPrefix(key, "-") {
		desc = true
		key = key[1:]
	}
	col, ok := questionSortColumns[key]
	if !ok {
		col, desc = "created_at", true
	}
	q.SortColumn = col
	q.SortDesc = desc
}

// Offset returns the row offset for the normalized page/limit pair.
func (q *QuestionListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TagCount is one entry of the top-tags analytics ranking.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// QuestionAnalytics is the admin analytics summary.
type QuestionAnalytics struct {
	TotalQuestions int            `json:"total_questions"`
	TotalTags      int            `json:"total_tags"`
	TopTags        []TagCount     `json:"top_tags"`
	ByModule       map[string]int `json:"by_module"`
	ByDifficulty   map[string]int `json:"by_difficulty"`
}
