package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/librisapp/libris-backend/internal/model"
)

// InterviewQuestionRepository handles question-bank data access.
type InterviewQuestionRepository struct {
	pool *pgxpool.Pool
}

// NewInterviewQuestionRepository creates a new InterviewQuestionRepository.
func NewInterviewQuestionRepository(pool *pgxpool.Pool) *InterviewQuestionRepository {
	return &InterviewQuestionRepository{pool: pool}
}

const questionColumns = `q.id, q.owner_id, q.title, q.body, q.tags, q.module, q.difficulty, q.is_published,
	(SELECT COUNT(*) FROM question_bookmarks b WHERE b.question_id = q.id) AS bookmark_count,
	(SELECT COUNT(*) FROM question_favorites f WHERE f.question_id = q.id) AS favorite_count,
	q.created_at, q.updated_at`

// Create inserts a new question.
func (r *InterviewQuestionRepository) Create(ctx context.Context, q *model.InterviewQuestion) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO interview_questions (owner_id, title, body, tags, module, difficulty, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		q.OwnerID, q.Title, q.Body, q.Tags, q.Module, q.Difficulty, q.IsPublished,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID retrieves a single question with its owner reference and set sizes.
func (r *InterviewQuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InterviewQuestion, error) {
	var q model.InterviewQuestion
	var owner model.OwnerRef
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+`, u.id, u.name
		 FROM interview_questions q
		 JOIN users u ON u.id = q.owner_id
		 WHERE q.id = $1`, id,
	).Scan(&q.ID, &q.OwnerID, &q.Title, &q.Body, &q.Tags, &q.Module, &q.Difficulty, &q.IsPublished,
		&q.BookmarkCount, &q.FavoriteCount, &q.CreatedAt, &q.UpdatedAt, &owner.ID, &owner.Name)
	if err != nil {
		return nil, err
	}
	q.Owner = &owner
	return &q, nil
}

// buildListWhere turns a normalized list query into a WHERE clause and args.
func buildListWhere(f model.QuestionListQuery) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Search != "" {
		add(`to_tsvector('english', q.title || ' ' || q.body) @@ plainto_tsquery('english', $%d)`, f.Search)
	}
	if len(f.Tags) > 0 {
		add(`q.tags && $%d`, f.Tags)
	}
	if f.Module != "" {
		add(`q.module = $%d`, f.Module)
	}
	if f.Difficulty != "" {
		add(`q.difficulty = $%d`, f.Difficulty)
	}
	if f.OwnerID != nil {
		add(`q.owner_id = $%d`, *f.OwnerID)
	}
	if f.BookmarkedBy != nil {
		add(`EXISTS (SELECT 1 FROM question_bookmarks b WHERE b.question_id = q.id AND b.user_id = $%d)`, *f.BookmarkedBy)
	}
	if f.FavoritedBy != nil {
		add(`EXISTS (SELECT 1 FROM question_favorites f2 WHERE f2.question_id = q.id AND f2.user_id = $%d)`, *f.FavoritedBy)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List retrieves a filtered, sorted, paginated page of questions with their
// owner references, plus the total count of matching rows. The query must be
// normalized first; the sort column comes from the model's allow-list, never
// straight from user input.
func (r *InterviewQuestionRepository) List(ctx context.Context, f model.QuestionListQuery) ([]model.InterviewQuestion, int, error) {
	where, args := buildListWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM interview_questions q`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s, u.id, u.name
		 FROM interview_questions q
		 JOIN users u ON u.id = q.owner_id%s
		 ORDER BY q.%s %s LIMIT $%d OFFSET $%d`,
		questionColumns, where, f.SortColumn, dir, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []model.InterviewQuestion
	for rows.Next() {
		var q model.InterviewQuestion
		var owner model.OwnerRef
		if err := rows.Scan(&q.ID, &q.OwnerID, &q.Title, &q.Body, &q.Tags, &q.Module, &q.Difficulty,
			&q.IsPublished, &q.BookmarkCount, &q.FavoriteCount, &q.CreatedAt, &q.UpdatedAt,
			&owner.ID, &owner.Name); err != nil {
			return nil, 0, err
		}
		q.Owner = &owner
		questions = append(questions, q)
	}
	return questions, total, rows.Err()
}

// Update persists the mutable fields of a question.
func (r *InterviewQuestionRepository) Update(ctx context.Context, q *model.InterviewQuestion) error {
	return r.pool.QueryRow(ctx,
		`UPDATE interview_questions
		 SET title = $1, body = $2, tags = $3, module = $4, difficulty = $5, is_published = $6, updated_at = NOW()
		 WHERE id = $7
		 RETURNING updated_at`,
		q.Title, q.Body, q.Tags, q.Module, q.Difficulty, q.IsPublished, q.ID,
	).Scan(&q.UpdatedAt)
}

// Delete removes a question; membership rows go with it via ON DELETE CASCADE.
func (r *InterviewQuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM interview_questions WHERE id = $1`, id)
	return err
}

// ToggleMembership flips the user's membership in the named set table and
// returns the resulting membership state plus the set size. The table name is
// fixed by the callers (question_bookmarks or question_favorites).
func (r *InterviewQuestionRepository) toggleMembership(ctx context.Context, table string, questionID, userID uuid.UUID) (bool, int, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM `+table+` WHERE question_id = $1 AND user_id = $2`, questionID, userID)
	if err != nil {
		return false, 0, err
	}

	member := false
	if tag.RowsAffected() == 0 {
		if _, err := r.pool.Exec(ctx,
			`INSERT INTO `+table+` (question_id, user_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, questionID, userID); err != nil {
			return false, 0, err
		}
		member = true
	}

	var count int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE question_id = $1`, questionID,
	).Scan(&count); err != nil {
		return false, 0, err
	}
	return member, count, nil
}

// ToggleBookmark flips the user's bookmark on a question.
func (r *InterviewQuestionRepository) ToggleBookmark(ctx context.Context, questionID, userID uuid.UUID) (bool, int, error) {
	return r.toggleMembership(ctx, "question_bookmarks", questionID, userID)
}

// ToggleFavorite flips the user's favorite on a question.
func (r *InterviewQuestionRepository) ToggleFavorite(ctx context.Context, questionID, userID uuid.UUID) (bool, int, error) {
	return r.toggleMembership(ctx, "question_favorites", questionID, userID)
}

// Analytics aggregates the question bank: totals, per-module and
// per-difficulty counts, and the topN tags by usage.
func (r *InterviewQuestionRepository) Analytics(ctx context.Context, topN int) (*model.QuestionAnalytics, error) {
	a := &model.QuestionAnalytics{
		ByModule:     make(map[string]int),
		ByDifficulty: make(map[string]int),
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        (SELECT COUNT(DISTINCT t) FROM interview_questions, unnest(tags) AS t)
		 FROM interview_questions`,
	).Scan(&a.TotalQuestions, &a.TotalTags); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT t, COUNT(*) AS c
		 FROM interview_questions, unnest(tags) AS t
		 GROUP BY t
		 ORDER BY c DESC, t ASC
		 LIMIT $1`, topN)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tc model.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		a.TopTags = append(a.TopTags, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.groupCount(ctx, `SELECT module, COUNT(*) FROM interview_questions GROUP BY module`, a.ByModule); err != nil {
		return nil, err
	}
	if err := r.groupCount(ctx, `SELECT difficulty, COUNT(*) FROM interview_questions GROUP BY difficulty`, a.ByDifficulty); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *InterviewQuestionRepository) groupCount(ctx context.Context, query string, dst map[string]int) error {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		dst[key] = n
	}
	return rows.Err()
}
