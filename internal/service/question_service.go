package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/librisapp/libris-backend/internal/config"
	"github.com/librisapp/libris-backend/internal/model"
	"github.com/librisapp/libris-backend/internal/repository"
	"github.com/librisapp/libris-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// How many tags the analytics ranking returns.
const analyticsTopTags = 10

// How long the analytics summary may be served from cache.
const analyticsCacheTTL = time.Minute

// QuestionService handles interview-question business logic: CRUD with the
// owner-or-admin rule, filtered pagination, membership toggles and the
// admin analytics summary.
type QuestionService struct {
	questionRepo *repository.InterviewQuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.InterviewQuestionRepository, rdb *redis.Client, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// Create persists a new question owned by the acting user, applying the
// module/difficulty/published defaults.
func (s *QuestionService) Create(ctx context.Context, actingUser uuid.UUID, req *model.CreateQuestionRequest) (*model.InterviewQuestion, error) {
	question := &model.InterviewQuestion{
		OwnerID:     actingUser,
		Title:       req.Title,
		Body:        req.Body,
		Tags:        req.Tags,
		Module:      req.Module,
		Difficulty:  model.Difficulty(req.Difficulty),
		IsPublished: true,
	}
	if question.Tags == nil {
		question.Tags = []string{}
	}
	if question.Module == "" {
		question.Module = model.DefaultModule
	}
	if question.Difficulty == "" {
		question.Difficulty = model.DifficultyMedium
	}
	if req.IsPublished != nil {
		question.IsPublished = *req.IsPublished
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	s.invalidateAnalytics(ctx)
	return question, nil
}

// List returns a page of questions matching the query, plus pagination
// metadata computed from the total match count.
func (s *QuestionService) List(ctx context.Context, query model.QuestionListQuery) ([]model.InterviewQuestion, *response.Pagination, error) {
	query.Normalize()

	questions, total, err := s.questionRepo.List(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	if questions == nil {
		questions = []model.InterviewQuestion{}
	}

	pagination := &response.Pagination{
		Page:       query.Page,
		PerPage:    query.Limit,
		TotalItems: total,
		TotalPages: (total + query.Limit - 1) / query.Limit,
	}
	return questions, pagination, nil
}

// GetByID fetches a single question with its restricted owner view.
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.InterviewQuestion, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return question, nil
}

// getEditable fetches a question and enforces the owner-or-admin rule.
func (s *QuestionService) getEditable(ctx context.Context, id, actingUser uuid.UUID, actingRole string) (*model.InterviewQuestion, error) {
	question, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question.OwnerID != actingUser && actingRole != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return question, nil
}

// Update applies the allow-listed fields present in the payload. Allowed for
// the owner or an admin.
func (s *QuestionService) Update(ctx context.Context, id, actingUser uuid.UUID, actingRole string, req *model.UpdateQuestionRequest) (*model.InterviewQuestion, error) {
	question, err := s.getEditable(ctx, id, actingUser, actingRole)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		question.Title = *req.Title
	}
	if req.Body != nil {
		question.Body = *req.Body
	}
	if req.Tags != nil {
		question.Tags = req.Tags
	}
	if req.Module != nil {
		question.Module = *req.Module
	}
	if req.Difficulty != nil {
		question.Difficulty = model.Difficulty(*req.Difficulty)
	}
	if req.IsPublished != nil {
		question.IsPublished = *req.IsPublished
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	s.invalidateAnalytics(ctx)
	return question, nil
}

// Delete removes a question. Allowed for the owner or an admin.
func (s *QuestionService) Delete(ctx context.Context, id, actingUser uuid.UUID, actingRole string) error {
	if _, err := s.getEditable(ctx, id, actingUser, actingRole); err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAnalytics(ctx)
	return nil
}

// ToggleBookmark flips the acting user's bookmark on a question and returns
// the new membership state plus the set size.
func (s *QuestionService) ToggleBookmark(ctx context.Context, id, actingUser uuid.UUID) (bool, int, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return false, 0, err
	}
	return s.questionRepo.ToggleBookmark(ctx, id, actingUser)
}

// ToggleFavorite flips the acting user's favorite on a question and returns
// the new membership state plus the set size.
func (s *QuestionService) ToggleFavorite(ctx context.Context, id, actingUser uuid.UUID) (bool, int, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return false, 0, err
	}
	return s.questionRepo.ToggleFavorite(ctx, id, actingUser)
}

// Analytics returns the admin summary, served from Redis when fresh.
func (s *QuestionService) Analytics(ctx context.Context) (*model.QuestionAnalytics, error) {
	cacheKey := config.CacheKey.QuestionAnalyticsKey()

	if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var a model.QuestionAnalytics
		if err := json.Unmarshal(cached, &a); err == nil {
			return &a, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Analytics cache read failed")
	}

	analytics, err := s.questionRepo.Analytics(ctx, analyticsTopTags)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(analytics); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, payload, analyticsCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Analytics cache write failed")
		}
	}
	return analytics, nil
}

// invalidateAnalytics drops the cached summary after a mutation.
func (s *QuestionService) invalidateAnalytics(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.QuestionAnalyticsKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Analytics cache invalidation failed")
	}
}
