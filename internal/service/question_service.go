package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"lyro/internal/cache"
	"lyro/internal/model"
	"lyro/internal/repository"
)

// ErrTopicRequired signals that a practice query arrived without a topic.
// Callers fall back to the full listing instead of failing the request.
var ErrTopicRequired = errors.New("topic is required")

// PracticeQuery is the raw learner input from the query string
type PracticeQuery struct {
	Topic   string
	Paper   string
	Subject string
	Grade   string
}

const regexMeta = `-/\^$*+?.()|[]{}`

// escapeRegex backslash-prefixes every regex metacharacter so upstream
// topic names like "3.1 Functions (Linear)" match literally
func escapeRegex(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(regexMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Resolve turns the raw query into a store filter plus sort.
//
// Topic is matched with a case-insensitive anchored regex, so the match is
// exact modulo case rather than a substring match. Paper and subject are
// independent optional exact filters. A grade that does not parse as an
// integer is dropped rather than filtered on.
func (q PracticeQuery) Resolve() (bson.M, *options.FindOptions, error) {
	topic := strings.TrimSpace(q.Topic)
	if topic == "" {
		return nil, nil, ErrTopicRequired
	}

	filter := bson.M{
		"topic": bson.M{
			"$regex":   "^" + escapeRegex(topic) + "$",
			"$options": "i",
		},
	}

	if paper := strings.TrimSpace(q.Paper); paper != "" {
		filter["paper"] = paper
	}
	if subject := strings.TrimSpace(q.Subject); subject != "" {
		filter["subject"] = subject
	}
	if grade, err := strconv.Atoi(strings.TrimSpace(q.Grade)); err == nil {
		filter["grade"] = grade
	}

	// Plain string field sort on questionNumber: "10" sorts before "2".
	// Kept for compatibility with existing data and consumers.
	opts := options.Find().SetSort(bson.D{{Key: "questionNumber", Value: 1}})

	return filter, opts, nil
}

// keyEscaper keeps field boundaries unambiguous when a field itself
// contains the delimiter
var keyEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`)

// CacheKey is the normalized form of the query used as the result cache key
func (q PracticeQuery) CacheKey() string {
	grade := ""
	if g, err := strconv.Atoi(strings.TrimSpace(q.Grade)); err == nil {
		grade = strconv.Itoa(g)
	}
	return fmt.Sprintf("%s|%s|%s|%s",
		keyEscaper.Replace(strings.ToLower(strings.TrimSpace(q.Topic))),
		keyEscaper.Replace(strings.TrimSpace(q.Paper)),
		keyEscaper.Replace(strings.TrimSpace(q.Subject)),
		grade,
	)
}

// QuestionService handles the practice question bank
type QuestionService struct {
	questionRepo  repository.QuestionRepo
	questionCache cache.QuestionCache
	logger        *zap.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(questionRepo repository.QuestionRepo, questionCache cache.QuestionCache, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		questionRepo:  questionRepo,
		questionCache: questionCache,
		logger:        logger,
	}
}

// Practice resolves a learner query and returns the matching questions
// ordered by question number
func (s *QuestionService) Practice(ctx context.Context, q PracticeQuery) ([]*model.Question, error) {
	filter, opts, err := q.Resolve()
	if err != nil {
		return nil, err
	}

	key := q.CacheKey()
	if cached, err := s.questionCache.Get(ctx, key); err != nil {
		s.logger.Warn("practice cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	questions, err := s.questionRepo.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}

	if err := s.questionCache.Set(ctx, key, questions); err != nil {
		s.logger.Warn("practice cache write failed", zap.Error(err))
	}

	return questions, nil
}

// Create stores a new question, applying legacy defaults
func (s *QuestionService) Create(ctx context.Context, question *model.Question) error {
	question.ApplyDefaults()
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return s.flushCache(ctx)
}

// Update replaces an existing question
func (s *QuestionService) Update(ctx context.Context, question *model.Question) error {
	question.ApplyDefaults()
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	return s.flushCache(ctx)
}

// Delete removes a question
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return s.flushCache(ctx)
}

// GetByID retrieves one question, nil when not found
func (s *QuestionService) GetByID(ctx context.Context, id string) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// GetAll lists the whole bank for the admin console
func (s *QuestionService) GetAll(ctx context.Context) ([]*model.Question, error) {
	return s.questionRepo.GetAll(ctx)
}

func (s *QuestionService) flushCache(ctx context.Context) error {
	if err := s.questionCache.Flush(ctx); err != nil {
		s.logger.Warn("practice cache flush failed", zap.Error(err))
	}
	return nil
}
