package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"lyro/internal/cache"
	"lyro/internal/model"
	"lyro/internal/repository"
)

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrTopicNotFound   = errors.New("topic not found")
)

// SubjectService handles subject and topic reference data
type SubjectService struct {
	subjectRepo repository.SubjectRepo
	topicRepo   repository.TopicRepo
	topicCache  cache.TopicCache
	logger      *zap.Logger
}

// NewSubjectService creates a new subject service
func NewSubjectService(subjectRepo repository.SubjectRepo, topicRepo repository.TopicRepo, topicCache cache.TopicCache, logger *zap.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		topicRepo:   topicRepo,
		topicCache:  topicCache,
		logger:      logger,
	}
}

// CreateSubject stores a new subject; (name, grade) uniqueness is enforced
// by the store index
func (s *SubjectService) CreateSubject(ctx context.Context, subject *model.Subject) (string, error) {
	id, err := s.subjectRepo.Create(ctx, subject)
	if err != nil {
		return "", fmt.Errorf("failed to create subject: %w", err)
	}
	return id, nil
}

// ListSubjects returns subjects, optionally narrowed to one grade
func (s *SubjectService) ListSubjects(ctx context.Context, grade int) ([]*model.Subject, error) {
	if grade > 0 {
		return s.subjectRepo.GetByGrade(ctx, grade)
	}
	return s.subjectRepo.GetAll(ctx)
}

// DeleteSubject removes a subject and every topic under it
func (s *SubjectService) DeleteSubject(ctx context.Context, id string) error {
	if err := s.topicRepo.DeleteBySubject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete topics: %w", err)
	}
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	s.invalidateTopics(ctx, id)
	return nil
}

// CreateTopic stores a new topic under an existing subject
func (s *SubjectService) CreateTopic(ctx context.Context, topic *model.Topic) (string, error) {
	subject, err := s.subjectRepo.GetByID(ctx, topic.SubjectID)
	if err != nil {
		return "", err
	}
	if subject == nil {
		return "", ErrSubjectNotFound
	}
	if topic.Grade == 0 {
		topic.Grade = subject.Grade
	}

	id, err := s.topicRepo.Create(ctx, topic)
	if err != nil {
		return "", fmt.Errorf("failed to create topic: %w", err)
	}
	s.invalidateTopics(ctx, topic.SubjectID)
	return id, nil
}

// TopicsForSubject returns the topic list for a subject's browse page
func (s *SubjectService) TopicsForSubject(ctx context.Context, subjectID string) ([]*model.Topic, error) {
	if cached, err := s.topicCache.Get(ctx, subjectID); err != nil {
		s.logger.Warn("topic cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	topics, err := s.topicRepo.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if err := s.topicCache.Set(ctx, subjectID, topics); err != nil {
		s.logger.Warn("topic cache write failed", zap.Error(err))
	}
	return topics, nil
}

// DeleteTopic removes one topic
func (s *SubjectService) DeleteTopic(ctx context.Context, id string) error {
	topic, err := s.topicRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if topic == nil {
		return ErrTopicNotFound
	}

	if err := s.topicRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	s.invalidateTopics(ctx, topic.SubjectID)
	return nil
}

func (s *SubjectService) invalidateTopics(ctx context.Context, subjectID string) {
	if err := s.topicCache.Invalidate(ctx, subjectID); err != nil {
		s.logger.Warn("topic cache invalidate failed", zap.Error(err))
	}
}
