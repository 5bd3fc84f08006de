package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lyro/internal/model"
	"lyro/internal/repository"
)

var (
	ErrTestNotFound     = errors.New("test not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// NBTQuestionInput is the raw edit-form payload for one NBT question.
// Content and type fields arrive as ordered lists; a type list shorter
// than its content list means the tail defaults to text.
type NBTQuestionInput struct {
	QuestionContent      []string
	QuestionContentTypes []string
	Options              [][]string // option slots by index; missing slots are empty
	OptionTypes          [][]string
	CorrectOptionIndex   int
}

// normalizeBlocks pairs content with types into ordered blocks. Entries
// with no usable content after trimming are omitted entirely.
func normalizeBlocks(parts, types []string) []model.ContentBlock {
	blocks := make([]model.ContentBlock, 0, len(parts))
	for i, content := range parts {
		if strings.TrimSpace(content) == "" {
			continue
		}
		// Anything outside the text|image enum is coerced to text
		blockType := model.BlockText
		if i < len(types) && model.BlockType(types[i]) == model.BlockImage {
			blockType = model.BlockImage
		}
		blocks = append(blocks, model.ContentBlock{
			Type:    blockType,
			Content: content,
		})
	}
	return blocks
}

// flattenText concatenates text-typed block contents with sep. Image
// blocks never contribute to the flattened view.
func flattenText(blocks []model.ContentBlock, sep string) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Type == model.BlockText {
			parts = append(parts, b.Content)
		}
	}
	return strings.Join(parts, sep)
}

// BuildNBTQuestion normalizes raw form input into a question whose legacy
// fields are derived from the block-structured ones. Question text joins
// with blank lines; option text joins with single spaces. Exactly four
// option slots come out regardless of how many were submitted. The same
// input always produces the same question.
func BuildNBTQuestion(input NBTQuestionInput) model.NBTQuestion {
	questionContent := normalizeBlocks(input.QuestionContent, input.QuestionContentTypes)

	optionsContent := make([][]model.ContentBlock, model.OptionCount)
	options := make([]string, model.OptionCount)
	for i := 0; i < model.OptionCount; i++ {
		var parts, types []string
		if i < len(input.Options) {
			parts = input.Options[i]
		}
		if i < len(input.OptionTypes) {
			types = input.OptionTypes[i]
		}
		optionsContent[i] = normalizeBlocks(parts, types)
		options[i] = flattenText(optionsContent[i], " ")
	}

	return model.NBTQuestion{
		QuestionText:       flattenText(questionContent, "\n\n"),
		QuestionContent:    questionContent,
		Options:            options,
		OptionsContent:     optionsContent,
		CorrectOptionIndex: input.CorrectOptionIndex,
	}
}

// NBTService handles NBT test lifecycle and embedded question edits
type NBTService struct {
	testRepo repository.NBTTestRepo
}

// NewNBTService creates a new NBT service
func NewNBTService(testRepo repository.NBTTestRepo) *NBTService {
	return &NBTService{
		testRepo: testRepo,
	}
}

// CreateTest stores a new empty test
func (s *NBTService) CreateTest(ctx context.Context, test *model.NBTTest) (string, error) {
	if test.DurationMinutes == 0 {
		test.DurationMinutes = model.DefaultTestDuration
	}
	if test.Questions == nil {
		test.Questions = []model.NBTQuestion{}
	}
	return s.testRepo.Create(ctx, test)
}

// GetTest retrieves one test
func (s *NBTService) GetTest(ctx context.Context, id string) (*model.NBTTest, error) {
	test, err := s.testRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, ErrTestNotFound
	}
	return test, nil
}

// ListTests returns every test for the admin console
func (s *NBTService) ListTests(ctx context.Context) ([]*model.NBTTest, error) {
	return s.testRepo.GetAll(ctx)
}

// ListAvailable returns tests whose availability window covers now
func (s *NBTService) ListAvailable(ctx context.Context) ([]*model.NBTTest, error) {
	return s.testRepo.GetAvailable(ctx, time.Now())
}

// UpdateTestMeta updates title, description, window and duration without
// touching the question list
func (s *NBTService) UpdateTestMeta(ctx context.Context, id string, meta *model.NBTTest) (*model.NBTTest, error) {
	test, err := s.GetTest(ctx, id)
	if err != nil {
		return nil, err
	}

	test.Title = meta.Title
	test.Description = meta.Description
	test.AvailableFrom = meta.AvailableFrom
	test.AvailableUntil = meta.AvailableUntil
	if meta.DurationMinutes > 0 {
		test.DurationMinutes = meta.DurationMinutes
	}

	if err := s.testRepo.Update(ctx, test); err != nil {
		return nil, fmt.Errorf("failed to update test: %w", err)
	}
	return test, nil
}

// DeleteTest removes a test as a unit
func (s *NBTService) DeleteTest(ctx context.Context, id string) error {
	return s.testRepo.Delete(ctx, id)
}

// AppendQuestion normalizes the input and appends it to the test with a
// freshly generated stable identifier
func (s *NBTService) AppendQuestion(ctx context.Context, testID string, input NBTQuestionInput) (*model.NBTQuestion, error) {
	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	question := BuildNBTQuestion(input)
	question.ID = uuid.New().String()
	test.Questions = append(test.Questions, question)

	if err := s.testRepo.Update(ctx, test); err != nil {
		return nil, fmt.Errorf("failed to append question: %w", err)
	}
	return &question, nil
}

// UpdateQuestion replaces the question with the given stable id, keeping
// its id and position
func (s *NBTService) UpdateQuestion(ctx context.Context, testID, questionID string, input NBTQuestionInput) (*model.NBTQuestion, error) {
	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	for i := range test.Questions {
		if test.Questions[i].ID != questionID {
			continue
		}
		question := BuildNBTQuestion(input)
		question.ID = questionID
		test.Questions[i] = question

		if err := s.testRepo.Update(ctx, test); err != nil {
			return nil, fmt.Errorf("failed to update question: %w", err)
		}
		return &question, nil
	}

	return nil, ErrQuestionNotFound
}

// RemoveQuestion deletes the question with the given stable id, shifting
// later questions down by one position
func (s *NBTService) RemoveQuestion(ctx context.Context, testID, questionID string) error {
	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return err
	}

	for i := range test.Questions {
		if test.Questions[i].ID != questionID {
			continue
		}
		test.Questions = append(test.Questions[:i], test.Questions[i+1:]...)

		if err := s.testRepo.Update(ctx, test); err != nil {
			return fmt.Errorf("failed to remove question: %w", err)
		}
		return nil
	}

	return ErrQuestionNotFound
}

// QuestionIDAt translates a position-addressed question reference into its
// stable identifier. The index routes are a compatibility shim on top of
// id-based mutation.
func (s *NBTService) QuestionIDAt(ctx context.Context, testID string, index int) (string, error) {
	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(test.Questions) {
		return "", ErrQuestionNotFound
	}
	return test.Questions[index].ID, nil
}
