package model

import "time"

// BlockType is the kind of content a block carries
type BlockType string

const (
	BlockText  BlockType = "text"
	BlockImage BlockType = "image"
)

// ContentBlock is one typed unit of question or option content.
// Text blocks carry raw text; image blocks carry a URL or data URI.
type ContentBlock struct {
	Type    BlockType `json:"type" bson:"type"`
	Content string    `json:"content" bson:"content"`
}

// OptionCount is the fixed number of answer slots per NBT question
const OptionCount = 4

// NBTQuestion is a multiple-choice question embedded in an NBTTest.
// The block-structured fields are authoritative; QuestionText and Options
// are flattened views kept in sync for older readers.
type NBTQuestion struct {
	ID                 string           `json:"id" bson:"id"`
	QuestionText       string           `json:"questionText" bson:"questionText"`
	QuestionContent    []ContentBlock   `json:"questionContent" bson:"questionContent"`
	Options            []string         `json:"options" bson:"options"`
	OptionsContent     [][]ContentBlock `json:"optionsContent" bson:"optionsContent"`
	CorrectOptionIndex int              `json:"correctOptionIndex" bson:"correctOptionIndex"` // 0-3
}

// DefaultTestDuration is applied when a test is created without one
const DefaultTestDuration = 60 // minutes

// NBTTest is a timed multiple-choice test
type NBTTest struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	Title           string        `json:"title" bson:"title"`
	Description     string        `json:"description" bson:"description"`
	AvailableFrom   time.Time     `json:"availableFrom" bson:"availableFrom"`
	AvailableUntil  time.Time     `json:"availableUntil" bson:"availableUntil"`
	DurationMinutes int           `json:"durationMinutes" bson:"durationMinutes"`
	Questions       []NBTQuestion `json:"questions" bson:"questions"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
}

// AvailableAt reports whether the test window covers the given instant
func (t *NBTTest) AvailableAt(now time.Time) bool {
	return !now.Before(t.AvailableFrom) && !now.After(t.AvailableUntil)
}
