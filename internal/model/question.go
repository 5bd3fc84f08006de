package model

import "time"

// Difficulty buckets for practice questions
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Defaults applied when legacy clients omit fields
const (
	DefaultGrade   = 12
	DefaultSubject = "Mathematics"
)

// ValidGrades are the grades the platform serves
var ValidGrades = []int{10, 11, 12}

// AdditionalField is an ordered label/value pair attached to a question
// (working-out steps, hints, mark allocations)
type AdditionalField struct {
	Label string `json:"label" bson:"label"`
	Value string `json:"value" bson:"value"`
}

// Question is a practice-bank question
type Question struct {
	ID               string            `json:"id" bson:"_id,omitempty"`
	QuestionNumber   string            `json:"questionNumber" bson:"questionNumber"` // string to allow "1a", "1b"
	Grade            int               `json:"grade" bson:"grade"`
	Subject          string            `json:"subject" bson:"subject"`
	Paper            string            `json:"paper" bson:"paper"`
	Topic            string            `json:"topic" bson:"topic"`
	QuestionText     string            `json:"questionText" bson:"questionText"`
	ImageURL         string            `json:"imageUrl" bson:"imageUrl"`
	AdditionalFields []AdditionalField `json:"additionalFields,omitempty" bson:"additionalFields,omitempty"`
	Answer           string            `json:"answer" bson:"answer"`
	Timer            int               `json:"timer" bson:"timer"` // seconds, 0 = untimed
	Difficulty       Difficulty        `json:"difficulty" bson:"difficulty"`
	CreatedAt        time.Time         `json:"createdAt" bson:"createdAt"`
}

// ApplyDefaults fills the fields legacy clients omit
func (q *Question) ApplyDefaults() {
	if q.Grade == 0 {
		q.Grade = DefaultGrade
	}
	if q.Subject == "" {
		q.Subject = DefaultSubject
	}
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}
}
