package model

import "time"

// Subject is a teachable subject for one grade.
// (name, grade) is unique at the store level.
type Subject struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Grade     int       `json:"grade" bson:"grade"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Topic is a syllabus topic within a subject
type Topic struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Grade     int       `json:"grade" bson:"grade"`
	SubjectID string    `json:"subjectId" bson:"subject"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
