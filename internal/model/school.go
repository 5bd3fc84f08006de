package model

import "time"

// School is a registered school and the grades it covers.
// Name is unique at the store level.
type School struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Grades    []int     `json:"grades" bson:"grades"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
