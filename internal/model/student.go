package model

import "time"

// Student is a monitored learner and their latest metrics
type Student struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	Age       int           `json:"age,omitempty" bson:"age,omitempty"`
	Features  FeatureVector `json:"features" bson:"features"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// CreateStudentRequest is the request body for enrolling a student.
// Missing features fall back to DefaultFeatures.
type CreateStudentRequest struct {
	Name     string         `json:"name"`
	Age      int            `json:"age,omitempty"`
	Features *FeatureVector `json:"features,omitempty"`
}
