package model

import "time"

// AlertKind distinguishes dropout interventions from mental-health crises
type AlertKind string

const (
	AlertIntervention AlertKind = "intervention"
	AlertCrisis       AlertKind = "crisis"
)

// Alert is a notice pushed to counselors
type Alert struct {
	ID          string    `json:"id"`
	Kind        AlertKind `json:"kind"`
	StudentID   string    `json:"studentId,omitempty"`
	StudentName string    `json:"studentName"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}
