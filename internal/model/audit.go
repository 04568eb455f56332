package model

import "time"

// Audit actions
const (
	ActionRiskAssessment = "risk_assessment"
	ActionJournalEntry   = "journal_entry"
)

// AuditLog records who triggered a persisted evaluation
type AuditLog struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	Action    string    `json:"action" bson:"action"`
	SubjectID string    `json:"subjectId" bson:"subjectId"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
