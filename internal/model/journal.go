package model

import "time"

// TextScreenResult is the outcome of screening one journal text
type TextScreenResult struct {
	DistressScore float64     `json:"distressScore"` // 0-1
	CrisisFlag    bool        `json:"crisisFlag"`
	Source        ScoreSource `json:"source"` // model | fallback
}

// JournalEntry is a persisted journal text with its screening result
type JournalEntry struct {
	ID             string      `json:"id" bson:"_id"`
	StudentID      string      `json:"studentId" bson:"studentId"`
	Text           string      `json:"text" bson:"text"`
	DistressScore  float64     `json:"distressScore" bson:"distressScore"`
	CrisisFlag     bool        `json:"crisisFlag" bson:"crisisFlag"`
	Source         ScoreSource `json:"source" bson:"source"`
	AlertTriggered bool        `json:"alertTriggered" bson:"alertTriggered"`
	CreatedAt      time.Time   `json:"createdAt" bson:"createdAt"`
}

// JournalRequest is the request body for logging a journal entry
type JournalRequest struct {
	Text string `json:"text"`
}
