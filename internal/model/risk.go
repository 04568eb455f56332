package model

import "time"

// RiskTier is the ordinal risk bucket derived from a probability
type RiskTier string

const (
	TierLow      RiskTier = "Low"
	TierMedium   RiskTier = "Medium"
	TierHigh     RiskTier = "High"
	TierCritical RiskTier = "Critical"
)

// Rank orders tiers from Low (0) to Critical (3)
func (t RiskTier) Rank() int {
	switch t {
	case TierLow:
		return 0
	case TierMedium:
		return 1
	case TierHigh:
		return 2
	case TierCritical:
		return 3
	}
	return -1
}

// ScoreSource tells which path produced a score
type ScoreSource string

const (
	SourceModel     ScoreSource = "model"
	SourceHeuristic ScoreSource = "heuristic"
	SourceFallback  ScoreSource = "fallback"
)

// RiskAssessment is one immutable dropout-risk evaluation
type RiskAssessment struct {
	ID             string             `json:"id" bson:"_id"`
	StudentID      string             `json:"studentId,omitempty" bson:"studentId"`
	Probability    float64            `json:"probability" bson:"probability"`
	Tier           RiskTier           `json:"tier" bson:"tier"`
	Attributions   map[string]float64 `json:"attributions" bson:"attributions"`
	AlertTriggered bool               `json:"alertTriggered" bson:"alertTriggered"`
	AlertMessage   string             `json:"alertMessage,omitempty" bson:"alertMessage,omitempty"`
	Source         ScoreSource        `json:"source" bson:"source"`
	Features       FeatureVector      `json:"features" bson:"features"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// TrendDirection classifies the slope of a risk history
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "Increasing"
	TrendDecreasing TrendDirection = "Decreasing"
	TrendStable     TrendDirection = "Stable"
)

// HistoryPoint is a single entry of a student's risk history
type HistoryPoint struct {
	Probability float64   `json:"probability"`
	Tier        RiskTier  `json:"tier"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HistoryReport is the chronological risk series of one student plus its trend
type HistoryReport struct {
	StudentID string         `json:"studentId"`
	History   []HistoryPoint `json:"history"`
	Trend     TrendDirection `json:"trend"`
}
