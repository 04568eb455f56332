package model

import "time"

// AnalyticsSummary is the admin dashboard rollup
type AnalyticsSummary struct {
	TotalStudents     int64              `json:"totalStudents"`
	CriticalRiskCount int64              `json:"criticalRiskCount"`
	CrisisAlertsToday int64              `json:"crisisAlertsToday"`
	TierBreakdown     map[RiskTier]int64 `json:"tierBreakdown"`
	GeneratedAt       time.Time          `json:"generatedAt"`
}
