package service

import (
	"context"
	"log"
	"time"

	"riskwatch/internal/cache"
	"riskwatch/internal/model"
	"riskwatch/internal/repository"

	"github.com/robfig/cron/v3"
)

// AnalyticsService builds the admin dashboard summary
type AnalyticsService struct {
	students    repository.StudentRepo
	assessments repository.AssessmentRepo
	journals    repository.JournalRepo
	audit       repository.AuditRepo
	cache       cache.AnalyticsCache
	alerts      cache.AlertFeed
	now         func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(store *repository.Store, analyticsCache cache.AnalyticsCache, alerts cache.AlertFeed) *AnalyticsService {
	return &AnalyticsService{
		students:    store.Students,
		assessments: store.Assessments,
		journals:    store.Journals,
		audit:       store.Audit,
		cache:       analyticsCache,
		alerts:      alerts,
		now:         time.Now,
	}
}

// Summary serves the cached summary or computes and caches a fresh one
func (s *AnalyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	if cached, err := s.cache.GetSummary(ctx); err != nil {
		log.Printf("[Analytics] Cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the summary from the store and caches it
func (s *AnalyticsService) Refresh(ctx context.Context) (*model.AnalyticsSummary, error) {
	total, err := s.students.Count(ctx)
	if err != nil {
		return nil, err
	}
	tiers, err := s.assessments.CountByTier(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	crisis, err := s.journals.CountCrisisSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	summary := &model.AnalyticsSummary{
		TotalStudents:     total,
		CriticalRiskCount: tiers[model.TierCritical],
		CrisisAlertsToday: crisis,
		TierBreakdown:     tiers,
		GeneratedAt:       now,
	}
	if err := s.cache.SetSummary(ctx, summary); err != nil {
		log.Printf("[Analytics] Cache write failed: %v", err)
	}
	return summary, nil
}

// RecentAlerts returns the newest alerts from the feed
func (s *AnalyticsService) RecentAlerts(ctx context.Context, limit int) ([]model.Alert, error) {
	return s.alerts.Recent(ctx, limit)
}

// AuditTrail returns the newest audit rows
func (s *AnalyticsService) AuditTrail(ctx context.Context, limit int) ([]*model.AuditLog, error) {
	return s.audit.List(ctx, limit)
}

// StartRefresher refreshes the cached summary on the given cron spec. The
// returned function stops the scheduler.
func (s *AnalyticsService) StartRefresher(spec string) (func(), error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.Refresh(ctx); err != nil {
			log.Printf("[Analytics] Scheduled refresh failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[Analytics] Refreshing summary %s", spec)
	return func() { <-c.Stop().Done() }, nil
}
