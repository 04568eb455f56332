package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"riskwatch/internal/cache"
	"riskwatch/internal/model"
	"riskwatch/internal/repository"
	"riskwatch/internal/repository/sqlstore"
	"riskwatch/internal/risk"

	"github.com/stretchr/testify/require"
)

var critical = model.FeatureVector{AttendanceRate: 10, GPA: 0.2, FinancialStressScore: 1, FamilySupportScore: 0}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []model.Alert
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, a model.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, a)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.alerts)
}

func openStore(t *testing.T) *repository.Store {
	t.Helper()
	store, err := sqlstore.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func newAnalytics(store *repository.Store) *AnalyticsService {
	return NewAnalyticsService(store, cache.NewMemoryAnalyticsCache(time.Minute), cache.NewMemoryAlertFeed())
}

func heuristicEngine(n risk.Notifier) *risk.Engine {
	return risk.NewEngineFromForest(nil, risk.DefaultHeuristicWeights(), n)
}

func createStudent(t *testing.T, store *repository.Store, name string, fv model.FeatureVector) *model.Student {
	t.Helper()
	svc := NewStudentService(store.Students)
	s, err := svc.Create(context.Background(), model.CreateStudentRequest{Name: name, Age: 20, Features: &fv})
	require.NoError(t, err)
	return s
}
