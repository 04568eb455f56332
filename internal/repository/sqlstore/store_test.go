package sqlstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *repository.Store {
	t.Helper()
	store, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func TestStudents(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	s := &model.Student{Name: "Ada", Age: 19, Features: model.DefaultFeatures()}
	require.NoError(t, store.Students.Create(ctx, s))
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.CreatedAt.IsZero())

	got, err := store.Students.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, model.DefaultFeatures(), got.Features)

	fv := model.FeatureVector{AttendanceRate: 55, GPA: 2.1, FinancialStressScore: 0.7, FamilySupportScore: 0.3}
	updated, err := store.Students.UpdateFeatures(ctx, s.ID, fv)
	require.NoError(t, err)
	assert.Equal(t, fv, updated.Features)

	_, err = store.Students.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.Students.UpdateFeatures(ctx, "missing", fv)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Students.Create(ctx, &model.Student{Name: "Grace"}))
	list, err := store.Students.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	n, err := store.Students.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestAssessmentsQueryRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []float64{0.2, 0.5, 0.9} {
		a := &model.RiskAssessment{
			StudentID:    "s1",
			Probability:  p,
			Tier:         model.TierLow,
			Attributions: map[string]float64{"gpa": 0.1},
			Source:       model.SourceHeuristic,
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.Assessments.Save(ctx, a, &model.AuditLog{UserID: "u1", Action: model.ActionRiskAssessment}))
	}
	require.NoError(t, store.Assessments.Save(ctx, &model.RiskAssessment{StudentID: "other", Tier: model.TierCritical}, nil))

	recent, err := store.Assessments.QueryRecent(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 0.9, recent[0].Probability)
	assert.Equal(t, 0.5, recent[1].Probability)
	assert.Equal(t, 0.1, recent[0].Attributions["gpa"])

	counts, err := store.Assessments.CountByTier(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts[model.TierLow])
	assert.EqualValues(t, 1, counts[model.TierCritical])

	audit, err := store.Audit.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, audit, 3)
	assert.Equal(t, "s1", audit[0].SubjectID)
	assert.Equal(t, model.ActionRiskAssessment, audit[0].Action)
}

func TestAssessmentAndAuditCommitTogether(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	first := &model.RiskAssessment{StudentID: "s1", Probability: 0.1, Tier: model.TierLow}
	require.NoError(t, store.Assessments.Save(ctx, first, &model.AuditLog{ID: "dup", UserID: "u1", Action: model.ActionRiskAssessment}))

	// the audit insert collides, so the assessment row must roll back too
	second := &model.RiskAssessment{StudentID: "s1", Probability: 0.9, Tier: model.TierCritical}
	err := store.Assessments.Save(ctx, second, &model.AuditLog{ID: "dup", UserID: "u1", Action: model.ActionRiskAssessment})
	require.Error(t, err)

	recent, err := store.Assessments.QueryRecent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, first.ID, recent[0].ID)
}

func TestJournals(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	entries := []*model.JournalEntry{
		{StudentID: "s1", Text: "fine", DistressScore: 0, Source: model.SourceFallback},
		{StudentID: "s1", Text: "goodbye", DistressScore: 0.2, CrisisFlag: true, AlertTriggered: true, Source: model.SourceFallback},
	}
	for _, e := range entries {
		require.NoError(t, store.Journals.Save(ctx, e, &model.AuditLog{UserID: "u1", Action: model.ActionJournalEntry}))
	}

	list, err := store.Journals.ListByStudent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, list, 2)

	n, err := store.Journals.CountCrisisSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = store.Journals.CountCrisisSince(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	u := &model.User{Email: "Counselor@School.edu", PasswordHash: "x", Name: "C", Role: model.RoleCounselor}
	require.NoError(t, store.Users.Create(ctx, u))

	got, err := store.Users.GetByEmail(ctx, "counselor@school.edu")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, model.RoleCounselor, got.Role)

	err = store.Users.Create(ctx, &model.User{Email: "counselor@school.edu", PasswordHash: "y", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = store.Users.GetByID(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMigrateDownAndUp(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	from, to, err := Migrate(db, -1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, from)
	assert.EqualValues(t, 1, to)

	_, to, err = Migrate(db, -1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, to)

	_, to, err = Migrate(db, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, to)
}
