package service

import (
	"context"
	"testing"
	"time"

	"riskwatch/internal/llm"
	"riskwatch/internal/model"
	"riskwatch/internal/screening"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalCrisisRaisesOneAlert(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	n := &recordingNotifier{}
	svc := NewJournalService(screening.NewScreener(nil, nil, time.Second), n, store.Students, store.Journals)
	student := createStudent(t, store, "Ada", model.DefaultFeatures())

	entry, err := svc.Log(ctx, "u1", student.ID, "I feel so sad and lonely, it all feels hopeless")
	require.NoError(t, err)
	assert.True(t, entry.CrisisFlag)
	assert.True(t, entry.AlertTriggered)
	assert.InDelta(t, 0.4, entry.DistressScore, 1e-9)
	assert.Equal(t, model.SourceFallback, entry.Source)

	require.Equal(t, 1, n.count())
	assert.Equal(t, model.AlertCrisis, n.alerts[0].Kind)
	assert.Equal(t, "EMERGENCY ALERT: Mental health crisis detected for Ada.", n.alerts[0].Message)

	entries, err := svc.List(ctx, student.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)

	logs, err := store.Audit.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionJournalEntry, logs[0].Action)
}

func TestJournalUsesModelWhenAvailable(t *testing.T) {
	store := openStore(t)
	p := llm.NewMockProvider(llm.MockResponse{Text: `{"distress_score": 0.1, "crisis_flag": false}`})
	n := &recordingNotifier{}
	svc := NewJournalService(screening.NewScreener(p, nil, time.Second), n, store.Students, store.Journals)
	student := createStudent(t, store, "Grace", model.DefaultFeatures())

	entry, err := svc.Log(context.Background(), "u1", student.ID, "Exams went fine")
	require.NoError(t, err)
	assert.Equal(t, model.SourceModel, entry.Source)
	assert.False(t, entry.CrisisFlag)
	assert.Zero(t, n.count())
}

func TestJournalValidation(t *testing.T) {
	store := openStore(t)
	svc := NewJournalService(screening.NewScreener(nil, nil, time.Second), nil, store.Students, store.Journals)

	_, err := svc.Log(context.Background(), "u", "missing", "   ")
	assert.ErrorIs(t, err, ErrValidation)
}
