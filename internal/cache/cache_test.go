package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"riskwatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAlertFeed(t *testing.T) {
	ctx := context.Background()
	f := NewMemoryAlertFeed()

	for i := 0; i < alertFeedCap+5; i++ {
		require.NoError(t, f.Deliver(ctx, model.Alert{ID: fmt.Sprint(i)}))
	}

	recent, err := f.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, fmt.Sprint(alertFeedCap+4), recent[0].ID)

	all, err := f.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, alertFeedCap)
}

func TestMemoryAnalyticsCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryAnalyticsCache(time.Minute)

	got, err := c.GetSummary(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.SetSummary(ctx, &model.AnalyticsSummary{TotalStudents: 7}))
	got, err = c.GetSummary(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 7, got.TotalStudents)

	require.NoError(t, c.Invalidate(ctx))
	got, err = c.GetSummary(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryRiskBoard(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryRiskBoard()

	require.NoError(t, b.UpdateScore(ctx, "a", 0.2))
	require.NoError(t, b.UpdateScore(ctx, "b", 0.9))
	require.NoError(t, b.UpdateScore(ctx, "c", 0.5))
	require.NoError(t, b.UpdateScore(ctx, "a", 0.95)) // latest score wins

	top, err := b.GetTop(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].StudentID)
	assert.Equal(t, 1, top[0].Rank)
	assert.Equal(t, "b", top[1].StudentID)

	rank, err := b.GetRank(ctx, "c")
	require.NoError(t, err)
	assert.EqualValues(t, 3, rank)

	rank, err = b.GetRank(ctx, "missing")
	require.NoError(t, err)
	assert.EqualValues(t, -1, rank)
}
