package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageRepo_EmptyList(t *testing.T) {
	repo := NewSQLiteUsageRepo(testutil.NewTestDB(t))
	records, err := repo.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUsageRepo_UpsertBatchRoundtrip(t *testing.T) {
	repo := NewSQLiteUsageRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []domain.UsageRecord{
		{UserID: "alice", ExerciseID: "ex-b", LastUsedDay: 3},
		{UserID: "alice", ExerciseID: "ex-a", LastUsedDay: 1},
		{UserID: "bob", ExerciseID: "ex-a", LastUsedDay: 7},
	}))

	records, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 2, "bob's rows stay out")
	assert.Equal(t, "ex-a", records[0].ExerciseID)
	assert.Equal(t, "ex-b", records[1].ExerciseID)
}

func TestUsageRepo_UpsertOverwritesLastUsedDay(t *testing.T) {
	repo := NewSQLiteUsageRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []domain.UsageRecord{
		{UserID: "alice", ExerciseID: "ex-a", LastUsedDay: 1},
	}))
	require.NoError(t, repo.UpsertBatch(ctx, []domain.UsageRecord{
		{UserID: "alice", ExerciseID: "ex-a", LastUsedDay: 9},
	}))

	records, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 9, records[0].LastUsedDay)
}
