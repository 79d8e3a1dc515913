package services

import (
	"context"
	"testing"

	"nutritrack/models"
	"nutritrack/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaults(t *testing.T) {
	repo := store.NewMemoryStore()
	goals := NewGoalService(repo, nil)
	ctx := context.Background()

	require.NoError(t, goals.seedDefaults(ctx, 7))

	gs, err := goals.ListGoals(ctx, 7)
	require.NoError(t, err)
	require.Len(t, gs, 4)
	for _, g := range gs {
		assert.Equal(t, uint(7), g.UserID)
		assert.Zero(t, g.Current)
		assert.False(t, g.Completed)
	}
	assert.Equal(t, "Drink water (2L)", gs[0].Name)

	cs, err := goals.ListChallenges(ctx, 7)
	require.NoError(t, err)
	require.Len(t, cs, 3)
	assert.Equal(t, 10, cs[2].Target)

	other, err := goals.ListGoals(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestUpdateGoalProgress_CompletesOnce(t *testing.T) {
	repo := store.NewMemoryStore()
	goals := NewGoalService(repo, NewAlertBus(repo, NewRealtimeHub(), nil))
	ctx := context.Background()
	require.NoError(t, goals.seedDefaults(ctx, 1))
	gs, err := goals.ListGoals(ctx, 1)
	require.NoError(t, err)
	water := gs[0]

	g, err := goals.UpdateGoalProgress(ctx, 1, water.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, g.Current)
	assert.False(t, g.Completed)

	g, err = goals.UpdateGoalProgress(ctx, 1, water.ID, 8)
	require.NoError(t, err)
	assert.True(t, g.Completed)

	g, err = goals.UpdateGoalProgress(ctx, 1, water.ID, 9)
	require.NoError(t, err)
	assert.True(t, g.Completed)

	alerts, err := repo.ListAlerts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "info", alerts[0].Type)
	assert.Equal(t, "Goal reached: Drink water (2L)", alerts[0].Message)

	g, err = goals.UpdateGoalProgress(ctx, 1, water.ID, 2)
	require.NoError(t, err)
	assert.False(t, g.Completed)
}

func TestUpdateGoalProgress_NotFound(t *testing.T) {
	repo := store.NewMemoryStore()
	goals := NewGoalService(repo, nil)
	ctx := context.Background()
	require.NoError(t, goals.seedDefaults(ctx, 1))
	gs, err := goals.ListGoals(ctx, 1)
	require.NoError(t, err)

	_, err = goals.UpdateGoalProgress(ctx, 2, gs[0].ID, 3)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
