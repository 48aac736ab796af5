package service

import (
	"context"
	"testing"
	"time"

	"nutrifit/fitness-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExercisePopularity(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	u := newID()

	seed := []string{"Squat", "Bench", "Squat", "Deadlift", "Squat", "Bench"}
	for _, name := range seed {
		_, err := e.logs.Create(ctx, &domain.ExerciseLog{UserID: u, ExerciseName: name, Date: time.Now().UTC()})
		require.NoError(t, err)
	}

	got, err := e.analytics.ExercisePopularity(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ExerciseCount{
		{ExerciseName: "Squat", Completions: 3},
		{ExerciseName: "Bench", Completions: 2},
		{ExerciseName: "Deadlift", Completions: 1},
	}, got)
}

func TestExercisePopularity_TiesBreakAlphabetically(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	u := newID()

	for _, name := range []string{"Row", "Curl"} {
		_, err := e.logs.Create(ctx, &domain.ExerciseLog{UserID: u, ExerciseName: name, Date: time.Now().UTC()})
		require.NoError(t, err)
	}

	got, err := e.analytics.ExercisePopularity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Curl", got[0].ExerciseName)
	assert.Equal(t, "Row", got[1].ExerciseName)
}

func TestUserGrowth(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	months := []time.Time{
		time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
	}
	for _, created := range months {
		id := newID()
		e.users.users[id] = &domain.User{
			ID:        id,
			Email:     id.Hex() + "@example.com",
			Role:      domain.RoleClient,
			Status:    domain.StatusAwaitingAssignment,
			CreatedAt: created,
		}
	}

	got, err := e.analytics.UserGrowth(ctx)
	require.NoError(t, err)
	assert.Equal(t, []GrowthPoint{
		{Month: "2024-10", Registrations: 1},
		{Month: "2024-11", Registrations: 2},
	}, got)
}
