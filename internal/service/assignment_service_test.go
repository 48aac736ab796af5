package service

import (
	"context"
	"testing"

	"nutrifit/fitness-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignTrainingPlan(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	trainer := e.addUser(domain.RoleTrainer)
	client := e.addUser(domain.RoleClient)
	plan := e.addTrainingPlan("Push Day", "Pull Day", "Leg Day")

	uw, err := e.assignments.AssignTrainingPlan(ctx, trainer, client, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, client, uw.UserID)
	assert.Equal(t, plan.ID, uw.TrainingPlanID)
	assert.Equal(t, 0, uw.Progress)

	// One incomplete weekly row per plan workout.
	rows, err := e.weekly.GetByUserWorkoutID(ctx, uw.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.False(t, row.Completed)
		assert.Equal(t, client, row.UserID)
	}

	u, err := e.users.GetByID(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTrainingOnly, u.Status)
}

func TestAssignTrainingPlan_ReplacesExistingAssignment(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	trainer := e.addUser(domain.RoleTrainer)
	client := e.addUser(domain.RoleClient)
	planA := e.addTrainingPlan("Squat", "Bench")
	planB := e.addTrainingPlan("Deadlift", "Row", "Press")

	first, err := e.assignments.AssignTrainingPlan(ctx, trainer, client, planA.ID)
	require.NoError(t, err)

	// Complete one row of the first cycle so we can see it did not survive.
	_, err = e.weekly.Complete(ctx, first.ID, planA.Workouts[0].ID, 100)
	require.NoError(t, err)

	second, err := e.assignments.AssignTrainingPlan(ctx, trainer, client, planB.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// Old assignment and its rows are gone.
	gone, err := e.weekly.GetByUserWorkoutID(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, gone)

	// The single live assignment is the new one, reset to zero progress.
	live, err := e.userWorkout.GetByUserID(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, second.ID, live.ID)
	assert.Equal(t, 0, live.Progress)

	rows, err := e.weekly.GetByUserWorkoutID(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.False(t, row.Completed)
	}
}

func TestAssignTrainingPlan_PermissionDenied(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	client := e.addUser(domain.RoleClient)
	nutritionist := e.addUser(domain.RoleNutritionist)
	plan := e.addTrainingPlan("Push Day")

	_, err := e.assignments.AssignTrainingPlan(ctx, client, client, plan.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = e.assignments.AssignTrainingPlan(ctx, nutritionist, client, plan.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Nothing was written.
	_, err = e.userWorkout.GetByUserID(ctx, client)
	assert.Error(t, err)
}

func TestAssignTrainingPlan_NotFound(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	trainer := e.addUser(domain.RoleTrainer)
	client := e.addUser(domain.RoleClient)
	plan := e.addTrainingPlan("Push Day")

	_, err := e.assignments.AssignTrainingPlan(ctx, trainer, newID(), plan.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = e.assignments.AssignTrainingPlan(ctx, trainer, client, newID())
	assert.ErrorIs(t, err, ErrTrainingPlanNotFound)
}

func TestAssignNutritionPlan(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	nutritionist := e.addUser(domain.RoleNutritionist)
	client := e.addUser(domain.RoleClient)
	meal := e.addMealPlan()

	unp, err := e.assignments.AssignNutritionPlan(ctx, nutritionist, client, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, client, unp.UserID)
	assert.Equal(t, meal.ID, unp.MealPlanID)

	u, err := e.users.GetByID(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNutritionOnly, u.Status)
}

// Status is a pure function of assignment presence: every add or remove lands
// the user exactly where the matrix says.
func TestStatusFollowsAssignmentPresence(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := e.addUser(domain.RoleAdministrator)
	client := e.addUser(domain.RoleClient)
	plan := e.addTrainingPlan("Push Day", "Pull Day")
	meal := e.addMealPlan()

	status := func() domain.Status {
		u, err := e.users.GetByID(ctx, client)
		require.NoError(t, err)
		return u.Status
	}

	assert.Equal(t, domain.StatusAwaitingAssignment, status())

	_, err := e.assignments.AssignTrainingPlan(ctx, admin, client, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTrainingOnly, status())

	_, err = e.assignments.AssignNutritionPlan(ctx, admin, client, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, status())

	require.NoError(t, e.assignments.RemoveTrainingPlan(ctx, admin, client))
	assert.Equal(t, domain.StatusNutritionOnly, status())

	require.NoError(t, e.assignments.RemoveNutritionPlan(ctx, admin, client))
	assert.Equal(t, domain.StatusAwaitingAssignment, status())
}

func TestRemoveTrainingPlan_NoAssignment(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	trainer := e.addUser(domain.RoleTrainer)
	client := e.addUser(domain.RoleClient)

	err := e.assignments.RemoveTrainingPlan(ctx, trainer, client)
	assert.ErrorIs(t, err, ErrNoTrainingAssignment)
}

func TestRemoveNutritionPlan_NoAssignment(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	nutritionist := e.addUser(domain.RoleNutritionist)
	client := e.addUser(domain.RoleClient)

	err := e.assignments.RemoveNutritionPlan(ctx, nutritionist, client)
	assert.ErrorIs(t, err, ErrNoNutritionAssignment)
}

func TestRemoveTrainingPlan_DeletesWeeklyRows(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	trainer := e.addUser(domain.RoleTrainer)
	client := e.addUser(domain.RoleClient)
	plan := e.addTrainingPlan("Squat", "Bench")

	uw, err := e.assignments.AssignTrainingPlan(ctx, trainer, client, plan.ID)
	require.NoError(t, err)

	require.NoError(t, e.assignments.RemoveTrainingPlan(ctx, trainer, client))

	rows, err := e.weekly.GetByUserWorkoutID(ctx, uw.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = e.userWorkout.GetByUserID(ctx, client)
	assert.Error(t, err)
}

func TestRecomputeStatus_UnknownUser(t *testing.T) {
	e := newEnv()
	_, err := e.assignments.RecomputeStatus(context.Background(), newID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
