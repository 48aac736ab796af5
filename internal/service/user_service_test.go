package service

import (
	"context"
	"strings"
	"testing"

	"nutrifit/fitness-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	client := e.addUser(domain.RoleClient)

	// Bare profile: no weight yet, no avatar.
	p, err := e.usersSvc.GetProfile(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, client, p.User.ID)
	assert.Nil(t, p.LatestWeight)
	assert.Empty(t, p.AvatarURL)

	_, err = e.progressSvc.RecordWeight(ctx, client, 81.0)
	require.NoError(t, err)
	require.NoError(t, e.users.SetAvatarKey(ctx, client, "avatars/x.png"))

	p, err = e.usersSvc.GetProfile(ctx, client)
	require.NoError(t, err)
	require.NotNil(t, p.LatestWeight)
	assert.Equal(t, 81.0, p.LatestWeight.WeightKg)
	assert.Contains(t, p.AvatarURL, "avatars/x.png")
}

func TestGetProfile_UnknownUser(t *testing.T) {
	e := newEnv()
	_, err := e.usersSvc.GetProfile(context.Background(), newID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAvatarFlow(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	client := e.addUser(domain.RoleClient)

	resp, err := e.usersSvc.RequestAvatarUploadURL(ctx, client, "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ObjectKey, "avatars/"+client.Hex()+"/"))
	assert.True(t, strings.HasSuffix(resp.ObjectKey, ".jpeg"))

	require.NoError(t, e.usersSvc.ConfirmAvatar(ctx, client, resp.ObjectKey))

	u, err := e.users.GetByID(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, resp.ObjectKey, u.AvatarKey)

	// Replacing the avatar removes the previous object.
	require.NoError(t, e.usersSvc.ConfirmAvatar(ctx, client, "avatars/new.png"))
	assert.Equal(t, []string{resp.ObjectKey}, e.storage.deleted)
}

func TestAvatarUpload_RejectsNonImage(t *testing.T) {
	e := newEnv()
	client := e.addUser(domain.RoleClient)

	_, err := e.usersSvc.RequestAvatarUploadURL(context.Background(), client, "text/plain")
	assert.Error(t, err)
}

func TestDeleteAccount_CascadesEverything(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := e.addUser(domain.RoleAdministrator)
	client := e.addUser(domain.RoleClient)
	plan := e.addTrainingPlan("Squat", "Bench")
	meal := e.addMealPlan()

	uw, err := e.assignments.AssignTrainingPlan(ctx, admin, client, plan.ID)
	require.NoError(t, err)
	_, err = e.assignments.AssignNutritionPlan(ctx, admin, client, meal.ID)
	require.NoError(t, err)
	_, err = e.progressSvc.RecordWeight(ctx, client, 90)
	require.NoError(t, err)
	_, err = e.progressSvc.CompleteDay(ctx, client, []string{"Squat"})
	require.NoError(t, err)

	require.NoError(t, e.usersSvc.DeleteAccount(ctx, client, client))

	_, err = e.users.GetByID(ctx, client)
	assert.Error(t, err)
	_, err = e.userWorkout.GetByUserID(ctx, client)
	assert.Error(t, err)
	_, err = e.nutrition.GetByUserID(ctx, client)
	assert.Error(t, err)
	rows, err := e.weekly.GetByUserWorkoutID(ctx, uw.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
	hist, err := e.weights.History(ctx, client)
	require.NoError(t, err)
	assert.Empty(t, hist)
	counts, err := e.logs.CountByExercise(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts["Squat"])
}

func TestDeleteAccount_Authorization(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := e.addUser(domain.RoleAdministrator)
	victim := e.addUser(domain.RoleClient)
	other := e.addUser(domain.RoleClient)

	// Another non-admin user may not delete someone else's account.
	err := e.usersSvc.DeleteAccount(ctx, other, victim)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// An administrator may.
	require.NoError(t, e.usersSvc.DeleteAccount(ctx, admin, victim))
	_, err = e.users.GetByID(ctx, victim)
	assert.Error(t, err)
}
