package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seventyFiveHardAPI/internal/store"
	"seventyFiveHardAPI/internal/types/user"
)

func TestCreateUser(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewUserService(st)

	created, err := svc.CreateUser(context.Background(), &user.CreateUserRequest{
		ClerkID: "user_new",
		Email:   "new@example.com",
		Name:    "New User",
	})
	require.NoError(t, err)

	assert.Equal(t, user.StatusNotStarted, created.ChallengeStatus)
	assert.Equal(t, 0, created.CurrentChallengeDay)
	assert.Nil(t, created.ChallengeStartDate)

	fetched, err := svc.GetUserByClerkID(context.Background(), "user_new")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestUpdateProfile(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "user_profile", user.StatusNotStarted, 0)
	svc := NewUserService(st)

	age := 29
	goal := "lose weight"
	updated, err := svc.UpdateProfileByClerkID(context.Background(), "user_profile", &user.UpdateProfileRequest{
		Age:         &age,
		FitnessGoal: &goal,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Age)
	assert.Equal(t, 29, *updated.Age)
	require.NotNil(t, updated.FitnessGoal)
	assert.Equal(t, "lose weight", *updated.FitnessGoal)
	// Untouched fields keep their values.
	assert.Equal(t, "Test User", updated.Name)
}

func TestDeleteUser(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "user_bye", user.StatusActive, 10)
	svc := NewUserService(st)

	require.NoError(t, svc.DeleteUserByClerkID(context.Background(), "user_bye"))

	_, err := svc.GetUserByClerkID(context.Background(), "user_bye")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, svc.DeleteUserByClerkID(context.Background(), "user_bye"), ErrUserNotFound)
}
