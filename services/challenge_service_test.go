package services

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seventyFiveHardAPI/internal/store"
	"seventyFiveHardAPI/internal/types/user"
)

func newChallengeService(st *store.MemoryStore) *ChallengeService {
	return NewChallengeService(st, NewUserLocks())
}

func TestStartChallenge(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "clerk_start", user.StatusNotStarted, 0)
	svc := newChallengeService(st)

	result, err := svc.Start(context.Background(), "clerk_start")
	require.NoError(t, err)

	assert.Equal(t, user.StatusActive, result.User.ChallengeStatus)
	assert.Equal(t, 1, result.User.CurrentChallengeDay)
	assert.NotNil(t, result.User.ChallengeStartDate)

	require.NotNil(t, result.CurrentDay)
	assert.Equal(t, 1, result.CurrentDay.DayNumber)
	assert.False(t, result.CurrentDay.AllTasksCompleted)
	assert.False(t, result.CurrentDay.DayCompleted)
}

func TestStartChallengeUnknownUser(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newChallengeService(st)

	_, err := svc.Start(context.Background(), "clerk_nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetChallenge(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_reset", user.StatusActive, 3)
	seedDay(t, st, u.ID, 1, allDoneTasks(), true)
	seedDay(t, st, u.ID, 2, allDoneTasks(), true)
	seedDay(t, st, u.ID, 3, allDoneTasks(), false)
	svc := newChallengeService(st)

	result, err := svc.Reset(context.Background(), "clerk_reset")
	require.NoError(t, err)

	assert.Equal(t, user.StatusActive, result.User.ChallengeStatus)
	assert.Equal(t, 1, result.User.CurrentChallengeDay)
	assert.Equal(t, 1, result.User.TotalResets)

	// Day 1 is reissued fresh.
	require.NotNil(t, result.CurrentDay)
	assert.Equal(t, 1, result.CurrentDay.DayNumber)
	assert.False(t, result.CurrentDay.DayCompleted)
	assert.False(t, result.CurrentDay.AllTasksCompleted)
	assert.False(t, result.CurrentDay.Tasks.Workout1.Completed)

	// Records from the abandoned run stay in place as history.
	days, err := st.ListAllDays(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.True(t, days[1].DayCompleted)
	assert.Equal(t, 2, days[1].DayNumber)
}

func TestResetIncrementsAcrossRuns(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "clerk_repeat", user.StatusActive, 10)
	svc := newChallengeService(st)

	for i := 1; i <= 3; i++ {
		result, err := svc.Reset(context.Background(), "clerk_repeat")
		require.NoError(t, err)
		assert.Equal(t, i, result.User.TotalResets)
	}
}

func TestCompleteChallenge(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "clerk_done", user.StatusActive, 75)
	svc := newChallengeService(st)

	u, err := svc.Complete(context.Background(), "clerk_done")
	require.NoError(t, err)

	assert.Equal(t, user.StatusCompleted, u.ChallengeStatus)
	assert.Equal(t, 1, u.CompletedChallenges)
}

func TestProgressStats(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_progress", user.StatusActive, 4)
	seedDay(t, st, u.ID, 1, allDoneTasks(), true)
	seedDay(t, st, u.ID, 2, allDoneTasks(), true)
	seedDay(t, st, u.ID, 3, allDoneTasks(), true)
	seedDay(t, st, u.ID, 4, allDoneTasks(), false)
	svc := newChallengeService(st)

	progress, err := svc.Progress(context.Background(), "clerk_progress")
	require.NoError(t, err)

	assert.Equal(t, 3, progress.Stats.CompletedDays)
	assert.Equal(t, 4, progress.Stats.TotalDays)
	assert.Equal(t, 4, progress.Stats.CurrentStreak)
	assert.InDelta(t, 75.0, progress.Stats.CompletionRate, 0.01)
	assert.Len(t, progress.ChallengeDays, 4)
}

func TestProgressNoDays(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "clerk_empty", user.StatusNotStarted, 0)
	svc := newChallengeService(st)

	progress, err := svc.Progress(context.Background(), "clerk_empty")
	require.NoError(t, err)

	assert.Equal(t, 0, progress.Stats.TotalDays)
	assert.Equal(t, 0.0, progress.Stats.CompletionRate)
}

func TestShareCode(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_share", user.StatusActive, 20)
	svc := newChallengeService(st)

	shareURL, qrBase64, err := svc.ShareCode(context.Background(), "clerk_share")
	require.NoError(t, err)

	assert.Contains(t, shareURL, u.ID.String())

	png, err := base64.StdEncoding.DecodeString(qrBase64)
	require.NoError(t, err)
	require.True(t, len(png) > 8)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
