package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seventyFiveHardAPI/internal/store"
	"seventyFiveHardAPI/internal/types/day"
	"seventyFiveHardAPI/internal/types/user"
)

func TestGetCurrentDayNoActiveChallenge(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "clerk_idle", user.StatusNotStarted, 0)
	svc := newTaskService(st)

	current, err := svc.GetCurrentDay(context.Background(), "clerk_idle")
	require.NoError(t, err)

	assert.False(t, current.Active)
	assert.Nil(t, current.Record)
	assert.Equal(t, user.StatusNotStarted, current.User.ChallengeStatus)
}

func TestGetCurrentDayCreatesRecordLazily(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_day1", user.StatusActive, 1)
	svc := newTaskService(st)

	current, err := svc.GetCurrentDay(context.Background(), "clerk_day1")
	require.NoError(t, err)

	assert.True(t, current.Active)
	assert.True(t, current.CanAccess)
	require.NotNil(t, current.Record)
	assert.Equal(t, 1, current.Record.DayNumber)
	assert.False(t, current.Record.AllTasksCompleted)

	stored, err := st.GetDay(context.Background(), u.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, current.Record.ID, stored.ID)
}

func TestGetCurrentDayGateReflectsPreviousDay(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_gate", user.StatusActive, 3)
	seedDay(t, st, u.ID, 2, allDoneTasks(), false)
	svc := newTaskService(st)

	current, err := svc.GetCurrentDay(context.Background(), "clerk_gate")
	require.NoError(t, err)
	assert.False(t, current.CanAccess)

	_, err = st.MarkDayCompleted(context.Background(), u.ID, 2, current.Record.Date)
	require.NoError(t, err)

	current, err = svc.GetCurrentDay(context.Background(), "clerk_gate")
	require.NoError(t, err)
	assert.True(t, current.CanAccess)
}

func TestUpdateTasksRejectsOutOfRangeDay(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "clerk_range", user.StatusActive, 1)
	svc := newTaskService(st)

	for _, n := range []int{0, 76, -1} {
		_, err := svc.UpdateTasks(context.Background(), "clerk_range", n, day.TasksPatch{})
		assert.ErrorIs(t, err, ErrInvalidDayNumber)
	}
}

func TestUpdateTasksRequiresActiveChallenge(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "clerk_inactive", user.StatusNotStarted, 0)
	svc := newTaskService(st)

	_, err := svc.UpdateTasks(context.Background(), "clerk_inactive", 1, day.TasksPatch{})
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestUpdateTasksPreviousDayGate(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_prev", user.StatusActive, 2)
	seedDay(t, st, u.ID, 1, day.Tasks{}, false)
	svc := newTaskService(st)

	_, err := svc.UpdateTasks(context.Background(), "clerk_prev", 2, day.TasksPatch{
		Workout1: &day.WorkoutTask{Completed: true},
	})

	var gateErr *AccessGateError
	require.ErrorAs(t, err, &gateErr)
	assert.Contains(t, gateErr.Error(), "Complete day 1")
}

func TestUpdateTasksFutureDayGate(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_future", user.StatusActive, 1)
	// Day 1 is done but the pointer has not advanced yet; day 2 is still
	// ahead of the current day and must be rejected.
	seedDay(t, st, u.ID, 1, allDoneTasks(), true)
	svc := newTaskService(st)

	_, err := svc.UpdateTasks(context.Background(), "clerk_future", 2, day.TasksPatch{
		Workout1: &day.WorkoutTask{Completed: true},
	})

	var gateErr *AccessGateError
	require.ErrorAs(t, err, &gateErr)
	assert.Contains(t, gateErr.Error(), "future days")
}

func TestUpdateTasksCompletedDayIsImmutable(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_locked", user.StatusActive, 2)
	seedDay(t, st, u.ID, 1, allDoneTasks(), true)
	svc := newTaskService(st)

	_, err := svc.UpdateTasks(context.Background(), "clerk_locked", 1, day.TasksPatch{
		Workout1: &day.WorkoutTask{Completed: false},
	})

	var gateErr *AccessGateError
	require.ErrorAs(t, err, &gateErr)

	// The stored record must be byte-for-byte what it was before the attempt.
	stored, getErr := st.GetDay(context.Background(), u.ID, 1)
	require.NoError(t, getErr)
	assert.True(t, stored.Tasks.Workout1.Completed)
	assert.True(t, stored.AllTasksCompleted)
	assert.True(t, stored.DayCompleted)
}

func TestUpdateTasksDerivesAllCompleted(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_derive", user.StatusActive, 1)
	seedDay(t, st, u.ID, 1, day.Tasks{}, false)
	svc := newTaskService(st)

	partial, err := svc.UpdateTasks(context.Background(), "clerk_derive", 1, day.TasksPatch{
		Workout1: &day.WorkoutTask{Completed: true},
	})
	require.NoError(t, err)
	assert.False(t, partial.AllTasksCompleted)

	full := allDoneTasks()
	updated, err := svc.UpdateTasks(context.Background(), "clerk_derive", 1, day.TasksPatch{
		Workout1:       &full.Workout1,
		Workout2:       &full.Workout2,
		WaterIntake:    &full.WaterIntake,
		DietCompliance: &full.DietCompliance,
		Reading:        &full.Reading,
		ProgressPhoto:  &full.ProgressPhoto,
	})
	require.NoError(t, err)
	assert.True(t, updated.AllTasksCompleted)
	assert.False(t, updated.DayCompleted)
}

func TestUpdateTasksCreatesMissingDay(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_missing", user.StatusActive, 1)
	svc := newTaskService(st)

	pages := 12
	rec, err := svc.UpdateTasks(context.Background(), "clerk_missing", 1, day.TasksPatch{
		Reading: &day.ReadingTask{Completed: true, Pages: &pages},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rec.DayNumber)
	assert.True(t, rec.Tasks.Reading.Completed)
	assert.False(t, rec.AllTasksCompleted)

	_, err = st.GetDay(context.Background(), u.ID, 1)
	assert.NoError(t, err)
}

func TestCompleteDayRequiresAllTasks(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_incomplete", user.StatusActive, 1)
	tasks := allDoneTasks()
	tasks.Reading.Completed = false
	seedDay(t, st, u.ID, 1, tasks, false)
	svc := newTaskService(st)

	_, err := svc.CompleteDay(context.Background(), "clerk_incomplete", 1)
	assert.ErrorIs(t, err, ErrTasksIncomplete)
}

func TestCompleteDayOnlyCurrentDay(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_notcurrent", user.StatusActive, 3)
	seedDay(t, st, u.ID, 2, allDoneTasks(), true)
	svc := newTaskService(st)

	_, err := svc.CompleteDay(context.Background(), "clerk_notcurrent", 2)

	var gateErr *AccessGateError
	require.ErrorAs(t, err, &gateErr)
	assert.Contains(t, gateErr.Error(), "current day (3)")
}

func TestCompleteDayAdvancesPointer(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_advance", user.StatusActive, 3)
	seedDay(t, st, u.ID, 3, allDoneTasks(), false)
	svc := newTaskService(st)

	result, err := svc.CompleteDay(context.Background(), "clerk_advance", 3)
	require.NoError(t, err)

	assert.False(t, result.ChallengeCompleted)
	assert.True(t, result.Record.DayCompleted)
	assert.NotNil(t, result.Record.CompletedAt)

	updated, err := st.GetUserByClerkID(context.Background(), "clerk_advance")
	require.NoError(t, err)
	assert.Equal(t, 4, updated.CurrentChallengeDay)
	assert.Equal(t, user.StatusActive, updated.ChallengeStatus)
}

func TestCompleteDayIsIdempotentGuarded(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_twice", user.StatusActive, 1)
	seedDay(t, st, u.ID, 1, allDoneTasks(), false)
	svc := newTaskService(st)

	_, err := svc.CompleteDay(context.Background(), "clerk_twice", 1)
	require.NoError(t, err)

	// The pointer moved to day 2, so a replay of day 1 hits the gate.
	_, err = svc.CompleteDay(context.Background(), "clerk_twice", 1)
	var gateErr *AccessGateError
	assert.ErrorAs(t, err, &gateErr)
}

func TestCompleteDaySeventyFiveFinalizesChallenge(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_final", user.StatusActive, 75)
	seedDay(t, st, u.ID, 75, allDoneTasks(), false)
	svc := newTaskService(st)

	result, err := svc.CompleteDay(context.Background(), "clerk_final", 75)
	require.NoError(t, err)

	assert.True(t, result.ChallengeCompleted)
	assert.True(t, result.Record.DayCompleted)

	updated, err := st.GetUserByClerkID(context.Background(), "clerk_final")
	require.NoError(t, err)
	assert.Equal(t, user.StatusCompleted, updated.ChallengeStatus)
	assert.Equal(t, 1, updated.CompletedChallenges)
	assert.Equal(t, 75, updated.CurrentChallengeDay)
}

func TestGetDayHistoryPagination(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_history", user.StatusActive, 6)
	for n := 1; n <= 5; n++ {
		seedDay(t, st, u.ID, n, allDoneTasks(), true)
	}
	svc := newTaskService(st)

	history, err := svc.GetDayHistory(context.Background(), "clerk_history", 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, history.Total)
	assert.Equal(t, 3, history.TotalPages)
	assert.Equal(t, 2, history.CurrentPage)
	require.Len(t, history.Records, 2)
	assert.Equal(t, 3, history.Records[0].DayNumber)
	assert.Equal(t, 4, history.Records[1].DayNumber)
}

func TestGetDayHistoryUnknownUser(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTaskService(st)

	_, err := svc.GetDayHistory(context.Background(), "clerk_ghost", 1, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
