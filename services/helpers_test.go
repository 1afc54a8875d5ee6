package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"seventyFiveHardAPI/internal/store"
	"seventyFiveHardAPI/internal/types/day"
	"seventyFiveHardAPI/internal/types/user"
)

func seedUser(t *testing.T, st *store.MemoryStore, clerkID string, status user.ChallengeStatus, currentDay int) *user.User {
	t.Helper()

	now := time.Now()
	u := &user.User{
		ID:                  uuid.New(),
		ClerkID:             clerkID,
		Email:               clerkID + "@example.com",
		Name:                "Test User",
		ChallengeStatus:     status,
		CurrentChallengeDay: currentDay,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if status == user.StatusActive {
		u.ChallengeStartDate = &now
	}

	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func seedDay(t *testing.T, st *store.MemoryStore, userID uuid.UUID, dayNumber int, tasks day.Tasks, dayCompleted bool) *day.Record {
	t.Helper()

	now := time.Now()
	rec := &day.Record{
		ID:                uuid.New(),
		UserID:            userID,
		DayNumber:         dayNumber,
		Date:              now,
		Tasks:             tasks,
		AllTasksCompleted: tasks.AllCompleted(),
		DayCompleted:      dayCompleted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if dayCompleted {
		rec.CompletedAt = &now
	}

	require.NoError(t, st.InsertDay(context.Background(), rec))
	return rec
}

func allDoneTasks() day.Tasks {
	return day.Tasks{
		Workout1:       day.WorkoutTask{Completed: true},
		Workout2:       day.WorkoutTask{Completed: true},
		WaterIntake:    day.WaterIntakeTask{Completed: true},
		DietCompliance: day.DietComplianceTask{Completed: true},
		Reading:        day.ReadingTask{Completed: true},
		ProgressPhoto:  day.ProgressPhotoTask{Completed: true},
	}
}

func newTaskService(st *store.MemoryStore) *TaskService {
	return NewTaskService(st, NewUserLocks(), NewNotificationService(st))
}
