package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"seventyFiveHardAPI/internal/store"
	"seventyFiveHardAPI/internal/types/day"
	"seventyFiveHardAPI/internal/types/user"
)

// TaskService is the day-record engine: per-day task tracking, the access
// gate, completion derivation and the day transition.
type TaskService struct {
	store         store.Store
	locks         *UserLocks
	notifications *NotificationService
}

func NewTaskService(st store.Store, locks *UserLocks, notifications *NotificationService) *TaskService {
	return &TaskService{store: st, locks: locks, notifications: notifications}
}

// CurrentDay is the resolved "today" view: the record for the current day
// pointer (created lazily) plus the access-gate verdict.
type CurrentDay struct {
	User      *user.User
	Record    *day.Record
	CanAccess bool
	// Active is false when the user has no running challenge; Record is nil
	// in that case and the condition is not an error.
	Active bool
}

// GetCurrentDay resolves or lazily creates the record for the user's
// current challenge day. canAccess is true for day 1, otherwise true iff
// the previous day exists and is day-completed.
func (s *TaskService) GetCurrentDay(ctx context.Context, clerkID string) (*CurrentDay, error) {
	u, err := s.getUser(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	if !u.Active() {
		return &CurrentDay{User: u, Active: false}, nil
	}

	unlock := s.locks.Lock(u.ID)
	defer unlock()

	rec, err := s.store.GetDay(ctx, u.ID, u.CurrentChallengeDay)
	if errors.Is(err, store.ErrNotFound) {
		rec, err = s.createDay(ctx, u.ID, u.CurrentChallengeDay, day.Tasks{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current day: %w", err)
	}

	canAccess := true
	if u.CurrentChallengeDay > 1 {
		prev, err := s.store.GetDay(ctx, u.ID, u.CurrentChallengeDay-1)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to check previous day: %w", err)
		}
		canAccess = prev != nil && prev.DayCompleted
	}

	return &CurrentDay{User: u, Record: rec, CanAccess: canAccess, Active: true}, nil
}

// UpdateTasks merges a partial task map into the day's tasks and recomputes
// the all-tasks-completed flag before persisting. Gate rules: the previous
// day must be day-completed, the target day must not be ahead of the
// current-day pointer, and a completed day is immutable.
func (s *TaskService) UpdateTasks(ctx context.Context, clerkID string, dayNumber int, patch day.TasksPatch) (*day.Record, error) {
	if dayNumber < day.MinDayNumber || dayNumber > day.MaxDayNumber {
		return nil, ErrInvalidDayNumber
	}

	u, err := s.getUser(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	if !u.Active() {
		return nil, ErrNoActiveChallenge
	}

	unlock := s.locks.Lock(u.ID)
	defer unlock()

	if dayNumber > 1 {
		prev, err := s.store.GetDay(ctx, u.ID, dayNumber-1)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to check previous day: %w", err)
		}
		if prev == nil || !prev.DayCompleted {
			return nil, errPreviousDayIncomplete(dayNumber)
		}
	}

	if dayNumber > u.CurrentChallengeDay {
		return nil, errFutureDay(u.CurrentChallengeDay)
	}

	rec, err := s.store.GetDay(ctx, u.ID, dayNumber)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return s.createDay(ctx, u.ID, dayNumber, day.Tasks{}.Apply(patch))
	case err != nil:
		return nil, fmt.Errorf("failed to get day %d: %w", dayNumber, err)
	}

	if rec.DayCompleted {
		return nil, errDayLocked(dayNumber)
	}

	tasks := rec.Tasks.Apply(patch)
	updated, err := s.store.UpdateDayTasks(ctx, u.ID, dayNumber, tasks, tasks.AllCompleted())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Row vanished or flipped to completed between read and write.
			return nil, errDayLocked(dayNumber)
		}
		return nil, fmt.Errorf("failed to update tasks: %w", err)
	}
	return updated, nil
}

// CompleteDayResult carries the completed record and whether day 75 just
// finished the whole challenge.
type CompleteDayResult struct {
	Record             *day.Record
	ChallengeCompleted bool
}

// CompleteDay is the explicit, user-triggered transition of a day record to
// its immutable completed state. Only the current day can be completed, and
// only once all six tasks are done. On success the day pointer advances, or
// the challenge finalizes at day 75.
func (s *TaskService) CompleteDay(ctx context.Context, clerkID string, dayNumber int) (*CompleteDayResult, error) {
	if dayNumber < day.MinDayNumber || dayNumber > day.MaxDayNumber {
		return nil, ErrInvalidDayNumber
	}

	u, err := s.getUser(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	if !u.Active() {
		return nil, ErrNoActiveChallenge
	}

	unlock := s.locks.Lock(u.ID)
	defer unlock()

	if dayNumber != u.CurrentChallengeDay {
		return nil, errNotCurrentDay(u.CurrentChallengeDay)
	}

	rec, err := s.store.GetDay(ctx, u.ID, dayNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("failed to get day %d: %w", dayNumber, err)
	}

	if !rec.AllTasksCompleted {
		return nil, ErrTasksIncomplete
	}

	completed, err := s.store.MarkDayCompleted(ctx, u.ID, dayNumber, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errDayLocked(dayNumber)
		}
		return nil, fmt.Errorf("failed to complete day %d: %w", dayNumber, err)
	}

	challengeCompleted := dayNumber == day.MaxDayNumber
	if challengeCompleted {
		if _, err := s.store.CompleteChallenge(ctx, u.ID); err != nil {
			return nil, fmt.Errorf("failed to finalize challenge: %w", err)
		}
	} else {
		if err := s.store.AdvanceDay(ctx, u.ID, dayNumber); err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to advance day: %w", err)
		}
	}

	// Push is best effort; a delivery failure never fails the completion.
	if s.notifications != nil {
		if err := s.notifications.NotifyDayCompleted(ctx, u.ID, dayNumber, challengeCompleted); err != nil {
			log.Printf("CompleteDay: push notification failed for user %s: %v", u.ID, err)
		}
	}

	return &CompleteDayResult{Record: completed, ChallengeCompleted: challengeCompleted}, nil
}

// DayHistory is a page of day records ordered by day number.
type DayHistory struct {
	Records     []*day.Record
	Total       int
	TotalPages  int
	CurrentPage int
}

func (s *TaskService) GetDayHistory(ctx context.Context, clerkID string, page, limit int) (*DayHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}

	u, err := s.getUser(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	records, total, err := s.store.ListDays(ctx, u.ID, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list day history: %w", err)
	}

	totalPages := (total + limit - 1) / limit

	return &DayHistory{
		Records:     records,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

func (s *TaskService) getUser(ctx context.Context, clerkID string) (*user.User, error) {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *TaskService) createDay(ctx context.Context, userID uuid.UUID, dayNumber int, tasks day.Tasks) (*day.Record, error) {
	now := time.Now()
	rec := &day.Record{
		ID:                uuid.New(),
		UserID:            userID,
		DayNumber:         dayNumber,
		Date:              now,
		Tasks:             tasks,
		AllTasksCompleted: tasks.AllCompleted(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.InsertDay(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create day %d: %w", dayNumber, err)
	}
	return rec, nil
}
