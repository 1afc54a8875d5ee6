package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"seventyFiveHardAPI/internal/store"
	"seventyFiveHardAPI/internal/types/challenge"
	"seventyFiveHardAPI/internal/types/day"
	"seventyFiveHardAPI/internal/types/user"
)

// ChallengeService owns the per-user challenge lifecycle: start, reset,
// completion and the derived progress view. The day-by-day task flow lives
// in TaskService.
type ChallengeService struct {
	store store.Store
	locks *UserLocks
}

func NewChallengeService(st store.Store, locks *UserLocks) *ChallengeService {
	return &ChallengeService{store: st, locks: locks}
}

// StartResult is returned by Start and Reset: the updated challenge state
// plus the freshly issued day-1 record.
type StartResult struct {
	User       *user.User
	CurrentDay *day.Record
}

// Start begins a challenge cycle: status becomes active, the day pointer
// moves to 1 and a fresh day-1 record is issued. Callable from any status;
// starting over an active or completed cycle simply begins a new one.
func (s *ChallengeService) Start(ctx context.Context, clerkID string) (*StartResult, error) {
	u, err := s.getUser(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(u.ID)
	defer unlock()

	updated, err := s.store.StartChallenge(ctx, u.ID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to start challenge: %w", err)
	}

	firstDay, err := s.freshDayOne(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &StartResult{User: updated, CurrentDay: firstDay}, nil
}

// Reset abandons the current run: the day pointer goes back to 1, the
// lifetime reset counter is incremented and day 1 is reissued. Records from
// the abandoned run stay in place as history.
func (s *ChallengeService) Reset(ctx context.Context, clerkID string) (*StartResult, error) {
	u, err := s.getUser(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(u.ID)
	defer unlock()

	updated, err := s.store.ResetChallenge(ctx, u.ID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to reset challenge: %w", err)
	}

	firstDay, err := s.freshDayOne(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &StartResult{User: updated, CurrentDay: firstDay}, nil
}

// Complete force-completes the challenge (manual override; day 75
// completion triggers the same transition through TaskService).
func (s *ChallengeService) Complete(ctx context.Context, clerkID string) (*user.User, error) {
	u, err := s.getUser(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(u.ID)
	defer unlock()

	updated, err := s.store.CompleteChallenge(ctx, u.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to complete challenge: %w", err)
	}
	return updated, nil
}

// Progress returns the challenge state, every day record in order and the
// derived statistics.
func (s *ChallengeService) Progress(ctx context.Context, clerkID string) (*challenge.Progress, error) {
	u, err := s.getUser(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	days, err := s.store.ListAllDays(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenge days: %w", err)
	}

	completedDays := 0
	for _, rec := range days {
		if rec.DayCompleted {
			completedDays++
		}
	}

	totalDays := len(days)
	rate := 0.0
	if totalDays > 0 {
		rate = math.Round(float64(completedDays)/float64(totalDays)*1000) / 10
	}

	return &challenge.Progress{
		User:          u,
		ChallengeDays: days,
		Stats: challenge.Stats{
			CompletedDays:  completedDays,
			CurrentStreak:  u.CurrentChallengeDay,
			TotalDays:      totalDays,
			CompletionRate: rate,
		},
	}, nil
}

// ShareCode builds a QR code wrapping a deep link to the user's progress
// page, for sharing the run with friends.
func (s *ChallengeService) ShareCode(ctx context.Context, clerkID string) (shareURL, qrBase64 string, err error) {
	u, err := s.getUser(ctx, clerkID)
	if err != nil {
		return "", "", err
	}

	shareURL = fmt.Sprintf("seventyfivehard://progress/%s", u.ID)

	pngBytes, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate QR png: %w", err)
	}

	return shareURL, base64.StdEncoding.EncodeToString(pngBytes), nil
}

func (s *ChallengeService) getUser(ctx context.Context, clerkID string) (*user.User, error) {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// freshDayOne issues a clean day-1 record. Day records are unique on
// (user, dayNumber), so a leftover day 1 from a previous run is overwritten
// in place rather than duplicated.
func (s *ChallengeService) freshDayOne(ctx context.Context, userID uuid.UUID) (*day.Record, error) {
	now := time.Now()
	rec := &day.Record{
		ID:        uuid.New(),
		UserID:    userID,
		DayNumber: 1,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.ReplaceDay(ctx, rec)
	if errors.Is(err, store.ErrNotFound) {
		err = s.store.InsertDay(ctx, rec)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create day 1: %w", err)
	}

	return s.store.GetDay(ctx, userID, 1)
}
