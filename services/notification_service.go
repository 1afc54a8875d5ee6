package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"seventyFiveHardAPI/internal/store"
	notiftypes "seventyFiveHardAPI/internal/types/notification"
)

// PushProvider delivers push notifications to a user's registered devices.
type PushProvider interface {
	SendPush(ctx context.Context, tokens []*notiftypes.DeviceToken, title, body string, data map[string]string) error
}

type NotificationService struct {
	store store.Store
	push  PushProvider
}

func NewNotificationService(st store.Store) *NotificationService {
	return &NotificationService{store: st}
}

// SetPushProvider injects the provider after construction; push stays
// disabled when none is configured.
func (s *NotificationService) SetPushProvider(p PushProvider) {
	s.push = p
}

func (s *NotificationService) RegisterDevice(ctx context.Context, clerkID string, req *notiftypes.RegisterDeviceRequest) error {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	token := &notiftypes.DeviceToken{
		ID:        uuid.New(),
		UserID:    u.ID,
		Token:     req.Token,
		Platform:  req.Platform,
		CreatedAt: time.Now(),
	}
	return s.store.RegisterDevice(ctx, token)
}

// Milestone days that earn a celebratory push besides the final one.
var milestoneDays = map[int]bool{25: true, 50: true}

// NotifyDayCompleted pushes a milestone message when a notable day or the
// whole challenge is completed. Quiet days send nothing.
func (s *NotificationService) NotifyDayCompleted(ctx context.Context, userID uuid.UUID, dayNumber int, challengeCompleted bool) error {
	if s.push == nil {
		return nil
	}

	var title, body string
	switch {
	case challengeCompleted:
		title = "75 Hard complete!"
		body = "You finished all 75 days. Incredible discipline."
	case milestoneDays[dayNumber]:
		title = fmt.Sprintf("Day %d done", dayNumber)
		body = fmt.Sprintf("%d days down, %d to go. Keep pushing.", dayNumber, 75-dayNumber)
	default:
		return nil
	}

	tokens, err := s.store.ListDeviceTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list device tokens: %w", err)
	}

	return s.push.SendPush(ctx, tokens, title, body, map[string]string{
		"type": "day_completed",
		"day":  strconv.Itoa(dayNumber),
	})
}
