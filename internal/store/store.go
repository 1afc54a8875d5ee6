package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"seventyFiveHardAPI/internal/types/day"
	"seventyFiveHardAPI/internal/types/notification"
	"seventyFiveHardAPI/internal/types/photo"
	"seventyFiveHardAPI/internal/types/user"
)

// ErrNotFound is returned for any missing row. Services translate it into
// their own NotFound errors at the boundary.
var ErrNotFound = errors.New("record not found")

// Store is the record store behind the challenge engine. The Postgres
// implementation is the production one; the in-memory implementation backs
// the tests.
type Store interface {
	// Users / challenge state. Challenge-state mutations return the
	// updated user row.
	CreateUser(ctx context.Context, u *user.User) error
	GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error)
	UpdateUserProfile(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error)
	DeleteUserByClerkID(ctx context.Context, clerkID string) error

	StartChallenge(ctx context.Context, userID uuid.UUID, startedAt time.Time) (*user.User, error)
	ResetChallenge(ctx context.Context, userID uuid.UUID, startedAt time.Time) (*user.User, error)
	CompleteChallenge(ctx context.Context, userID uuid.UUID) (*user.User, error)
	// AdvanceDay increments the current-day pointer only if it still equals
	// fromDay, so a racing duplicate request cannot double-advance.
	AdvanceDay(ctx context.Context, userID uuid.UUID, fromDay int) error

	// Day records.
	GetDay(ctx context.Context, userID uuid.UUID, dayNumber int) (*day.Record, error)
	InsertDay(ctx context.Context, rec *day.Record) error
	// ReplaceDay overwrites an existing (user, dayNumber) record in place,
	// used when a start or reset reissues day 1.
	ReplaceDay(ctx context.Context, rec *day.Record) error
	// UpdateDayTasks persists tasks and the derived completion flag for a
	// record that is still open; it fails with ErrNotFound if the record is
	// missing or already day-completed.
	UpdateDayTasks(ctx context.Context, userID uuid.UUID, dayNumber int, tasks day.Tasks, allCompleted bool) (*day.Record, error)
	MarkDayCompleted(ctx context.Context, userID uuid.UUID, dayNumber int, completedAt time.Time) (*day.Record, error)
	ListDays(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*day.Record, int, error)
	ListAllDays(ctx context.Context, userID uuid.UUID) ([]*day.Record, error)

	// Progress photos.
	GetPhoto(ctx context.Context, photoID, userID uuid.UUID) (*photo.Photo, error)
	GetPhotoByDay(ctx context.Context, userID uuid.UUID, dayNumber int) (*photo.Photo, error)
	SavePhoto(ctx context.Context, p *photo.Photo) error
	DeletePhoto(ctx context.Context, photoID, userID uuid.UUID) error
	ListPhotos(ctx context.Context, userID uuid.UUID) ([]*photo.Photo, error)

	// Push device tokens.
	RegisterDevice(ctx context.Context, t *notification.DeviceToken) error
	ListDeviceTokens(ctx context.Context, userID uuid.UUID) ([]*notification.DeviceToken, error)
}
