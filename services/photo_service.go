package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"seventyFiveHardAPI/internal/blob"
	"seventyFiveHardAPI/internal/store"
	"seventyFiveHardAPI/internal/types/day"
	"seventyFiveHardAPI/internal/types/photo"
)

// PhotoService stores progress photos in the external blob store and keeps
// the owning day record's progressPhoto task slot in sync.
type PhotoService struct {
	store store.Store
	blobs blob.Store
	locks *UserLocks
}

func NewPhotoService(st store.Store, blobs blob.Store, locks *UserLocks) *PhotoService {
	return &PhotoService{store: st, blobs: blobs, locks: locks}
}

// UploadResult reports whether the upload created a new photo or replaced
// the day's existing one.
type UploadResult struct {
	Photo   *photo.Photo
	Created bool
}

// Upload stores the image and upserts the day's photo record. A photo for a
// day that already has one replaces it, deleting the old blob. The owning
// day record (if it exists and is still open) gets its progressPhoto task
// marked completed and linked.
func (s *PhotoService) Upload(ctx context.Context, clerkID string, dayNumber int, notes *string, contentType string, data []byte) (*UploadResult, error) {
	if dayNumber < day.MinDayNumber || dayNumber > day.MaxDayNumber {
		return nil, ErrInvalidDayNumber
	}

	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	unlock := s.locks.Lock(u.ID)
	defer unlock()

	// A day-completed record is immutable, and that includes its photo slot.
	rec, err := s.store.GetDay(ctx, u.ID, dayNumber)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to get day %d: %w", dayNumber, err)
	}
	if rec != nil && rec.DayCompleted {
		return nil, errDayLocked(dayNumber)
	}

	existing, err := s.store.GetPhotoByDay(ctx, u.ID, dayNumber)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing photo: %w", err)
	}

	key := fmt.Sprintf("progress-photos/%s/day-%d-%s", u.ID, dayNumber, uuid.New())
	ref, err := s.blobs.Save(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	now := time.Now()
	p := &photo.Photo{
		ID:         uuid.New(),
		UserID:     u.ID,
		DayNumber:  dayNumber,
		ImageURL:   ref.URL,
		StorageKey: ref.Key,
		UploadDate: now,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.SavePhoto(ctx, p); err != nil {
		// Roll the new blob back so the store and bucket stay in sync.
		if delErr := s.blobs.Delete(ctx, ref.Key); delErr != nil {
			log.Printf("Upload: failed to clean up blob %s: %v", ref.Key, delErr)
		}
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	if existing != nil {
		if err := s.blobs.Delete(ctx, existing.StorageKey); err != nil {
			log.Printf("Upload: failed to delete replaced blob %s: %v", existing.StorageKey, err)
		}
	}

	if err := s.setPhotoTask(ctx, rec, true, &p.ID); err != nil {
		return nil, err
	}

	return &UploadResult{Photo: p, Created: existing == nil}, nil
}

func (s *PhotoService) List(ctx context.Context, clerkID string) ([]*photo.Photo, error) {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s.store.ListPhotos(ctx, u.ID)
}

// Delete removes the photo, its blob, and clears the owning day record's
// progressPhoto task slot.
func (s *PhotoService) Delete(ctx context.Context, clerkID string, photoID uuid.UUID) error {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	unlock := s.locks.Lock(u.ID)
	defer unlock()

	p, err := s.store.GetPhoto(ctx, photoID, u.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return fmt.Errorf("failed to get photo: %w", err)
	}

	rec, err := s.store.GetDay(ctx, u.ID, p.DayNumber)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to get day %d: %w", p.DayNumber, err)
	}
	if rec != nil && rec.DayCompleted {
		return errDayLocked(p.DayNumber)
	}

	if err := s.blobs.Delete(ctx, p.StorageKey); err != nil {
		log.Printf("Delete: failed to delete blob %s: %v", p.StorageKey, err)
	}

	if err := s.setPhotoTask(ctx, rec, false, nil); err != nil {
		return err
	}

	if err := s.store.DeletePhoto(ctx, photoID, u.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

// setPhotoTask updates the progressPhoto slot on an open day record and
// re-derives the all-tasks flag before persisting. A nil record (photo
// uploaded before the day was ever opened) is a no-op.
func (s *PhotoService) setPhotoTask(ctx context.Context, rec *day.Record, completed bool, photoID *uuid.UUID) error {
	if rec == nil {
		return nil
	}

	tasks := rec.Tasks
	tasks.ProgressPhoto = day.ProgressPhotoTask{Completed: completed, PhotoID: photoID}

	if _, err := s.store.UpdateDayTasks(ctx, rec.UserID, rec.DayNumber, tasks, tasks.AllCompleted()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errDayLocked(rec.DayNumber)
		}
		return fmt.Errorf("failed to update photo task: %w", err)
	}
	return nil
}
