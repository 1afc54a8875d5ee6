package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"seventyFiveHardAPI/internal/types/day"
	"seventyFiveHardAPI/internal/types/notification"
	"seventyFiveHardAPI/internal/types/photo"
	"seventyFiveHardAPI/internal/types/user"
)

// MemoryStore is the in-memory Store used by tests. It mirrors the
// Postgres implementation's semantics, including the day_completed
// immutability predicate on UpdateDayTasks.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*user.User
	days    map[uuid.UUID]map[int]*day.Record
	photos  map[uuid.UUID]*photo.Photo
	devices map[uuid.UUID][]*notification.DeviceToken
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[uuid.UUID]*user.User),
		days:    make(map[uuid.UUID]map[int]*day.Record),
		photos:  make(map[uuid.UUID]*photo.Photo),
		devices: make(map[uuid.UUID][]*notification.DeviceToken),
	}
}

func copyUser(u *user.User) *user.User {
	c := *u
	return &c
}

func copyDay(rec *day.Record) *day.Record {
	c := *rec
	return &c
}

func copyPhoto(p *photo.Photo) *photo.Photo {
	c := *p
	return &c
}

func (s *MemoryStore) CreateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = copyUser(u)
	return nil
}

func (s *MemoryStore) findByClerkID(clerkID string) (*user.User, bool) {
	for _, u := range s.users {
		if u.ClerkID == clerkID {
			return u, true
		}
	}
	return nil, false
}

func (s *MemoryStore) GetUserByClerkID(_ context.Context, clerkID string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.findByClerkID(clerkID)
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) UpdateUserProfile(_ context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.findByClerkID(clerkID)
	if !ok {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Age != nil {
		u.Age = req.Age
	}
	if req.Height != nil {
		u.Height = req.Height
	}
	if req.Weight != nil {
		u.Weight = req.Weight
	}
	if req.FitnessGoal != nil {
		u.FitnessGoal = req.FitnessGoal
	}
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

func (s *MemoryStore) DeleteUserByClerkID(_ context.Context, clerkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.findByClerkID(clerkID)
	if !ok {
		return ErrNotFound
	}
	delete(s.users, u.ID)
	delete(s.days, u.ID)
	delete(s.devices, u.ID)
	return nil
}

func (s *MemoryStore) StartChallenge(_ context.Context, userID uuid.UUID, startedAt time.Time) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.ChallengeStatus = user.StatusActive
	u.CurrentChallengeDay = 1
	u.ChallengeStartDate = &startedAt
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

func (s *MemoryStore) ResetChallenge(_ context.Context, userID uuid.UUID, startedAt time.Time) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.ChallengeStatus = user.StatusActive
	u.CurrentChallengeDay = 1
	u.ChallengeStartDate = &startedAt
	u.TotalResets++
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

func (s *MemoryStore) CompleteChallenge(_ context.Context, userID uuid.UUID) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.ChallengeStatus = user.StatusCompleted
	u.CompletedChallenges++
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

func (s *MemoryStore) AdvanceDay(_ context.Context, userID uuid.UUID, fromDay int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.CurrentChallengeDay != fromDay {
		return ErrNotFound
	}
	u.CurrentChallengeDay++
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) GetDay(_ context.Context, userID uuid.UUID, dayNumber int) (*day.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.days[userID][dayNumber]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDay(rec), nil
}

func (s *MemoryStore) InsertDay(_ context.Context, rec *day.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.days[rec.UserID] == nil {
		s.days[rec.UserID] = make(map[int]*day.Record)
	}
	s.days[rec.UserID][rec.DayNumber] = copyDay(rec)
	return nil
}

func (s *MemoryStore) ReplaceDay(_ context.Context, rec *day.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.days[rec.UserID][rec.DayNumber]
	if !ok {
		return ErrNotFound
	}
	c := copyDay(rec)
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	s.days[rec.UserID][rec.DayNumber] = c
	return nil
}

func (s *MemoryStore) UpdateDayTasks(_ context.Context, userID uuid.UUID, dayNumber int, tasks day.Tasks, allCompleted bool) (*day.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.days[userID][dayNumber]
	if !ok || rec.DayCompleted {
		return nil, ErrNotFound
	}
	rec.Tasks = tasks
	rec.AllTasksCompleted = allCompleted
	rec.UpdatedAt = time.Now()
	return copyDay(rec), nil
}

func (s *MemoryStore) MarkDayCompleted(_ context.Context, userID uuid.UUID, dayNumber int, completedAt time.Time) (*day.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.days[userID][dayNumber]
	if !ok || rec.DayCompleted {
		return nil, ErrNotFound
	}
	rec.DayCompleted = true
	rec.CompletedAt = &completedAt
	rec.UpdatedAt = time.Now()
	return copyDay(rec), nil
}

func (s *MemoryStore) sortedDays(userID uuid.UUID) []*day.Record {
	records := []*day.Record{}
	for _, rec := range s.days[userID] {
		records = append(records, copyDay(rec))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].DayNumber < records[j].DayNumber
	})
	return records
}

func (s *MemoryStore) ListDays(_ context.Context, userID uuid.UUID, offset, limit int) ([]*day.Record, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.sortedDays(userID)
	total := len(all)
	if offset >= total {
		return []*day.Record{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (s *MemoryStore) ListAllDays(_ context.Context, userID uuid.UUID) ([]*day.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedDays(userID), nil
}

func (s *MemoryStore) GetPhoto(_ context.Context, photoID, userID uuid.UUID) (*photo.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photos[photoID]
	if !ok || p.UserID != userID {
		return nil, ErrNotFound
	}
	return copyPhoto(p), nil
}

func (s *MemoryStore) GetPhotoByDay(_ context.Context, userID uuid.UUID, dayNumber int) (*photo.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.photos {
		if p.UserID == userID && p.DayNumber == dayNumber {
			return copyPhoto(p), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SavePhoto(_ context.Context, p *photo.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Upsert on (user, dayNumber), matching the unique index.
	for id, existing := range s.photos {
		if existing.UserID == p.UserID && existing.DayNumber == p.DayNumber {
			c := copyPhoto(p)
			c.ID = existing.ID
			c.CreatedAt = existing.CreatedAt
			c.UpdatedAt = time.Now()
			s.photos[id] = c
			p.ID = existing.ID
			return nil
		}
	}
	s.photos[p.ID] = copyPhoto(p)
	return nil
}

func (s *MemoryStore) DeletePhoto(_ context.Context, photoID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[photoID]
	if !ok || p.UserID != userID {
		return ErrNotFound
	}
	delete(s.photos, photoID)
	return nil
}

func (s *MemoryStore) ListPhotos(_ context.Context, userID uuid.UUID) ([]*photo.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	photos := []*photo.Photo{}
	for _, p := range s.photos {
		if p.UserID == userID {
			photos = append(photos, copyPhoto(p))
		}
	}
	sort.Slice(photos, func(i, j int) bool {
		return photos[i].DayNumber < photos[j].DayNumber
	})
	return photos, nil
}

func (s *MemoryStore) RegisterDevice(_ context.Context, t *notification.DeviceToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.devices[t.UserID] {
		if existing.Token == t.Token {
			existing.Platform = t.Platform
			return nil
		}
	}
	c := *t
	s.devices[t.UserID] = append(s.devices[t.UserID], &c)
	return nil
}

func (s *MemoryStore) ListDeviceTokens(_ context.Context, userID uuid.UUID) ([]*notification.DeviceToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tokens := []*notification.DeviceToken{}
	for _, t := range s.devices[userID] {
		c := *t
		tokens = append(tokens, &c)
	}
	return tokens, nil
}
