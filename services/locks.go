package services

import (
	"sync"

	"github.com/google/uuid"
)

// UserLocks serializes mutating operations per user. Every state change
// (start, reset, task update, day completion, photo upload) is a
// read-modify-write over one user's rows; holding the user's mutex for the
// duration prevents lost updates between racing requests.
type UserLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the per-user mutex and returns the unlock function.
func (l *UserLocks) Lock(userID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
