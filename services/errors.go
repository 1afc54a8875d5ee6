package services

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map these onto HTTP statuses: AccessGateError is
// 403, the *NotFound sentinels are 404, the rest of the sentinels are 400.

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDayNotFound   = errors.New("day not found")
	ErrPhotoNotFound = errors.New("photo not found")

	ErrNoActiveChallenge = errors.New("no active challenge found")
	ErrTasksIncomplete   = errors.New("complete all tasks before finishing the day")
	ErrInvalidDayNumber  = fmt.Errorf("day number must be between 1 and 75")
)

// AccessGateError is a day-sequence violation: touching a future day,
// touching a day whose predecessor is incomplete, or modifying a completed
// day. The message names the blocking day.
type AccessGateError struct {
	msg string
}

func (e *AccessGateError) Error() string { return e.msg }

func errPreviousDayIncomplete(dayNumber int) error {
	return &AccessGateError{msg: fmt.Sprintf("Complete day %d before accessing day %d", dayNumber-1, dayNumber)}
}

func errFutureDay(currentDay int) error {
	return &AccessGateError{msg: fmt.Sprintf("Cannot access future days. Complete day %d first.", currentDay)}
}

func errDayLocked(dayNumber int) error {
	return &AccessGateError{msg: fmt.Sprintf("Day %d is already completed and cannot be modified.", dayNumber)}
}

func errNotCurrentDay(currentDay int) error {
	return &AccessGateError{msg: fmt.Sprintf("Can only complete current day (%d)", currentDay)}
}
