package user

import (
	"time"

	"github.com/google/uuid"
)

type ChallengeStatus string

const (
	StatusNotStarted ChallengeStatus = "not_started"
	StatusActive     ChallengeStatus = "active"
	StatusCompleted  ChallengeStatus = "completed"
	StatusFailed     ChallengeStatus = "failed"
)

type User struct {
	ID                  uuid.UUID       `json:"id"`
	ClerkID             string          `json:"clerkId"`
	Email               string          `json:"email"`
	Name                string          `json:"name"`
	Age                 *int            `json:"age,omitempty"`
	Height              *string         `json:"height,omitempty"`
	Weight              *string         `json:"weight,omitempty"`
	FitnessGoal         *string         `json:"fitnessGoal,omitempty"`
	CurrentChallengeDay int             `json:"currentChallengeDay"`
	ChallengeStartDate  *time.Time      `json:"challengeStartDate"`
	ChallengeStatus     ChallengeStatus `json:"challengeStatus"`
	TotalResets         int             `json:"totalResets"`
	CompletedChallenges int             `json:"completedChallenges"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// Active reports whether the user is inside a running challenge cycle.
func (u *User) Active() bool {
	return u.ChallengeStatus == StatusActive
}
