package day

import "seventyFiveHardAPI/internal/types/user"

type UpdateTasksRequest struct {
	DayNumber int        `json:"dayNumber" validate:"required,min=1,max=75"`
	Tasks     TasksPatch `json:"tasks"`
}

type CompleteDayRequest struct {
	DayNumber int `json:"dayNumber" validate:"required,min=1,max=75"`
}

type CurrentDayResponse struct {
	Success             bool                 `json:"success"`
	Message             string               `json:"message,omitempty"`
	CurrentDay          *Record              `json:"currentDay"`
	User                *user.User           `json:"user"`
	ChallengeStatus     user.ChallengeStatus `json:"challengeStatus"`
	CanAccessCurrentDay bool                 `json:"canAccessCurrentDay"`
}

type UpdateTasksResponse struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	ChallengeDay *Record `json:"challengeDay"`
}

type CompleteDayResponse struct {
	Success            bool    `json:"success"`
	Message            string  `json:"message"`
	ChallengeDay       *Record `json:"challengeDay"`
	ChallengeCompleted bool    `json:"challengeCompleted"`
}

type HistoryResponse struct {
	Success       bool      `json:"success"`
	ChallengeDays []*Record `json:"challengeDays"`
	TotalPages    int       `json:"totalPages"`
	CurrentPage   int       `json:"currentPage"`
	Total         int       `json:"total"`
}
