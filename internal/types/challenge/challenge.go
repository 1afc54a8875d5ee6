package challenge

import (
	"seventyFiveHardAPI/internal/types/day"
	"seventyFiveHardAPI/internal/types/user"
)

// Stats are derived from the fetched day records, never stored.
type Stats struct {
	CompletedDays  int     `json:"completedDays"`
	CurrentStreak  int     `json:"currentStreak"`
	TotalDays      int     `json:"totalDays"`
	CompletionRate float64 `json:"completionRate"`
}

type Progress struct {
	User          *user.User    `json:"user"`
	ChallengeDays []*day.Record `json:"challengeDays"`
	Stats         Stats         `json:"stats"`
}

type StartResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	User       *user.User  `json:"user"`
	CurrentDay *day.Record `json:"currentDay"`
}

type CompleteResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}

type ProgressResponse struct {
	Success  bool      `json:"success"`
	Progress *Progress `json:"progress"`
}

type ShareResponse struct {
	Success      bool   `json:"success"`
	ShareURL     string `json:"shareUrl"`
	QrCodeBase64 string `json:"qrCodeBase64"`
}
