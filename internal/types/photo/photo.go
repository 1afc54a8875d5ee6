package photo

import (
	"time"

	"github.com/google/uuid"
)

// Photo is the progress photo for one day of a user's challenge, unique
// on (user, dayNumber). The image bytes live in the external blob store;
// StorageKey is the provider-assigned object identifier.
type Photo struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	DayNumber  int       `json:"dayNumber"`
	ImageURL   string    `json:"imageUrl"`
	StorageKey string    `json:"storageKey"`
	UploadDate time.Time `json:"uploadDate"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Photo   *Photo `json:"photo"`
}

type ListResponse struct {
	Success bool     `json:"success"`
	Photos  []*Photo `json:"photos"`
}
