package day

import (
	"time"

	"github.com/google/uuid"
)

// The six daily tasks of the 75 Hard challenge. Each task carries a
// completed flag plus task-specific detail fields supplied by the client.

type WorkoutTask struct {
	Completed bool    `json:"completed"`
	Duration  *int    `json:"duration,omitempty"` // minutes
	Type      *string `json:"type,omitempty"`     // cardio, strength, etc.
	Notes     *string `json:"notes,omitempty"`
}

type WaterIntakeTask struct {
	Completed bool     `json:"completed"`
	Amount    *float64 `json:"amount,omitempty"` // ounces
	Notes     *string  `json:"notes,omitempty"`
}

type DietComplianceTask struct {
	Completed bool    `json:"completed"`
	DietType  *string `json:"dietType,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

type ReadingTask struct {
	Completed bool    `json:"completed"`
	Pages     *int    `json:"pages,omitempty"`
	BookTitle *string `json:"bookTitle,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

type ProgressPhotoTask struct {
	Completed bool       `json:"completed"`
	PhotoID   *uuid.UUID `json:"photoId,omitempty"`
}

type Tasks struct {
	Workout1       WorkoutTask        `json:"workout1"`
	Workout2       WorkoutTask        `json:"workout2"`
	WaterIntake    WaterIntakeTask    `json:"waterIntake"`
	DietCompliance DietComplianceTask `json:"dietCompliance"`
	Reading        ReadingTask        `json:"reading"`
	ProgressPhoto  ProgressPhotoTask  `json:"progressPhoto"`
}

// AllCompleted derives the day-wide completion flag from the six task flags.
// It is invoked before every persist of a Record; the stored
// all_tasks_completed column is never written from any other source.
func (t Tasks) AllCompleted() bool {
	return t.Workout1.Completed &&
		t.Workout2.Completed &&
		t.WaterIntake.Completed &&
		t.DietCompliance.Completed &&
		t.Reading.Completed &&
		t.ProgressPhoto.Completed
}

// TasksPatch is a partial task map. Each present key replaces the whole
// named sub-record; absent keys leave the existing sub-record untouched.
// Sub-fields are not deep-merged.
type TasksPatch struct {
	Workout1       *WorkoutTask        `json:"workout1,omitempty"`
	Workout2       *WorkoutTask        `json:"workout2,omitempty"`
	WaterIntake    *WaterIntakeTask    `json:"waterIntake,omitempty"`
	DietCompliance *DietComplianceTask `json:"dietCompliance,omitempty"`
	Reading        *ReadingTask        `json:"reading,omitempty"`
	ProgressPhoto  *ProgressPhotoTask  `json:"progressPhoto,omitempty"`
}

// Apply returns a copy of t with every sub-record present in the patch
// replaced key-wise.
func (t Tasks) Apply(p TasksPatch) Tasks {
	if p.Workout1 != nil {
		t.Workout1 = *p.Workout1
	}
	if p.Workout2 != nil {
		t.Workout2 = *p.Workout2
	}
	if p.WaterIntake != nil {
		t.WaterIntake = *p.WaterIntake
	}
	if p.DietCompliance != nil {
		t.DietCompliance = *p.DietCompliance
	}
	if p.Reading != nil {
		t.Reading = *p.Reading
	}
	if p.ProgressPhoto != nil {
		t.ProgressPhoto = *p.ProgressPhoto
	}
	return t
}

// Record is one day of a user's current challenge cycle, unique on
// (user, dayNumber). Once DayCompleted is set the record is immutable
// to task writes.
type Record struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"userId"`
	DayNumber         int        `json:"dayNumber"`
	Date              time.Time  `json:"date"`
	Tasks             Tasks      `json:"tasks"`
	AllTasksCompleted bool       `json:"allTasksCompleted"`
	DayCompleted      bool       `json:"dayCompleted"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	GeneralNotes      *string    `json:"generalNotes,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

const (
	MinDayNumber = 1
	MaxDayNumber = 75
)
