package model

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s string) bool {
	switch TaskStatus(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskDraft is a candidate payload for task creation. Optional fields are
// pointers so validation can tell "absent" from "empty".
type TaskDraft struct {
	Title       string
	Description *string
	Status      *string
	DueDate     *string
}

// TaskPatch is a partial update. A nil pointer with its Set flag raised means
// the caller supplied an explicit null; Set false means the field was absent
// and the stored value is preserved verbatim. Null clears description and
// dueDate; a null title or status is carried through so validation can
// reject it after ownership has been checked.
type TaskPatch struct {
	Title          *string
	TitleSet       bool
	Description    *string
	DescriptionSet bool
	Status         *string
	StatusSet      bool
	DueDate        *string
	DueDateSet     bool
}

// Empty reports whether the patch carries no fields at all.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && !p.TitleSet && !p.DescriptionSet &&
		p.Status == nil && !p.StatusSet && !p.DueDateSet
}
