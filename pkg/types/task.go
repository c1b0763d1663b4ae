package types

// Field length limits enforced by validation and mirrored in the schema DDL.
const (
	TitleMaxLen       = 255
	DescriptionMaxLen = 500
	StatusMaxLen      = 100
)

// Task represents a persisted unit of work. The ID is assigned by the
// store at insert time and never reused or client-supplied.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	DueDate     *Date   `json:"due_date"`
}

// NewTask is a validated task-creation record. It carries no ID; any
// client-supplied ID is discarded before validation.
type NewTask struct {
	Title       string
	Description *string
	Status      string
	DueDate     *Date
}

// TaskPatch is a partial update. Nil pointer fields were absent from the
// request and leave the stored value unchanged. Description and DueDate
// are nullable, so their presence is tracked separately: a present field
// with a nil value clears the stored value.
type TaskPatch struct {
	Title  *string
	Status *string

	Description    *string
	HasDescription bool

	DueDate    *Date
	HasDueDate bool
}

// IsZero reports whether the patch carries no fields at all.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Status == nil && !p.HasDescription && !p.HasDueDate
}

// Apply overlays the patch onto a task, mutating only the present fields.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.HasDescription {
		t.Description = p.Description
	}
	if p.HasDueDate {
		t.DueDate = p.DueDate
	}
}
