package domain

// Subtask belongs to a task and is owned through it.
type Subtask struct {
	ID          int64
	TaskID      int64
	Description string
	IsCompleted bool
}
