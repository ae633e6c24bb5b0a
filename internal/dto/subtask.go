package dto

// CreateSubtaskRequest leaves description unbound; the service checks it
// after the parent task lookup.
type CreateSubtaskRequest struct {
	Task        *int64  `json:"task" binding:"required"`
	Description *string `json:"description"`
	IsCompleted bool    `json:"is_completed"`
}

// UpdateSubtaskRequest serves PUT (description required, checked by the
// handler) and PATCH. The parent task cannot be changed.
type UpdateSubtaskRequest struct {
	Description *string `json:"description" binding:"omitempty,min=1"`
	IsCompleted *bool   `json:"is_completed"`
}

type SubtaskResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}
