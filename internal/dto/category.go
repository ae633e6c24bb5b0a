package dto

// CategoryRequest is the body for POST and PUT; both fields are required.
type CategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color" binding:"required,len=7,hexcolor"`
}

// PatchCategoryRequest is the body for PATCH; nil = не менять.
type PatchCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Color *string `json:"color" binding:"omitempty,len=7,hexcolor"`
}

type CategoryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
