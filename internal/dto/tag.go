package dto

type TagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type PatchTagRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
