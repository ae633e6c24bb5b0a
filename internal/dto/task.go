package dto

import "time"

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	DueDate     *Date   `json:"due_date"` // optional: "2026-02-19" or RFC3339
	Priority    *int    `json:"priority" binding:"omitempty,min=-2147483648,max=2147483647"`
	Status      *string `json:"status" binding:"omitempty,min=1,max=20"`
	Category    *int64  `json:"category"`
	TagIDs      []int64 `json:"tag_ids"`
}

// UpdateTaskRequest serves PUT and PATCH. Nullable fields accept an explicit
// null to clear; TagIDs nil keeps the tag set, [] clears it.
type UpdateTaskRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description Nullable[string] `json:"description"`
	DueDate     Nullable[Date]   `json:"due_date"`
	Priority    *int             `json:"priority" binding:"omitempty,min=-2147483648,max=2147483647"`
	Status      *string          `json:"status" binding:"omitempty,min=1,max=20"`
	Category    Nullable[int64]  `json:"category"`
	TagIDs      *[]int64         `json:"tag_ids"`
}

type TaskResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	DueDate     *Date         `json:"due_date" swaggertype:"string" format:"date"`
	Priority    int           `json:"priority"`
	Status      string        `json:"status"`
	Category    *int64        `json:"category"`
	Tags        []TagResponse `json:"tags"`
	TagIDs      []int64       `json:"tag_ids"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
