package dto

import "github.com/google/uuid"

type TodoCreateRequest struct {
	Content       string      `json:"content"`
	PriorityID    uuid.UUID   `json:"priority_id"`
	CategoriesIDs []uuid.UUID `json:"categories_ids"`
}

type TodoUpdateRequest struct {
	Content       string      `json:"content"`
	PriorityID    uuid.UUID   `json:"priority_id"`
	CategoriesIDs []uuid.UUID `json:"categories_ids"`
	IsCompleted   bool        `json:"is_completed"`
}
