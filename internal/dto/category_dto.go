package dto

type CategoryCreateRequest struct {
	Name string `json:"name"`
}
