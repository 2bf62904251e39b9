package dto

type WebhookCreateRequest struct {
	URL      string   `json:"url"`
	Events   []string `json:"events"`
	IsActive *bool    `json:"is_active"`
}

// Active defaults to true when the field is omitted.
func (r *WebhookCreateRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}
