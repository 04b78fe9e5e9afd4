package dto

type UpsertTemplateRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category,omitempty"`
	Active   *bool  `json:"active,omitempty"`
}

// Validate rejects non-conforming input before any handler logic runs.
func (r *UpsertTemplateRequest) Validate() string {
	if r.Title == "" {
		return "title is required"
	}
	if r.Body == "" {
		return "body is required"
	}
	return ""
}
