package dto

import "github.com/easelhq/easel/infrastructure/api/jsonapi"

// SubjectMatterAttributes holds subject matter fields in API responses.
type SubjectMatterAttributes struct {
	Name string `json:"name"`
}

// SubjectMatterData is a JSON:API subject matter resource.
type SubjectMatterData struct {
	Type       string                  `json:"type"`
	ID         string                  `json:"id"`
	Attributes SubjectMatterAttributes `json:"attributes"`
}

// SubjectMatterResponse wraps a single subject matter.
type SubjectMatterResponse struct {
	Data SubjectMatterData `json:"data"`
}

// SubjectMatterListResponse wraps a paginated list of subject matters.
type SubjectMatterListResponse struct {
	Data  []SubjectMatterData `json:"data"`
	Meta  *jsonapi.Meta       `json:"meta,omitempty"`
	Links *jsonapi.Links      `json:"links,omitempty"`
}

// SubjectMatterCreateRequest is the JSON:API request body for creating a
// subject matter.
type SubjectMatterCreateRequest struct {
	Data struct {
		Type       string                  `json:"type"`
		Attributes SubjectMatterAttributes `json:"attributes"`
	} `json:"data"`
}
