package dto

import "github.com/easelhq/easel/infrastructure/api/jsonapi"

// ColorAttributes holds color fields in API responses.
type ColorAttributes struct {
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

// ColorData is a JSON:API color resource.
type ColorData struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Attributes ColorAttributes `json:"attributes"`
}

// ColorResponse wraps a single color.
type ColorResponse struct {
	Data ColorData `json:"data"`
}

// ColorListResponse wraps a paginated list of colors.
type ColorListResponse struct {
	Data  []ColorData    `json:"data"`
	Meta  *jsonapi.Meta  `json:"meta,omitempty"`
	Links *jsonapi.Links `json:"links,omitempty"`
}

// ColorCreateRequest is the JSON:API request body for creating a color.
type ColorCreateRequest struct {
	Data struct {
		Type       string          `json:"type"`
		Attributes ColorAttributes `json:"attributes"`
	} `json:"data"`
}
