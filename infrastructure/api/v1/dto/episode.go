// Package dto defines the request and response shapes for the v1 API.
package dto

import (
	"time"

	"github.com/easelhq/easel/infrastructure/api/jsonapi"
)

// EpisodeAttributes holds episode fields in API responses.
type EpisodeAttributes struct {
	Title          string     `json:"title"`
	Season         int        `json:"season"`
	Episode        int        `json:"episode"`
	Code           string     `json:"code"`
	PaintingImgSrc string     `json:"painting_img_src,omitempty"`
	PaintingYtSrc  string     `json:"painting_yt_src,omitempty"`
	AirDate        *time.Time `json:"air_date,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// EpisodeData is a JSON:API episode resource.
type EpisodeData struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Attributes EpisodeAttributes `json:"attributes"`
}

// EpisodeResponse wraps a single episode.
type EpisodeResponse struct {
	Data EpisodeData `json:"data"`
}

// EpisodeListResponse wraps a paginated list of episodes.
type EpisodeListResponse struct {
	Data  []EpisodeData  `json:"data"`
	Meta  *jsonapi.Meta  `json:"meta,omitempty"`
	Links *jsonapi.Links `json:"links,omitempty"`
}

// EpisodeDetailsResponse wraps an episode with its palette and subject tags.
type EpisodeDetailsResponse struct {
	Data           EpisodeData         `json:"data"`
	Palette        []ColorData         `json:"palette"`
	SubjectMatters []SubjectMatterData `json:"subject_matters"`
}

// EpisodeCreateAttributes holds the fields accepted when creating an episode.
type EpisodeCreateAttributes struct {
	Title          string     `json:"title"`
	Season         int        `json:"season"`
	Episode        int        `json:"episode"`
	PaintingImgSrc string     `json:"painting_img_src,omitempty"`
	PaintingYtSrc  string     `json:"painting_yt_src,omitempty"`
	AirDate        *time.Time `json:"air_date,omitempty"`
}

// EpisodeCreateRequest is the JSON:API request body for creating an episode.
type EpisodeCreateRequest struct {
	Data struct {
		Type       string                  `json:"type"`
		Attributes EpisodeCreateAttributes `json:"attributes"`
	} `json:"data"`
}
