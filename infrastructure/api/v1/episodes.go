// Package v1 provides the v1 API routes.
package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/easelhq/easel"
	"github.com/easelhq/easel/application/service"
	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/infrastructure/api/middleware"
	"github.com/easelhq/easel/infrastructure/api/v1/dto"
)

// EpisodesRouter handles episode API endpoints.
type EpisodesRouter struct {
	client *easel.Client
	logger *slog.Logger
}

// NewEpisodesRouter creates a new EpisodesRouter.
func NewEpisodesRouter(client *easel.Client) *EpisodesRouter {
	return &EpisodesRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for episode endpoints.
func (e *EpisodesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", e.List)
	router.Post("/", e.Add)
	router.Get("/{id}", e.Get)
	router.Delete("/{id}", e.Delete)
	router.Get("/{id}/colors", e.ListColors)
	router.Post("/{id}/colors/{color_id}", e.LinkColor)
	router.Delete("/{id}/colors/{color_id}", e.UnlinkColor)
	router.Get("/{id}/subject-matters", e.ListSubjectMatters)
	router.Post("/{id}/subject-matters/{subject_matter_id}", e.LinkSubjectMatter)
	router.Delete("/{id}/subject-matters/{subject_matter_id}", e.UnlinkSubjectMatter)

	return router
}

// List handles GET /api/v1/episodes.
//
// Supported filters: season, month (1-12, calendar month of the air date),
// color_id, subject_matter_id. Results come back in broadcast order.
func (e *EpisodesRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	filter, err := parseEpisodeFilter(req)
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	episodes, total, err := e.client.Episodes.List(ctx, filter, pagination.Options()...)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.EpisodeListResponse{
		Data:  episodesToDTO(episodes),
		Meta:  PaginationMeta(pagination, total),
		Links: PaginationLinks(req, pagination, total),
	})
}

// Get handles GET /api/v1/episodes/{id}. The response includes the
// episode's palette and subject tags.
func (e *EpisodesRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	details, err := e.client.Episodes.Details(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.EpisodeDetailsResponse{
		Data:           episodeToDTO(details.Episode),
		Palette:        colorsToDTO(details.Palette),
		SubjectMatters: subjectMattersToDTO(details.SubjectMatters),
	})
}

// Add handles POST /api/v1/episodes. Returns 201 for a new episode and 200
// when an episode with the same season and number already exists.
func (e *EpisodesRouter) Add(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.EpisodeCreateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	attrs := body.Data.Attributes
	ep, created, err := e.client.Episodes.Add(ctx, service.EpisodeCreateParams{
		Title:         attrs.Title,
		Season:        attrs.Season,
		Number:        attrs.Episode,
		PaintingImage: attrs.PaintingImgSrc,
		PaintingVideo: attrs.PaintingYtSrc,
		AirDate:       attrs.AirDate,
	})
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.WriteJSON(w, status, dto.EpisodeResponse{Data: episodeToDTO(ep)})
}

// Delete handles DELETE /api/v1/episodes/{id}. Fails with 409 while
// palette or subject links survive.
func (e *EpisodesRouter) Delete(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	if err := e.client.Episodes.Remove(ctx, id); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListColors handles GET /api/v1/episodes/{id}/colors.
func (e *EpisodesRouter) ListColors(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	// Check episode exists
	if _, err := e.client.Episodes.Get(ctx, catalog.WithID(id)); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	palette, err := e.client.Episodes.Palette(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ColorListResponse{Data: colorsToDTO(palette)})
}

// LinkColor handles POST /api/v1/episodes/{id}/colors/{color_id}.
func (e *EpisodesRouter) LinkColor(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}
	colorID, err := parseID(req, "color_id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	if err := e.client.Episodes.AddColor(ctx, id, colorID); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnlinkColor handles DELETE /api/v1/episodes/{id}/colors/{color_id}.
func (e *EpisodesRouter) UnlinkColor(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}
	colorID, err := parseID(req, "color_id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	if err := e.client.Episodes.RemoveColor(ctx, id, colorID); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSubjectMatters handles GET /api/v1/episodes/{id}/subject-matters.
func (e *EpisodesRouter) ListSubjectMatters(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	// Check episode exists
	if _, err := e.client.Episodes.Get(ctx, catalog.WithID(id)); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	subjects, err := e.client.Episodes.SubjectMatters(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SubjectMatterListResponse{Data: subjectMattersToDTO(subjects)})
}

// LinkSubjectMatter handles POST /api/v1/episodes/{id}/subject-matters/{subject_matter_id}.
func (e *EpisodesRouter) LinkSubjectMatter(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}
	subjectID, err := parseID(req, "subject_matter_id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	if err := e.client.Episodes.AddSubjectMatter(ctx, id, subjectID); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnlinkSubjectMatter handles DELETE /api/v1/episodes/{id}/subject-matters/{subject_matter_id}.
func (e *EpisodesRouter) UnlinkSubjectMatter(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}
	subjectID, err := parseID(req, "subject_matter_id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	if err := e.client.Episodes.RemoveSubjectMatter(ctx, id, subjectID); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(req *http.Request, param string) (int64, error) {
	raw := chi.URLParam(req, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s %q", param, raw)
	}
	return id, nil
}

func parseEpisodeFilter(req *http.Request) (service.EpisodeFilter, error) {
	var filter service.EpisodeFilter
	query := req.URL.Query()

	if raw := query.Get("season"); raw != "" {
		season, err := strconv.Atoi(raw)
		if err != nil || season < 1 {
			return filter, fmt.Errorf("invalid season %q", raw)
		}
		filter.Season = season
	}
	if raw := query.Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return filter, fmt.Errorf("invalid month %q: want 1-12", raw)
		}
		filter.AirMonth = time.Month(month)
	}
	if raw := query.Get("color_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return filter, fmt.Errorf("invalid color_id %q", raw)
		}
		filter.ColorID = id
	}
	if raw := query.Get("subject_matter_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return filter, fmt.Errorf("invalid subject_matter_id %q", raw)
		}
		filter.SubjectMatterID = id
	}

	return filter, nil
}

func episodesToDTO(episodes []catalog.Episode) []dto.EpisodeData {
	result := make([]dto.EpisodeData, len(episodes))
	for i, ep := range episodes {
		result[i] = episodeToDTO(ep)
	}
	return result
}

func episodeToDTO(ep catalog.Episode) dto.EpisodeData {
	createdAt := ep.CreatedAt()
	updatedAt := ep.UpdatedAt()

	return dto.EpisodeData{
		Type: "episode",
		ID:   fmt.Sprintf("%d", ep.ID()),
		Attributes: dto.EpisodeAttributes{
			Title:          ep.Title(),
			Season:         ep.Season(),
			Episode:        ep.Number(),
			Code:           ep.Code(),
			PaintingImgSrc: ep.PaintingImage(),
			PaintingYtSrc:  ep.PaintingVideo(),
			AirDate:        ep.AirDate(),
			CreatedAt:      &createdAt,
			UpdatedAt:      &updatedAt,
		},
	}
}

func colorsToDTO(colors []catalog.Color) []dto.ColorData {
	result := make([]dto.ColorData, len(colors))
	for i, c := range colors {
		result[i] = colorToDTO(c)
	}
	return result
}

func colorToDTO(c catalog.Color) dto.ColorData {
	return dto.ColorData{
		Type: "color",
		ID:   fmt.Sprintf("%d", c.ID()),
		Attributes: dto.ColorAttributes{
			Name: c.Name(),
			Hex:  c.Hex(),
		},
	}
}

func subjectMattersToDTO(subjects []catalog.SubjectMatter) []dto.SubjectMatterData {
	result := make([]dto.SubjectMatterData, len(subjects))
	for i, s := range subjects {
		result[i] = subjectMatterToDTO(s)
	}
	return result
}

func subjectMatterToDTO(s catalog.SubjectMatter) dto.SubjectMatterData {
	return dto.SubjectMatterData{
		Type: "subject_matter",
		ID:   fmt.Sprintf("%d", s.ID()),
		Attributes: dto.SubjectMatterAttributes{
			Name: s.Name(),
		},
	}
}
