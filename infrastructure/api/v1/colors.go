package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easelhq/easel"
	"github.com/easelhq/easel/application/service"
	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/infrastructure/api/middleware"
	"github.com/easelhq/easel/infrastructure/api/v1/dto"
)

// ColorsRouter handles paint color API endpoints.
type ColorsRouter struct {
	client *easel.Client
	logger *slog.Logger
}

// NewColorsRouter creates a new ColorsRouter.
func NewColorsRouter(client *easel.Client) *ColorsRouter {
	return &ColorsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for color endpoints.
func (c *ColorsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", c.List)
	router.Post("/", c.Add)
	router.Get("/{id}", c.Get)
	router.Delete("/{id}", c.Delete)
	router.Get("/{id}/episodes", c.ListEpisodes)

	return router
}

// List handles GET /api/v1/colors, ordered by name.
func (c *ColorsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	options := append([]catalog.Option{catalog.WithOrderAsc("name")}, pagination.Options()...)
	colors, err := c.client.Colors.Find(ctx, options...)
	if err != nil {
		middleware.WriteError(w, req, err, c.logger)
		return
	}

	total, err := c.client.Colors.Count(ctx)
	if err != nil {
		middleware.WriteError(w, req, err, c.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ColorListResponse{
		Data:  colorsToDTO(colors),
		Meta:  PaginationMeta(pagination, total),
		Links: PaginationLinks(req, pagination, total),
	})
}

// Get handles GET /api/v1/colors/{id}.
func (c *ColorsRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	color, err := c.client.Colors.Get(ctx, catalog.WithID(id))
	if err != nil {
		middleware.WriteError(w, req, err, c.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ColorResponse{Data: colorToDTO(color)})
}

// Add handles POST /api/v1/colors. Returns 201 for a new color and 200 when
// a color with the same name already exists.
func (c *ColorsRouter) Add(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.ColorCreateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	color, created, err := c.client.Colors.Add(ctx, body.Data.Attributes.Name, body.Data.Attributes.Hex)
	if err != nil {
		middleware.WriteError(w, req, err, c.logger)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.WriteJSON(w, status, dto.ColorResponse{Data: colorToDTO(color)})
}

// Delete handles DELETE /api/v1/colors/{id}. Fails with 409 while any
// episode still uses the color.
func (c *ColorsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	if err := c.client.Colors.Remove(ctx, id); err != nil {
		middleware.WriteError(w, req, err, c.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListEpisodes handles GET /api/v1/colors/{id}/episodes: the episodes whose
// palette contains the color, in broadcast order.
func (c *ColorsRouter) ListEpisodes(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	// Check color exists
	if _, err := c.client.Colors.Get(ctx, catalog.WithID(id)); err != nil {
		middleware.WriteError(w, req, err, c.logger)
		return
	}

	episodes, total, err := c.client.Episodes.List(ctx, service.EpisodeFilter{ColorID: id}, pagination.Options()...)
	if err != nil {
		middleware.WriteError(w, req, err, c.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.EpisodeListResponse{
		Data:  episodesToDTO(episodes),
		Meta:  PaginationMeta(pagination, total),
		Links: PaginationLinks(req, pagination, total),
	})
}
