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

// SubjectMattersRouter handles subject matter API endpoints.
type SubjectMattersRouter struct {
	client *easel.Client
	logger *slog.Logger
}

// NewSubjectMattersRouter creates a new SubjectMattersRouter.
func NewSubjectMattersRouter(client *easel.Client) *SubjectMattersRouter {
	return &SubjectMattersRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for subject matter endpoints.
func (s *SubjectMattersRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", s.List)
	router.Post("/", s.Add)
	router.Get("/{id}", s.Get)
	router.Delete("/{id}", s.Delete)
	router.Get("/{id}/episodes", s.ListEpisodes)

	return router
}

// List handles GET /api/v1/subject-matters, ordered by name.
func (s *SubjectMattersRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	options := append([]catalog.Option{catalog.WithOrderAsc("name")}, pagination.Options()...)
	subjects, err := s.client.SubjectMatters.Find(ctx, options...)
	if err != nil {
		middleware.WriteError(w, req, err, s.logger)
		return
	}

	total, err := s.client.SubjectMatters.Count(ctx)
	if err != nil {
		middleware.WriteError(w, req, err, s.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SubjectMatterListResponse{
		Data:  subjectMattersToDTO(subjects),
		Meta:  PaginationMeta(pagination, total),
		Links: PaginationLinks(req, pagination, total),
	})
}

// Get handles GET /api/v1/subject-matters/{id}.
func (s *SubjectMattersRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	subject, err := s.client.SubjectMatters.Get(ctx, catalog.WithID(id))
	if err != nil {
		middleware.WriteError(w, req, err, s.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SubjectMatterResponse{Data: subjectMatterToDTO(subject)})
}

// Add handles POST /api/v1/subject-matters. Returns 201 for a new subject
// and 200 when one with the same name already exists.
func (s *SubjectMattersRouter) Add(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.SubjectMatterCreateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	subject, created, err := s.client.SubjectMatters.Add(ctx, body.Data.Attributes.Name)
	if err != nil {
		middleware.WriteError(w, req, err, s.logger)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.WriteJSON(w, status, dto.SubjectMatterResponse{Data: subjectMatterToDTO(subject)})
}

// Delete handles DELETE /api/v1/subject-matters/{id}. Fails with 409 while
// any episode still carries the tag.
func (s *SubjectMattersRouter) Delete(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	if err := s.client.SubjectMatters.Remove(ctx, id); err != nil {
		middleware.WriteError(w, req, err, s.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListEpisodes handles GET /api/v1/subject-matters/{id}/episodes: the
// episodes tagged with the subject, in broadcast order.
func (s *SubjectMattersRouter) ListEpisodes(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	id, err := parseID(req, "id")
	if err != nil {
		middleware.WriteBadRequest(w, err.Error())
		return
	}

	// Check subject exists
	if _, err := s.client.SubjectMatters.Get(ctx, catalog.WithID(id)); err != nil {
		middleware.WriteError(w, req, err, s.logger)
		return
	}

	episodes, total, err := s.client.Episodes.List(ctx, service.EpisodeFilter{SubjectMatterID: id}, pagination.Options()...)
	if err != nil {
		middleware.WriteError(w, req, err, s.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.EpisodeListResponse{
		Data:  episodesToDTO(episodes),
		Meta:  PaginationMeta(pagination, total),
		Links: PaginationLinks(req, pagination, total),
	})
}
