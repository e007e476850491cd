package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/floodops/pafs/modules/projects/domain/project"
	"github.com/floodops/pafs/modules/projects/infrastructure/persistence"
	"github.com/floodops/pafs/modules/projects/services"
	"github.com/floodops/pafs/pkg/composables"
	"github.com/floodops/pafs/pkg/constants"
	"github.com/floodops/pafs/pkg/httpapi"
	"github.com/floodops/pafs/pkg/serrors"
)

type saveRequest struct {
	Level   string          `json:"level" validate:"required"`
	Payload project.Payload `json:"payload"`
}

type ProjectAPIController struct {
	projects *services.ProjectService
	mapper   *persistence.FieldMapper
	basePath string
}

func NewProjectAPIController(projects *services.ProjectService, mapper *persistence.FieldMapper) *ProjectAPIController {
	return &ProjectAPIController{
		projects: projects,
		mapper:   mapper,
		basePath: "/api/projects",
	}
}

func (c *ProjectAPIController) Key() string {
	return c.basePath
}

func (c *ProjectAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/save", c.Save).Methods(http.MethodPost)
	// Reference numbers contain slashes, so the route swallows the rest of
	// the path.
	router.HandleFunc("/{ref:.+}", c.Get).Methods(http.MethodGet)
}

func (c *ProjectAPIController) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json", nil)
		return
	}
	if err := constants.Validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed", serrors.ProcessValidatorErrors(verrs))
			return
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	if req.Payload == nil {
		req.Payload = project.Payload{}
	}

	saved, err := c.projects.Save(r.Context(), req.Level, req.Payload)
	if err != nil {
		if errors.Is(err, composables.ErrNoUser) {
			_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required", nil)
			return
		}
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, c.mapper.ProjectToWire(saved))
}

func (c *ProjectAPIController) Get(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	p, err := c.projects.GetByReferenceNumber(r.Context(), ref)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, c.mapper.ProjectToWire(p))
}
