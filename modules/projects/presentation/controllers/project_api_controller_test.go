package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/floodops/pafs/modules/accounts/domain/account"
	"github.com/floodops/pafs/modules/areas/domain/area"
	areaservices "github.com/floodops/pafs/modules/areas/services"
	"github.com/floodops/pafs/modules/projects/domain/project"
	"github.com/floodops/pafs/modules/projects/infrastructure/persistence"
	"github.com/floodops/pafs/modules/projects/services"
	"github.com/floodops/pafs/pkg/composables"
	"github.com/floodops/pafs/pkg/eventbus"
)

type stubAreaRepo struct{}

func (stubAreaRepo) GetByID(ctx context.Context, id int64) (*area.Area, error) {
	return nil, nil
}

type stubProjectRepo struct {
	projects map[string]*project.Project
}

func (s *stubProjectRepo) GetByReferenceNumber(ctx context.Context, ref string) (*project.Project, error) {
	return s.projects[ref], nil
}

func (s *stubProjectRepo) NameTaken(ctx context.Context, name, excludeRef string) (bool, error) {
	return false, nil
}

func (s *stubProjectRepo) NextReferenceNumber(ctx context.Context, rfccCode string) (string, error) {
	return rfccCode + "C001E/000A/000A", nil
}

func (s *stubProjectRepo) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	return p, nil
}

func (s *stubProjectRepo) Update(ctx context.Context, ref string, columns map[string]any) (*project.Project, error) {
	return s.projects[ref], nil
}

func newTestRouter(repo *stubProjectRepo) *mux.Router {
	mapper := persistence.NewFieldMapper()
	pipeline := services.NewValidationPipeline(areaservices.NewAreaHierarchyService(stubAreaRepo{}), repo)
	svc := services.NewProjectService(pipeline, repo, mapper, eventbus.NewEventPublisher(nil))

	r := mux.NewRouter()
	NewProjectAPIController(svc, mapper).Register(r)
	return r
}

func TestProjectAPIController_Get(t *testing.T) {
	router := newTestRouter(&stubProjectRepo{projects: map[string]*project.Project{
		"YOC001E/000A/000A": {
			ReferenceNumber:    "YOC001E/000A/000A",
			Name:               "Leeds Flood Alleviation",
			AreaID:             4,
			RFCCCode:           "YO",
			State:              project.StateDraft,
			FinancialStartYear: 2025,
			FinancialEndYear:   2026,
		},
	}})

	t.Run("renders the wire shape, slashes and all", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects/YOC001E/000A/000A", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, `"referenceNumber":"YOC001E/000A/000A"`)
		require.Contains(t, body, `"state":"draft"`)
		require.Contains(t, body, `"areaId":4`)
	})

	t.Run("unknown reference is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects/NOPE/000A/000A", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "PROJECT_NOT_FOUND")
	})
}

func TestProjectAPIController_Save(t *testing.T) {
	router := newTestRouter(&stubProjectRepo{projects: map[string]*project.Project{}})

	principal := account.New(
		uuid.New(), "rma@floodops.test", false, true,
		[]account.Membership{{AreaID: 4, Primary: true}},
	)

	t.Run("malformed json is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/projects/save", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "INVALID_JSON")
	})

	t.Run("no principal is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/projects/save",
			strings.NewReader(`{"level":"project_name","payload":{"name":"Wharfe Defences"}}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
	})

	t.Run("missing level fails struct validation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/projects/save",
			strings.NewReader(`{"payload":{"name":"Wharfe Defences"}}`))
		req = req.WithContext(composables.WithUser(req.Context(), principal))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
		require.Contains(t, rec.Body.String(), "Level")
	})

	t.Run("unknown level is 422", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/projects/save",
			strings.NewReader(`{"level":"project_noise","payload":{}}`))
		req = req.WithContext(composables.WithUser(req.Context(), principal))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "LEVEL_UNKNOWN")
	})

	t.Run("validation failures carry the field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/projects/save",
			strings.NewReader(`{"level":"project_name","payload":{}}`))
		req = req.WithContext(composables.WithUser(req.Context(), principal))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "FIELD_REQUIRED")
		require.Contains(t, rec.Body.String(), `"field":"name"`)
	})
}
