package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/floodops/pafs/modules/areas/domain/area"
	"github.com/floodops/pafs/modules/areas/services"
	"github.com/floodops/pafs/pkg/httpapi"
)

type AreaAPIController struct {
	areas    *services.AreaHierarchyService
	basePath string
}

func NewAreaAPIController(areas *services.AreaHierarchyService) *AreaAPIController {
	return &AreaAPIController{
		areas:    areas,
		basePath: "/api/areas",
	}
}

func (c *AreaAPIController) Key() string {
	return c.basePath
}

func (c *AreaAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/{id:[0-9]+}", c.Get).Methods(http.MethodGet)
}

func (c *AreaAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "AREA_ID_INVALID", "area id must be numeric", nil)
		return
	}

	aw, err := c.areas.GetWithParents(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	rfcc, ok, err := c.areas.RFCCCode(r.Context(), aw.Node)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	out := map[string]any{
		"area": areaToWire(aw.Node),
	}
	if aw.PSO != nil {
		out["psoArea"] = areaToWire(*aw.PSO)
	}
	if aw.EA != nil {
		out["eaArea"] = areaToWire(*aw.EA)
	}
	if ok {
		out["rfccCode"] = rfcc
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func areaToWire(a area.Area) map[string]any {
	out := map[string]any{
		"id":   a.ID,
		"name": a.Name,
		"type": string(a.Type),
	}
	if a.ParentID != nil {
		out["parentId"] = *a.ParentID
	}
	if a.SubType != "" {
		out["subType"] = a.SubType
	}
	if a.Identifier != "" {
		out["identifier"] = a.Identifier
	}
	return out
}
