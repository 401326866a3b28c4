package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/unicatalog/internal/model"
	"github.com/stemsi/unicatalog/internal/response"
	"github.com/stemsi/unicatalog/internal/service"
	"github.com/stemsi/unicatalog/internal/state"
	"github.com/stemsi/unicatalog/internal/validator"
	"github.com/stemsi/unicatalog/internal/view"
)

// CatalogHandler exposes the catalog over the JSON API.
type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type browseResponse struct {
	Items            []model.University `json:"items"`
	Criteria         model.Criteria     `json:"criteria"`
	Sort             model.SortKey      `json:"sort"`
	CatalogAvailable bool               `json:"catalog_available"`
}

// ListUniversities godoc
// GET /api/v1/universities
// Filters, sorts and paginates the catalog. Out-of-range pages are clamped.
func (h *CatalogHandler) ListUniversities(c *gin.Context) {
	var q model.BrowseQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	st := state.Apply(state.New(), state.SetCriteria{Criteria: q.Criteria}, 1)
	st.Sort = model.ParseSortKey(q.Sort)
	st.Page = max(q.Page, 1)

	res := h.catalog.Browse(st)
	response.SuccessWithPagination(c, http.StatusOK, browseResponse{
		Items:            res.Page.Items,
		Criteria:         res.State.Criteria,
		Sort:             res.State.Sort,
		CatalogAvailable: h.catalog.Available(),
	}, &response.Pagination{
		Page:       res.Page.Page,
		PerPage:    h.catalog.Options().PageSize,
		TotalItems: res.Page.Total,
		TotalPages: res.Page.PageCount,
	})
}

// GetUniversity godoc
// GET /api/v1/universities/:id
func (h *CatalogHandler) GetUniversity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	u, err := h.catalog.Get(id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"university": u,
		"detail":     view.RenderDetail(u, ""),
	})
}

type sortOption struct {
	Value model.SortKey `json:"value"`
	Label string        `json:"label"`
}

// GetFacets godoc
// GET /api/v1/facets
// Returns the values offered by the filter controls.
func (h *CatalogHandler) GetFacets(c *gin.Context) {
	sorts := make([]sortOption, 0, len(model.SortKeys))
	for _, k := range model.SortKeys {
		sorts = append(sorts, sortOption{Value: k, Label: k.Label()})
	}
	f := h.catalog.Facets()
	response.Success(c, http.StatusOK, gin.H{
		"cities":            f.Cities,
		"types":             f.Types,
		"languages":         f.Languages,
		"sorts":             sorts,
		"catalog_available": h.catalog.Available(),
	})
}
