package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/unicatalog/internal/middleware"
	"github.com/stemsi/unicatalog/internal/model"
	"github.com/stemsi/unicatalog/internal/response"
	"github.com/stemsi/unicatalog/internal/service"
	"github.com/stemsi/unicatalog/internal/state"
	"github.com/stemsi/unicatalog/internal/validator"
	"github.com/stemsi/unicatalog/internal/view"
)

// CompareHandler exposes the client's comparison set over the JSON API.
type CompareHandler struct {
	catalog *service.CatalogService
	compare *service.CompareService
	log     zerolog.Logger
}

func NewCompareHandler(catalog *service.CatalogService, compare *service.CompareService, log zerolog.Logger) *CompareHandler {
	return &CompareHandler{
		catalog: catalog,
		compare: compare,
		log:     log.With().Str("component", "compare_handler").Logger(),
	}
}

type compareResponse struct {
	IDs   []int                 `json:"ids"`
	Max   int                   `json:"max"`
	Panel view.ComparePanelView `json:"panel"`
}

func (h *CompareHandler) payload(set model.CompareSet) compareResponse {
	return compareResponse{
		IDs:   set.IDs,
		Max:   set.Max,
		Panel: view.RenderComparePanel(set, h.catalog.Dataset(), state.New(), catalogPath),
	}
}

// GetCompare godoc
// GET /api/v1/compare
func (h *CompareHandler) GetCompare(c *gin.Context) {
	clientID := middleware.GetClientID(c)
	set, err := h.compare.Get(c.Request.Context(), clientID)
	if err != nil {
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Load compare set")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, h.payload(set))
}

// ToggleCompare godoc
// POST /api/v1/compare/:id
// A full set answers 409 with the unchanged set.
func (h *CompareHandler) ToggleCompare(c *gin.Context) {
	var req model.CompareRequest
	if fields := validator.BindURI(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidID, fields)
		return
	}

	clientID := middleware.GetClientID(c)
	set, err := h.compare.Toggle(c.Request.Context(), clientID, req.ID)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, h.payload(set))
	case errors.Is(err, service.ErrCompareCapacity):
		response.FailWithData(c, http.StatusConflict, response.ErrCompareCapacity, h.payload(set))
	case errors.Is(err, service.ErrUniversityNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		h.log.Error().Err(err).Str("client_id", clientID).Int("id", req.ID).Msg("Toggle compare")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// ClearCompare godoc
// DELETE /api/v1/compare
func (h *CompareHandler) ClearCompare(c *gin.Context) {
	clientID := middleware.GetClientID(c)
	set, err := h.compare.Clear(c.Request.Context(), clientID)
	if err != nil {
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Clear compare")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, h.payload(set))
}

// GetCompareTable godoc
// GET /api/v1/compare/table
func (h *CompareHandler) GetCompareTable(c *gin.Context) {
	clientID := middleware.GetClientID(c)
	records, err := h.compare.Table(c.Request.Context(), clientID)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, view.RenderComparison(records, ""))
	case errors.Is(err, service.ErrCompareTooFew):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrCompareTooFew)
	default:
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Build comparison table")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
