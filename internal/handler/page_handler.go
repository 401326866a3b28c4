package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/unicatalog/internal/middleware"
	"github.com/stemsi/unicatalog/internal/model"
	"github.com/stemsi/unicatalog/internal/response"
	"github.com/stemsi/unicatalog/internal/service"
	"github.com/stemsi/unicatalog/internal/state"
	"github.com/stemsi/unicatalog/internal/view"
)

const (
	catalogPath  = "/"
	pageTemplate = "index"
)

// Modal and notice query keys layered on top of the catalog state.
const (
	paramDetail  = "detail"
	paramCompare = "compare"
	paramNotice  = "notice"
	formReturn   = "return"
)

// PageHandler serves the server-rendered catalog.
type PageHandler struct {
	catalog *service.CatalogService
	compare *service.CompareService
	log     zerolog.Logger
}

func NewPageHandler(catalog *service.CatalogService, compare *service.CompareService, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		catalog: catalog,
		compare: compare,
		log:     log.With().Str("component", "page_handler").Logger(),
	}
}

// pageData is the root value passed to the index template.
type pageData struct {
	Catalog view.CatalogView
	// Return is where compare forms redirect after a mutation.
	Return       string
	Detail       *view.DetailView
	CompareOpen  bool
	Comparison   *view.ComparisonTable
	CompareError string
	CloseHref    string
}

// Index godoc
// GET /
// Renders one catalog screen for the state encoded in the query string.
func (h *PageHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	clientID := middleware.GetClientID(c)
	query := c.Request.URL.Query()

	res := h.catalog.Browse(state.FromQuery(query))

	set, err := h.compare.Get(ctx, clientID)
	if err != nil {
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Load compare set")
	}

	notice := ""
	if code, ok := response.NoticeCode(query.Get(paramNotice)); ok {
		notice = response.GetMessage(code)
	}

	data := pageData{
		Catalog: view.RenderCatalog(view.CatalogInput{
			BasePath:  catalogPath,
			State:     res.State,
			Page:      res.Page,
			Facets:    h.catalog.Facets(),
			Compare:   set,
			Dataset:   h.catalog.Dataset(),
			Available: h.catalog.Available(),
			Notice:    notice,
		}),
		CloseHref: res.State.Href(catalogPath),
	}
	data.Return = returnHref(res.State, query)

	if raw := query.Get(paramDetail); raw != "" {
		id, convErr := strconv.Atoi(raw)
		u, getErr := h.catalog.Get(id)
		if convErr != nil || getErr != nil {
			data.Catalog.Notice = response.GetMessage(response.ErrNotFound)
		} else {
			detail := view.RenderDetail(u, data.CloseHref)
			data.Detail = &detail
		}
	}

	if query.Get(paramCompare) == "1" {
		data.CompareOpen = true
		records, err := h.compare.Table(ctx, clientID)
		switch {
		case errors.Is(err, service.ErrCompareTooFew):
			data.CompareError = response.GetMessage(response.ErrCompareTooFew)
		case err != nil:
			h.log.Error().Err(err).Str("client_id", clientID).Msg("Build comparison table")
			data.CompareError = response.GetMessage(response.ErrInternal)
		default:
			table := view.RenderComparison(records, data.CloseHref)
			data.Comparison = &table
		}
	}

	c.HTML(http.StatusOK, pageTemplate, data)
}

// ToggleCompare godoc
// POST /compare/:id/toggle
// Adds or removes a university and redirects back to the page it came from.
func (h *PageHandler) ToggleCompare(c *gin.Context) {
	target := safeReturn(c.PostForm(formReturn))

	var req model.CompareRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.Redirect(http.StatusSeeOther, withNotice(target, response.ErrNotFound))
		return
	}

	clientID := middleware.GetClientID(c)
	_, err := h.compare.Toggle(c.Request.Context(), clientID, req.ID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrCompareCapacity):
		target = withNotice(target, response.ErrCompareCapacity)
	case errors.Is(err, service.ErrUniversityNotFound):
		target = withNotice(target, response.ErrNotFound)
	default:
		h.log.Error().Err(err).Str("client_id", clientID).Int("id", req.ID).Msg("Toggle compare")
		target = withNotice(target, response.ErrInternal)
	}
	c.Redirect(http.StatusSeeOther, target)
}

// ClearCompare godoc
// POST /compare/clear
func (h *PageHandler) ClearCompare(c *gin.Context) {
	target := safeReturn(c.PostForm(formReturn))
	clientID := middleware.GetClientID(c)

	if _, err := h.compare.Clear(c.Request.Context(), clientID); err != nil {
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Clear compare")
		target = withNotice(target, response.ErrInternal)
	}
	c.Redirect(http.StatusSeeOther, target)
}

// RateLimited sends a throttled form post back to its page with a notice.
func (h *PageHandler) RateLimited(c *gin.Context) {
	target := withNotice(safeReturn(c.PostForm(formReturn)), response.ErrRateLimitExceeded)
	c.Redirect(http.StatusSeeOther, target)
	c.Abort()
}

// returnHref is the current screen including open modals, minus any one-shot notice.
func returnHref(s state.State, query url.Values) string {
	q := s.Query()
	for _, key := range []string{paramDetail, paramCompare} {
		if v := query.Get(key); v != "" {
			q.Set(key, v)
		}
	}
	return state.HrefWith(catalogPath, q)
}

// safeReturn keeps the query of a return target on the catalog page; any other
// target collapses to the catalog itself.
func safeReturn(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || u.Path != catalogPath || u.RawPath != "" {
		return catalogPath
	}
	q := u.Query()
	q.Del(paramNotice)
	return state.HrefWith(catalogPath, q)
}

func withNotice(target string, code response.ErrCode) string {
	u, err := url.Parse(target)
	if err != nil {
		return catalogPath
	}
	q := u.Query()
	q.Set(paramNotice, string(code))
	return state.HrefWith(u.Path, q)
}
