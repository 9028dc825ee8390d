package router

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/mpavkov/search-refinery/internal/apperr"
	"github.com/mpavkov/search-refinery/internal/domain"
	"github.com/mpavkov/search-refinery/internal/dto"
	"github.com/mpavkov/search-refinery/internal/search"
	"github.com/mpavkov/search-refinery/pkg/pagination"
)

// maxSessions bounds the per-filter-selection session map; crossing it
// resets the map.
const maxSessions = 64

// SearchRouter exposes the search pipeline over HTTP. Sessions are kept per
// filter selection so that turning pages of an unchanged query reuses the
// session's cached first page instead of re-hitting the backend.
type SearchRouter struct {
	e   *echo.Echo
	svc *search.Service

	baseCfg   search.Config
	verticals []domain.Vertical

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// sessionEntry serializes access to one session: sessions cache the first
// page and are not safe for concurrent use.
type sessionEntry struct {
	mu      sync.Mutex
	session *search.Session
}

func NewSearchRouter(e *echo.Echo, svc *search.Service, cfg search.Config, verticals []domain.Vertical) *SearchRouter {
	return &SearchRouter{
		e:         e,
		svc:       svc,
		baseCfg:   cfg,
		verticals: verticals,
		sessions:  make(map[string]*sessionEntry),
	}
}

func (r *SearchRouter) Bind() {
	r.e.POST("/search", r.searchHandler)
	r.e.GET("/search/suggest", r.suggestHandler)
	r.e.POST("/search/verticals", r.verticalCountsHandler)
}

// searchHandler godoc
// @Summary Run a search
// @Description Executes the full query pipeline: token resolution, synonym expansion, refinement filters and paging.
// @Tags search
// @Accept json
// @Produce json
// @Param request body dto.SearchRequest true "Search request"
// @Success 200 {object} domain.ResultPage
// @Failure 400 {object} map[string]string
// @Router /search [post]
func (r *SearchRouter) searchHandler(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	paging := pagination.OffsetRequest{Page: req.Page, Size: r.baseCfg.RowLimit}
	if err := paging.Validate(); err != nil {
		return apperr.NewValidationWrap("invalid paging", err)
	}
	req.Page = paging.Page

	for _, f := range req.Filters {
		if f.FilterName == "" || len(f.Values) == 0 {
			return apperr.NewValidation("filters must carry a name and at least one value")
		}
	}

	entry, err := r.sessionFor(req.Filters)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	page, err := entry.session.Search(c.Request().Context(), req.Text, req.Page)
	entry.mu.Unlock()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// suggestHandler godoc
// @Summary Query suggestions
// @Tags search
// @Produce json
// @Param q query string true "Partial query text"
// @Success 200 {object} dto.SuggestResponse
// @Router /search/suggest [get]
func (r *SearchRouter) suggestHandler(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return apperr.NewValidation("q parameter is required")
	}

	suggestions, err := r.svc.Suggest(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.SuggestResponse{Query: q, Suggestions: suggestions})
}

// verticalCountsHandler godoc
// @Summary Result counts per search vertical
// @Tags search
// @Accept json
// @Produce json
// @Param request body dto.VerticalCountsRequest true "Count request"
// @Success 200 {object} dto.VerticalCountsResponse
// @Router /search/verticals [post]
func (r *SearchRouter) verticalCountsHandler(c echo.Context) error {
	var req dto.VerticalCountsRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	counts, err := r.svc.VerticalCounts(c.Request().Context(), req.Text, r.verticals, r.baseCfg.EnableQueryRules)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.VerticalCountsResponse{Counts: counts})
}

// sessionFor returns the session bound to the given filter selection,
// creating it on first use. The key is the canonical JSON of the filters.
func (r *SearchRouter) sessionFor(filters []domain.RefinementFilter) (*sessionEntry, error) {
	key, err := json.Marshal(filters)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[string(key)]; ok {
		return e, nil
	}

	// Drop everything rather than tracking recency: filter selections churn
	// rarely and a dropped session only costs one fresh first-page call.
	if len(r.sessions) >= maxSessions {
		r.sessions = make(map[string]*sessionEntry)
	}

	cfg := r.baseCfg
	cfg.RefinementFilters = filters
	e := &sessionEntry{session: r.svc.NewSession(cfg)}
	r.sessions[string(key)] = e
	return e, nil
}
