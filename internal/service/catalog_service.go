package service

import (
	"github.com/rs/zerolog"
	"github.com/stemsi/unicatalog/internal/catalog"
	"github.com/stemsi/unicatalog/internal/model"
	"github.com/stemsi/unicatalog/internal/state"
)

// BrowseResult is one recomputed catalog screen.
type BrowseResult struct {
	State state.State
	Page  catalog.Page
}

// CatalogService owns the immutable dataset loaded at startup.
type CatalogService struct {
	dataset   []model.University
	byID      map[int]int
	facets    catalog.Facets
	available bool
	opts      catalog.Options
	log       zerolog.Logger
}

// NewCatalogService wraps a loaded dataset. available=false marks a failed
// load; the service then serves an empty catalog.
func NewCatalogService(dataset []model.University, available bool, opts catalog.Options, log zerolog.Logger) *CatalogService {
	if !available || dataset == nil {
		dataset = []model.University{}
	}
	byID := make(map[int]int, len(dataset))
	for i, u := range dataset {
		byID[u.ID] = i
	}
	return &CatalogService{
		dataset:   dataset,
		byID:      byID,
		facets:    catalog.BuildFacets(dataset),
		available: available,
		opts:      opts,
		log:       log.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *CatalogService) Available() bool             { return s.available }
func (s *CatalogService) Dataset() []model.University { return s.dataset }
func (s *CatalogService) Facets() catalog.Facets      { return s.facets }
func (s *CatalogService) Options() catalog.Options    { return s.opts }

// Browse filters, sorts and paginates for st. The returned state has its page
// clamped to the resulting page count.
func (s *CatalogService) Browse(st state.State) BrowseResult {
	list := catalog.ComputeView(s.dataset, st.Criteria, st.Sort)
	page := catalog.Paginate(list, s.opts.PageSize, st.Page)
	st = st.Clamp(page.PageCount)

	s.log.Debug().
		Str("query", st.Criteria.Query).
		Str("sort", string(st.Sort)).
		Int("page", page.Page).
		Int("total", page.Total).
		Msg("Catalog browsed")

	return BrowseResult{State: st, Page: page}
}

// Get returns the record with the given id.
func (s *CatalogService) Get(id int) (model.University, error) {
	i, ok := s.byID[id]
	if !ok {
		return model.University{}, ErrUniversityNotFound
	}
	return s.dataset[i], nil
}

// Exists reports whether id belongs to the dataset.
func (s *CatalogService) Exists(id int) bool {
	_, ok := s.byID[id]
	return ok
}
