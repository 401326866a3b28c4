// Package state holds the catalog view state and its pure transitions.
//
// A State travels in the page URL. Handlers restore it with FromQuery, apply the
// incoming event, and build every link of the rendered page by applying further
// events to the current state.
package state

import (
	"net/url"
	"strconv"

	"github.com/stemsi/unicatalog/internal/catalog"
	"github.com/stemsi/unicatalog/internal/model"
)

// State is the explicit view state of one catalog screen.
type State struct {
	Criteria model.Criteria
	Sort     model.SortKey
	Page     int
}

// New returns the initial state: no filters, recommended order, page 1.
func New() State {
	return State{Sort: model.SortRecommended, Page: 1}
}

// Event is a user input that transitions the view state.
type Event interface {
	apply(State) State
}

type (
	SetQuery    struct{ Query string }
	SetCity     struct{ City string }
	SetType     struct{ Type string }
	SetLanguage struct{ Language string }
	SetCriteria struct{ Criteria model.Criteria }
	SetSort     struct{ Sort model.SortKey }
	GoToPage    struct{ Page int }
	NextPage    struct{}
	PrevPage    struct{}
	Reset       struct{}
)

// Criteria and sort changes start over from page 1.
func (e SetQuery) apply(s State) State    { s.Criteria.Query = e.Query; s.Page = 1; return s }
func (e SetCity) apply(s State) State     { s.Criteria.City = e.City; s.Page = 1; return s }
func (e SetType) apply(s State) State     { s.Criteria.Type = e.Type; s.Page = 1; return s }
func (e SetLanguage) apply(s State) State { s.Criteria.Language = e.Language; s.Page = 1; return s }
func (e SetCriteria) apply(s State) State { s.Criteria = e.Criteria; s.Page = 1; return s }
func (e SetSort) apply(s State) State     { s.Sort = model.ParseSortKey(string(e.Sort)); s.Page = 1; return s }
func (e GoToPage) apply(s State) State    { s.Page = e.Page; return s }
func (NextPage) apply(s State) State      { s.Page++; return s }
func (PrevPage) apply(s State) State      { s.Page--; return s }
func (Reset) apply(State) State           { return New() }

// Apply returns the state after e, with the page clamped into [1, pageCount].
func Apply(s State, e Event, pageCount int) State {
	next := e.apply(s)
	next.Criteria = next.Criteria.Normalized()
	next.Page = catalog.ClampPage(next.Page, pageCount)
	return next
}

// Clamp re-applies the page invariant after the result list changed size.
func (s State) Clamp(pageCount int) State {
	s.Page = catalog.ClampPage(s.Page, pageCount)
	return s
}

// FromQuery restores a state from URL query values. Missing or invalid values fall back to defaults.
func FromQuery(q url.Values) State {
	s := New()
	s.Criteria = model.Criteria{
		Query:    q.Get("q"),
		City:     q.Get("city"),
		Type:     q.Get("type"),
		Language: q.Get("language"),
	}.Normalized()
	s.Sort = model.ParseSortKey(q.Get("sort"))
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		s.Page = p
	}
	return s
}

// Query encodes the state, omitting defaults.
func (s State) Query() url.Values {
	q := url.Values{}
	set := func(key, v string) {
		if v != "" {
			q.Set(key, v)
		}
	}
	set("q", s.Criteria.Query)
	set("city", s.Criteria.City)
	set("type", s.Criteria.Type)
	set("language", s.Criteria.Language)
	if s.Sort != "" && s.Sort != model.SortRecommended {
		q.Set("sort", string(s.Sort))
	}
	if s.Page > 1 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	return q
}

// Href returns path with the encoded state appended.
func (s State) Href(path string) string {
	return HrefWith(path, s.Query())
}

// HrefWith appends encoded query values to path.
func HrefWith(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
