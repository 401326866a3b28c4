// Package view turns catalog data into declarative view-models.
//
// Render functions are pure: they take plain data and describe the desired output.
// HTML templates and JSON handlers consume the same view-models.
package view

import (
	"fmt"
	"strconv"

	"github.com/stemsi/unicatalog/internal/catalog"
	"github.com/stemsi/unicatalog/internal/model"
	"github.com/stemsi/unicatalog/internal/state"
)

// MaxPageButtons caps the numbered jump buttons; more pages show a truncation marker.
const MaxPageButtons = 7

// CatalogInput is everything needed to describe one catalog screen.
type CatalogInput struct {
	BasePath  string
	State     state.State
	Page      catalog.Page
	Facets    catalog.Facets
	Compare   model.CompareSet
	Dataset   []model.University
	Available bool
	Notice    string
}

type CatalogView struct {
	Available  bool             `json:"catalog_available"`
	Notice     string           `json:"notice,omitempty"`
	Filters    FiltersView      `json:"filters"`
	Cards      []CardView       `json:"cards"`
	Empty      bool             `json:"empty"`
	EmptyText  string           `json:"empty_text,omitempty"`
	Pagination PaginationView   `json:"pagination"`
	Compare    ComparePanelView `json:"compare"`
	ResetHref  string           `json:"reset_href"`
	SelfHref   string           `json:"self_href"`
}

type FiltersView struct {
	Query     string       `json:"q"`
	Cities    []OptionView `json:"cities"`
	Types     []OptionView `json:"types"`
	Languages []OptionView `json:"languages"`
	Sorts     []OptionView `json:"sorts"`
}

type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type CardView struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	City          string `json:"city"`
	Type          string `json:"type"`
	Programs      string `json:"programs"`
	Rating        string `json:"rating"`
	Tuition       string `json:"tuition"`
	Logo          string `json:"logo"`
	Website       string `json:"website"`
	DetailHref    string `json:"detail_href"`
	CompareAction string `json:"compare_action"`
	CompareLabel  string `json:"compare_label"`
	InCompare     bool   `json:"in_compare"`
}

type LinkView struct {
	Href     string `json:"href,omitempty"`
	Disabled bool   `json:"disabled"`
}

type PageButton struct {
	Number  int    `json:"number"`
	Href    string `json:"href"`
	Current bool   `json:"current"`
}

type PaginationView struct {
	Page      int          `json:"page"`
	PageCount int          `json:"page_count"`
	Total     int          `json:"total"`
	Prev      LinkView     `json:"prev"`
	Next      LinkView     `json:"next"`
	Pages     []PageButton `json:"pages"`
	Truncated bool         `json:"truncated"`
	Summary   string       `json:"summary"`
}

// Compare toggle labels.
const (
	LabelCompareAdd    = "Сравнить"
	LabelCompareRemove = "Убрать"
)

// RenderCatalog describes the full catalog screen. Calling it twice with the same
// input yields the same view.
func RenderCatalog(in CatalogInput) CatalogView {
	base := in.BasePath
	if base == "" {
		base = "/"
	}
	s := in.State
	s.Page = in.Page.Page
	self := s.Href(base)

	members := in.Compare.Lookup()
	cards := make([]CardView, 0, len(in.Page.Items))
	for _, u := range in.Page.Items {
		label := LabelCompareAdd
		if members[u.ID] {
			label = LabelCompareRemove
		}
		cards = append(cards, CardView{
			ID:            u.ID,
			Name:          u.Name,
			City:          u.City,
			Type:          u.Type,
			Programs:      u.Programs,
			Rating:        FormatRating(u.Rating),
			Tuition:       FormatTuition(u.TuitionKZT),
			Logo:          logoOrDefault(u.Logo),
			Website:       u.Website,
			DetailHref:    withParam(s, base, "detail", strconv.Itoa(u.ID)),
			CompareAction: CompareToggleAction(u.ID),
			CompareLabel:  label,
			InCompare:     members[u.ID],
		})
	}

	v := CatalogView{
		Available:  in.Available,
		Notice:     in.Notice,
		Filters:    renderFilters(s, in.Facets),
		Cards:      cards,
		Empty:      len(cards) == 0,
		Pagination: RenderPagination(s, in.Page, base),
		Compare:    RenderComparePanel(in.Compare, in.Dataset, s, base),
		ResetHref:  base,
		SelfHref:   self,
	}
	if v.Empty {
		v.EmptyText = "Ничего не найдено"
		if !in.Available {
			v.EmptyText = "Каталог временно недоступен"
		}
	}
	return v
}

// RenderPagination describes prev/next controls, jump buttons and the summary line.
func RenderPagination(s state.State, p catalog.Page, base string) PaginationView {
	count := max(p.PageCount, 1)
	cur := catalog.ClampPage(p.Page, count)
	s.Page = cur

	v := PaginationView{
		Page:      cur,
		PageCount: count,
		Total:     p.Total,
		Prev:      LinkView{Disabled: cur == 1},
		Next:      LinkView{Disabled: cur == count},
		Summary:   fmt.Sprintf("Страница %d из %d • %d результатов", cur, count, p.Total),
		Truncated: count > MaxPageButtons,
	}
	if !v.Prev.Disabled {
		v.Prev.Href = state.Apply(s, state.PrevPage{}, count).Href(base)
	}
	if !v.Next.Disabled {
		v.Next.Href = state.Apply(s, state.NextPage{}, count).Href(base)
	}

	n := min(count, MaxPageButtons)
	v.Pages = make([]PageButton, 0, n)
	for i := 1; i <= n; i++ {
		v.Pages = append(v.Pages, PageButton{
			Number:  i,
			Href:    state.Apply(s, state.GoToPage{Page: i}, count).Href(base),
			Current: i == cur,
		})
	}
	return v
}

func renderFilters(s state.State, f catalog.Facets) FiltersView {
	v := FiltersView{
		Query:     s.Criteria.Query,
		Cities:    options("Все города", f.Cities, s.Criteria.City),
		Types:     options("Все типы", f.Types, s.Criteria.Type),
		Languages: options("Все языки", f.Languages, s.Criteria.Language),
	}
	for _, k := range model.SortKeys {
		v.Sorts = append(v.Sorts, OptionView{Value: string(k), Label: k.Label(), Selected: k == s.Sort})
	}
	return v
}

// options prepends the "any" choice to the facet values.
func options(anyLabel string, values []string, selected string) []OptionView {
	out := make([]OptionView, 0, len(values)+1)
	out = append(out, OptionView{Value: "", Label: anyLabel, Selected: selected == ""})
	for _, v := range values {
		out = append(out, OptionView{Value: v, Label: v, Selected: v == selected})
	}
	return out
}

// CompareToggleAction is the form action toggling id in the comparison set.
func CompareToggleAction(id int) string {
	return fmt.Sprintf("/compare/%d/toggle", id)
}

func withParam(s state.State, base, key, value string) string {
	q := s.Query()
	q.Set(key, value)
	return state.HrefWith(base, q)
}
