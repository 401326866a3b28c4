package model

import "strings"

// Criteria is the active combination of text query and equality filters.
// An empty field is an inactive constraint; active constraints combine by AND.
type Criteria struct {
	Query    string `json:"q" form:"q" binding:"max=200"`
	City     string `json:"city" form:"city"`
	Type     string `json:"type" form:"type"`
	Language string `json:"language" form:"language"`
}

// Normalized trims surrounding whitespace from every field.
func (c Criteria) Normalized() Criteria {
	return Criteria{
		Query:    strings.TrimSpace(c.Query),
		City:     strings.TrimSpace(c.City),
		Type:     strings.TrimSpace(c.Type),
		Language: strings.TrimSpace(c.Language),
	}
}

// IsEmpty reports whether no constraint is active.
func (c Criteria) IsEmpty() bool {
	n := c.Normalized()
	return n.Query == "" && n.City == "" && n.Type == "" && n.Language == ""
}

// SortKey selects the single active ordering of the result list.
type SortKey string

const (
	// SortRecommended keeps dataset insertion order. No ranking is applied.
	SortRecommended SortKey = "recommended"
	SortRating      SortKey = "rating"
	SortTuition     SortKey = "tuition"
	SortAlpha       SortKey = "alpha"
)

// SortKeys lists every sort key in display order.
var SortKeys = []SortKey{SortRecommended, SortRating, SortTuition, SortAlpha}

// ParseSortKey maps a raw value to a SortKey; unknown values become SortRecommended.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortRating:
		return SortRating
	case SortTuition:
		return SortTuition
	case SortAlpha:
		return SortAlpha
	default:
		return SortRecommended
	}
}

// Label returns the user-facing name of the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortRating:
		return "По рейтингу (убыв.)"
	case SortTuition:
		return "По стоимости (возр.)"
	case SortAlpha:
		return "По алфавиту (А→Я)"
	default:
		return "Рекомендуемые"
	}
}

// BrowseQuery is the query string accepted by the JSON browse endpoint.
type BrowseQuery struct {
	Criteria
	Sort string `form:"sort" binding:"omitempty,oneof=recommended rating tuition alpha"`
	Page int    `form:"page" binding:"omitempty,gte=1"`
}
