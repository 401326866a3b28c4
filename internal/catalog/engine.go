package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/stemsi/unicatalog/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ComputeView filters the dataset by criteria and orders the result by sortKey.
// It never mutates dataset and always returns a non-nil slice.
func ComputeView(dataset []model.University, criteria model.Criteria, sortKey model.SortKey) []model.University {
	criteria = criteria.Normalized()
	query := strings.ToLower(criteria.Query)

	list := make([]model.University, 0, len(dataset))
	for _, u := range dataset {
		if matches(u, criteria, query) {
			list = append(list, u)
		}
	}

	SortUniversities(list, sortKey)
	return list
}

// Matches reports whether u satisfies every active constraint of criteria.
func Matches(u model.University, criteria model.Criteria) bool {
	criteria = criteria.Normalized()
	return matches(u, criteria, strings.ToLower(criteria.Query))
}

func matches(u model.University, c model.Criteria, lowerQuery string) bool {
	if c.City != "" && u.City != c.City {
		return false
	}
	if c.Type != "" && u.Type != c.Type {
		return false
	}
	if c.Language != "" && u.Language != c.Language {
		return false
	}
	if lowerQuery != "" {
		return strings.Contains(haystack(u), lowerQuery)
	}
	return true
}

// haystack is the lower-cased text searched by the free-text query.
func haystack(u model.University) string {
	return strings.ToLower(u.Name + " " + u.Programs + " " + u.City + " " + u.Mission)
}

// SortUniversities orders list in place with a stable sort. SortRecommended leaves it untouched.
func SortUniversities(list []model.University, sortKey model.SortKey) {
	switch sortKey {
	case model.SortRating:
		slices.SortStableFunc(list, func(a, b model.University) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case model.SortTuition:
		slices.SortStableFunc(list, func(a, b model.University) int {
			return cmp.Compare(a.TuitionKZT, b.TuitionKZT)
		})
	case model.SortAlpha:
		// A Collator keeps internal buffers and is not safe for concurrent use.
		col := newCollator()
		slices.SortStableFunc(list, func(a, b model.University) int {
			return col.CompareString(a.Name, b.Name)
		})
	}
}

func newCollator() *collate.Collator {
	return collate.New(language.Russian)
}
