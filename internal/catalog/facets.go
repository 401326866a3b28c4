package catalog

import (
	"slices"

	"github.com/stemsi/unicatalog/internal/model"
)

// Facets holds the distinct values offered by the equality filters.
type Facets struct {
	Cities    []string `json:"cities"`
	Types     []string `json:"types"`
	Languages []string `json:"languages"`
}

// BuildFacets collects distinct cities, types and languages in Russian alphabetical order.
func BuildFacets(dataset []model.University) Facets {
	var cities, types, langs []string
	for _, u := range dataset {
		cities = appendUnique(cities, u.City)
		types = appendUnique(types, u.Type)
		langs = appendUnique(langs, u.Language)
	}

	col := newCollator()
	for _, values := range [][]string{cities, types, langs} {
		slices.SortFunc(values, col.CompareString)
	}

	return Facets{
		Cities:    nonNil(cities),
		Types:     nonNil(types),
		Languages: nonNil(langs),
	}
}

func appendUnique(values []string, v string) []string {
	if v == "" || slices.Contains(values, v) {
		return values
	}
	return append(values, v)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
