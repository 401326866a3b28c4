package model

import "slices"

// CompareSet is the bounded set of university ids selected for side-by-side comparison.
// IDs keeps insertion order; membership is unique.
type CompareSet struct {
	IDs []int `json:"ids"`
	Max int   `json:"max"`
}

// NewCompareSet builds a set from persisted ids, dropping duplicates and non-positive ids.
func NewCompareSet(ids []int, max int) CompareSet {
	set := CompareSet{IDs: make([]int, 0, len(ids)), Max: max}
	for _, id := range ids {
		if id > 0 && !slices.Contains(set.IDs, id) {
			set.IDs = append(set.IDs, id)
		}
	}
	return set
}

// Has reports membership.
func (s CompareSet) Has(id int) bool {
	return slices.Contains(s.IDs, id)
}

// Len returns the number of members.
func (s CompareSet) Len() int {
	return len(s.IDs)
}

// Full reports whether no further id can be added.
func (s CompareSet) Full() bool {
	return len(s.IDs) >= s.Max
}

// Lookup returns a membership index for rendering many cards at once.
func (s CompareSet) Lookup() map[int]bool {
	m := make(map[int]bool, len(s.IDs))
	for _, id := range s.IDs {
		m[id] = true
	}
	return m
}

// CompareRequest is the payload for toggling a university over the JSON API.
type CompareRequest struct {
	ID int `uri:"id" binding:"required,gt=0"`
}
