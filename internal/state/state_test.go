package state

import (
	"net/url"
	"testing"

	"github.com/stemsi/unicatalog/internal/model"
)

func TestApplyCriteriaChangesResetPage(t *testing.T) {
	s := State{Sort: model.SortRecommended, Page: 3}

	events := []Event{
		SetQuery{Query: "право"},
		SetCity{City: "Алматы"},
		SetType{Type: "Частный"},
		SetLanguage{Language: "Русский"},
		SetSort{Sort: model.SortRating},
		SetCriteria{Criteria: model.Criteria{Query: " медицина "}},
	}
	for _, e := range events {
		if got := Apply(s, e, 5); got.Page != 1 {
			t.Errorf("%T: page = %d, want 1", e, got.Page)
		}
	}

	got := Apply(s, SetCriteria{Criteria: model.Criteria{Query: " медицина "}}, 5)
	if got.Criteria.Query != "медицина" {
		t.Errorf("query not normalized: %q", got.Criteria.Query)
	}
}

func TestApplyPageEventsClamp(t *testing.T) {
	s := New()

	cases := []struct {
		name  string
		start int
		event Event
		count int
		want  int
	}{
		{"next within bounds", 1, NextPage{}, 3, 2},
		{"next at last page", 3, NextPage{}, 3, 3},
		{"prev at first page", 1, PrevPage{}, 3, 1},
		{"prev within bounds", 3, PrevPage{}, 3, 2},
		{"jump beyond", 1, GoToPage{Page: 40}, 3, 3},
		{"jump below", 2, GoToPage{Page: -1}, 3, 1},
		{"empty list", 4, GoToPage{Page: 4}, 1, 1},
	}
	for _, tc := range cases {
		s.Page = tc.start
		if got := Apply(s, tc.event, tc.count); got.Page != tc.want {
			t.Errorf("%s: page = %d, want %d", tc.name, got.Page, tc.want)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := State{Criteria: model.Criteria{City: "Астана"}, Sort: model.SortAlpha, Page: 2}
	_ = Apply(s, Reset{}, 4)
	if s.Criteria.City != "Астана" || s.Page != 2 || s.Sort != model.SortAlpha {
		t.Fatalf("input state changed: %+v", s)
	}
	if got := Apply(s, Reset{}, 4); got != New() {
		t.Fatalf("reset = %+v", got)
	}
}

func TestSetSortUnknownFallsBack(t *testing.T) {
	got := Apply(New(), SetSort{Sort: "popularity"}, 1)
	if got.Sort != model.SortRecommended {
		t.Fatalf("sort = %q", got.Sort)
	}
}

func TestQueryRoundTrip(t *testing.T) {
	s := State{
		Criteria: model.Criteria{Query: "информатика", City: "Алматы", Type: "Частный", Language: "Русский"},
		Sort:     model.SortTuition,
		Page:     2,
	}
	if got := FromQuery(s.Query()); got != s {
		t.Fatalf("round trip = %+v, want %+v", got, s)
	}

	if q := New().Query(); len(q) != 0 {
		t.Fatalf("default state encodes to %v, want empty", q)
	}
	if got := New().Href("/"); got != "/" {
		t.Fatalf("href = %q", got)
	}
}

func TestFromQueryInvalidValues(t *testing.T) {
	got := FromQuery(url.Values{"page": {"abc"}, "sort": {"bogus"}, "q": {"  "}})
	if got != New() {
		t.Fatalf("got %+v, want defaults", got)
	}
}
