package view

import (
	"github.com/stemsi/unicatalog/internal/model"
	"github.com/stemsi/unicatalog/internal/state"
)

// CompareClearAction is the form action emptying the comparison set.
const CompareClearAction = "/compare/clear"

type ComparePanelView struct {
	Items       []ComparePanelItem `json:"items"`
	Count       int                `json:"count"`
	Max         int                `json:"max"`
	EmptyText   string             `json:"empty_text,omitempty"`
	CanCompare  bool               `json:"can_compare"`
	OpenHref    string             `json:"open_href"`
	ClearAction string             `json:"clear_action"`
}

type ComparePanelItem struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Meta         string `json:"meta"`
	RemoveAction string `json:"remove_action"`
}

// SelectedUniversities returns the members of set found in dataset, in dataset order.
// Ids missing from the dataset are skipped.
func SelectedUniversities(set model.CompareSet, dataset []model.University) []model.University {
	members := set.Lookup()
	out := make([]model.University, 0, set.Len())
	for _, u := range dataset {
		if members[u.ID] {
			out = append(out, u)
		}
	}
	return out
}

// RenderComparePanel describes the side panel listing the selected universities.
func RenderComparePanel(set model.CompareSet, dataset []model.University, s state.State, base string) ComparePanelView {
	if base == "" {
		base = "/"
	}
	selected := SelectedUniversities(set, dataset)

	v := ComparePanelView{
		Items:       make([]ComparePanelItem, 0, len(selected)),
		Count:       len(selected),
		Max:         set.Max,
		CanCompare:  len(selected) >= 2,
		OpenHref:    withParam(s, base, "compare", "1"),
		ClearAction: CompareClearAction,
	}
	for _, u := range selected {
		v.Items = append(v.Items, ComparePanelItem{
			ID:           u.ID,
			Name:         u.Name,
			Meta:         u.City + " • " + u.Type,
			RemoveAction: CompareToggleAction(u.ID),
		})
	}
	if v.Count == 0 {
		v.EmptyText = "Нет выбранных вузов"
	}
	return v
}

type ComparisonTable struct {
	Title     string          `json:"title"`
	Headers   []string        `json:"headers"`
	Rows      []ComparisonRow `json:"rows"`
	CloseHref string          `json:"close_href,omitempty"`
}

type ComparisonRow struct {
	Title  string   `json:"title"`
	Values []string `json:"values"`
}

// RenderComparison lays the records out as columns over a fixed set of rows.
// Callers enforce the minimum number of records.
func RenderComparison(records []model.University, closeHref string) ComparisonTable {
	t := ComparisonTable{
		Title:     "Сравнение вузов",
		Headers:   make([]string, 0, len(records)),
		CloseHref: closeHref,
	}
	for _, u := range records {
		t.Headers = append(t.Headers, u.Name)
	}

	row := func(title string, value func(model.University) string) {
		r := ComparisonRow{Title: title, Values: make([]string, 0, len(records))}
		for _, u := range records {
			r.Values = append(r.Values, value(u))
		}
		t.Rows = append(t.Rows, r)
	}
	row("Город", func(u model.University) string { return u.City })
	row("Тип", func(u model.University) string { return u.Type })
	row("Стоимость (KZT/год)", func(u model.University) string { return FormatTuition(u.TuitionKZT) })
	row("Рейтинг", func(u model.University) string { return FormatRating(u.Rating) })
	row("Программы", func(u model.University) string { return u.Programs })
	return t
}
