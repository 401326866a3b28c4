package catalog

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stemsi/unicatalog/internal/model"
)

var (
	testCities    = []string{"Алматы", "Астана", "Шымкент", "Караганда"}
	testTypes     = []string{"Государственный", "Частный", "Национальный"}
	testLanguages = []string{"Казахский", "Русский", "Английский"}
	testPrograms  = []string{"Информатика, Математика", "Медицина", "Право, Экономика", "Архитектура"}
)

// randomDataset builds a deterministic dataset with repeated sort keys.
func randomDataset(n int) []model.University {
	r := rand.New(rand.NewPCG(7, 11))
	out := make([]model.University, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.University{
			ID:         i,
			Name:       fmt.Sprintf("Университет №%d", i),
			City:       testCities[r.IntN(len(testCities))],
			Type:       testTypes[r.IntN(len(testTypes))],
			Language:   testLanguages[r.IntN(len(testLanguages))],
			Programs:   testPrograms[r.IntN(len(testPrograms))],
			Mission:    "Готовим специалистов",
			Rating:     float64(r.IntN(5)) + 0.5,
			TuitionKZT: int64(r.IntN(4)+1) * 500000,
		})
	}
	return out
}

func ids(list []model.University) []int {
	out := make([]int, len(list))
	for i, u := range list {
		out[i] = u.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestComputeViewFilterSoundAndComplete(t *testing.T) {
	dataset := randomDataset(120)

	queries := []string{"", "медицина", "ИНФОРМАТИКА", "№1", "нет такого"}
	cities := append([]string{""}, testCities...)
	types := append([]string{""}, testTypes...)
	langs := append([]string{""}, testLanguages...)

	for _, q := range queries {
		for _, city := range cities {
			for _, typ := range types {
				for _, lang := range langs {
					c := model.Criteria{Query: q, City: city, Type: typ, Language: lang}
					got := ComputeView(dataset, c, model.SortRecommended)

					var want []int
					for _, u := range dataset {
						if Matches(u, c) {
							want = append(want, u.ID)
						}
					}
					if !equalInts(ids(got), want) {
						t.Fatalf("criteria %+v: got %v, want %v", c, ids(got), want)
					}

					seen := map[int]bool{}
					for _, u := range got {
						if seen[u.ID] {
							t.Fatalf("criteria %+v: duplicate id %d", c, u.ID)
						}
						seen[u.ID] = true
						if city != "" && u.City != city || typ != "" && u.Type != typ || lang != "" && u.Language != lang {
							t.Fatalf("criteria %+v: record %+v violates a constraint", c, u)
						}
					}
				}
			}
		}
	}
}

func TestComputeViewFreeTextFields(t *testing.T) {
	dataset := []model.University{
		{ID: 1, Name: "Казахский национальный университет", City: "Алматы", Programs: "Физика"},
		{ID: 2, Name: "Евразийский университет", City: "Астана", Programs: "Право", Mission: "Лидерство в науке"},
		{ID: 3, Name: "Медицинский университет", City: "Караганда", Programs: "Медицина", History: "Основан в 1950 году"},
	}

	cases := []struct {
		query string
		want  []int
	}{
		{"НАЦИОНАЛЬНЫЙ", []int{1}},
		{"право", []int{2}},
		{"астана", []int{2}},
		{"лидерство", []int{2}},
		{"1950", nil}, // history is not searched
		{"  физика  ", []int{1}},
		{"университет", []int{1, 2, 3}},
	}
	for _, tc := range cases {
		got := ComputeView(dataset, model.Criteria{Query: tc.query}, model.SortRecommended)
		if !equalInts(ids(got), tc.want) {
			t.Errorf("query %q: got %v, want %v", tc.query, ids(got), tc.want)
		}
	}
}

func TestComputeViewEmptyCriteriaReturnsCopy(t *testing.T) {
	dataset := randomDataset(5)
	got := ComputeView(dataset, model.Criteria{}, model.SortRecommended)
	if !equalInts(ids(got), ids(dataset)) {
		t.Fatalf("got %v, want dataset order %v", ids(got), ids(dataset))
	}

	SortUniversities(got, model.SortTuition)
	if !equalInts(ids(dataset), []int{1, 2, 3, 4, 5}) {
		t.Fatal("sorting the view mutated the dataset")
	}
}

func TestComputeViewNoMatchIsEmptyNotNil(t *testing.T) {
	got := ComputeView(randomDataset(10), model.Criteria{City: "Almaty"}, model.SortRating)
	if got == nil || len(got) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", got)
	}
}

func TestSortStableAndIdempotent(t *testing.T) {
	dataset := randomDataset(80)

	for _, key := range []model.SortKey{model.SortRating, model.SortTuition, model.SortAlpha} {
		sorted := ComputeView(dataset, model.Criteria{}, key)

		// Equal keys keep input (id) order.
		for i := 1; i < len(sorted); i++ {
			a, b := sorted[i-1], sorted[i]
			var tie bool
			switch key {
			case model.SortRating:
				if a.Rating < b.Rating {
					t.Fatalf("rating not descending at %d", i)
				}
				tie = a.Rating == b.Rating
			case model.SortTuition:
				if a.TuitionKZT > b.TuitionKZT {
					t.Fatalf("tuition not ascending at %d", i)
				}
				tie = a.TuitionKZT == b.TuitionKZT
			}
			if tie && a.ID > b.ID {
				t.Fatalf("%s: unstable order for ids %d, %d", key, a.ID, b.ID)
			}
		}

		again := ComputeView(sorted, model.Criteria{}, key)
		if !equalInts(ids(again), ids(sorted)) {
			t.Fatalf("%s: resorting changed the order", key)
		}
	}
}

func TestSortAlphaUsesRussianCollation(t *testing.T) {
	dataset := []model.University{
		{ID: 1, Name: "Жетысуский университет"},
		{ID: 2, Name: "Ёлочный институт"},
		{ID: 3, Name: "Евразийский университет"},
		{ID: 4, Name: "Алматинский университет"},
		{ID: 5, Name: "Южно-Казахстанский университет"},
		{ID: 6, Name: "Ясный колледж"},
	}

	got := ComputeView(dataset, model.Criteria{}, model.SortAlpha)
	want := []int{4, 3, 2, 1, 5, 6}
	if !equalInts(ids(got), want) {
		t.Fatalf("alpha order = %v, want %v", ids(got), want)
	}
}

func TestTuitionScenarioTwentyFiveRecords(t *testing.T) {
	dataset := make([]model.University, 0, 25)
	for i := 1; i <= 25; i++ {
		dataset = append(dataset, model.University{
			ID:         i,
			Name:       fmt.Sprintf("Вуз %d", i),
			TuitionKZT: int64((i*7)%25+1) * 100000,
		})
	}

	view := ComputeView(dataset, model.Criteria{}, model.SortTuition)

	first := Paginate(view, 10, 1)
	if len(first.Items) != 10 || first.PageCount != 3 {
		t.Fatalf("page 1: %d items of %d pages", len(first.Items), first.PageCount)
	}
	for i, u := range first.Items {
		if want := int64(i+1) * 100000; u.TuitionKZT != want {
			t.Fatalf("page 1 item %d tuition = %d, want %d", i, u.TuitionKZT, want)
		}
	}

	third := Paginate(view, 10, 3)
	if len(third.Items) != 5 {
		t.Fatalf("page 3 has %d items, want 5", len(third.Items))
	}
	for i, u := range third.Items {
		if want := int64(21+i) * 100000; u.TuitionKZT != want {
			t.Fatalf("page 3 item %d tuition = %d, want %d", i, u.TuitionKZT, want)
		}
	}
}

func TestBuildFacets(t *testing.T) {
	dataset := []model.University{
		{City: "Шымкент", Type: "Частный", Language: "Русский"},
		{City: "Алматы", Type: "Государственный", Language: "Казахский"},
		{City: "Шымкент", Type: "Частный", Language: ""},
	}
	f := BuildFacets(dataset)
	if len(f.Cities) != 2 || f.Cities[0] != "Алматы" || f.Cities[1] != "Шымкент" {
		t.Errorf("cities = %v", f.Cities)
	}
	if len(f.Types) != 2 || f.Types[0] != "Государственный" {
		t.Errorf("types = %v", f.Types)
	}
	if len(f.Languages) != 2 {
		t.Errorf("languages = %v", f.Languages)
	}

	empty := BuildFacets(nil)
	if empty.Cities == nil || empty.Types == nil || empty.Languages == nil {
		t.Error("facets of empty dataset should be empty slices")
	}
}
