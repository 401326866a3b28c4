package validator

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/unicatalog/internal/model"
)

func TestBindQueryReportsFieldsByQueryKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	tests := []struct {
		name   string
		target string
		field  string
	}{
		{"unknown sort", "/?sort=price", "sort"},
		{"zero page", "/?page=0", "page"},
		{"negative page", "/?page=-3", "page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", tt.target, nil)

			var q model.BrowseQuery
			fields := BindQuery(c, &q)
			if fields == nil {
				t.Fatal("expected validation errors")
			}
			if fields[tt.field] == "" {
				t.Fatalf("fields = %v, want key %q", fields, tt.field)
			}
		})
	}
}

func TestBindQueryAcceptsValidQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?q=%D0%B8%D0%BD%D0%B6&city=%D0%90%D0%BB%D0%BC%D0%B0%D1%82%D1%8B&sort=alpha&page=2", nil)

	var q model.BrowseQuery
	if fields := BindQuery(c, &q); fields != nil {
		t.Fatalf("unexpected errors: %v", fields)
	}
	if q.Query != "инж" || q.City != "Алматы" || q.Sort != "alpha" || q.Page != 2 {
		t.Fatalf("bound %+v", q)
	}
}
