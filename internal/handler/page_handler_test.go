package handler

import (
	"net/url"
	"testing"

	"github.com/stemsi/unicatalog/internal/model"
	"github.com/stemsi/unicatalog/internal/response"
	"github.com/stemsi/unicatalog/internal/state"
)

func TestSafeReturn(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "/"},
		{"/?page=2", "/?page=2"},
		{"/?page=2&notice=COMPARE_CAPACITY", "/?page=2"},
		{"https://evil.example/", "/"},
		{"//evil.example/", "/"},
		{`/\evil.example`, "/"},
		{"relative", "/"},
		{"/%2Fevil.example", "/"},
		{"/%2F%2Fevil.example/x", "/"},
		{"/data/universities.json", "/"},
		{"?page=2", "/"},
	}
	for _, tt := range tests {
		if got := safeReturn(tt.raw); got != tt.want {
			t.Errorf("safeReturn(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestWithNotice(t *testing.T) {
	got := withNotice("/?city=x&page=3", response.ErrCompareCapacity)
	u, _ := url.Parse(got)
	q := u.Query()
	if q.Get("notice") != "COMPARE_CAPACITY" || q.Get("page") != "3" || q.Get("city") != "x" {
		t.Fatalf("withNotice = %q", got)
	}
}

func TestReturnHrefKeepsOpenModals(t *testing.T) {
	s := state.New()
	s.Sort = model.SortRating
	got := returnHref(s, url.Values{"compare": {"1"}, "notice": {"NOT_FOUND"}})
	if got != "/?compare=1&sort=rating" {
		t.Fatalf("returnHref = %q", got)
	}
}
