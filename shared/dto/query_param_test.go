package dto_test

import (
	"net/http/httptest"
	"testing"

	"eventhub/shared/dto"
)

func TestQueryParams_FromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/bookings/?page=2&limit=5&sort_by=created_at&sort_dir=asc", nil)

	q := dto.QueryParams{}
	q.FromRequest(req, false)

	if q.Page != 2 || q.Limit != 5 {
		t.Errorf("expected page 2 limit 5, got page %d limit %d", q.Page, q.Limit)
	}

	if q.SortBy != "created_at" {
		t.Errorf("expected sort_by created_at, got %q", q.SortBy)
	}

	if q.SortDir != dto.SortDirAsc {
		t.Errorf("expected sort_dir ASC, got %q", q.SortDir)
	}
}

func TestQueryParams_FromRequestDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/bookings/", nil)

	q := dto.QueryParams{}
	q.FromRequest(req, true)

	if q.Page != 1 || q.Limit != 10 {
		t.Errorf("expected default page 1 limit 10, got page %d limit %d", q.Page, q.Limit)
	}
}

func TestQueryParams_FromRequestRejectsUnsafeSortBy(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		want   string
	}{
		{name: "plain column", sortBy: "total_amount", want: "total_amount"},
		{name: "qualified column", sortBy: "bookings.created_at", want: "bookings.created_at"},
		{name: "sql fragment", sortBy: "created_at;DROP TABLE bookings", want: ""},
		{name: "parenthesised expression", sortBy: "(SELECT 1)", want: ""},
		{name: "comment injection", sortBy: "created_at--", want: ""},
		{name: "empty", sortBy: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/bookings/", nil)

			query := req.URL.Query()
			query.Set("sort_by", tt.sortBy)
			req.URL.RawQuery = query.Encode()

			q := dto.QueryParams{}
			q.FromRequest(req, false)

			if q.SortBy != tt.want {
				t.Errorf("sort_by %q: expected %q, got %q", tt.sortBy, tt.want, q.SortBy)
			}
		})
	}
}

func TestValidSortColumn(t *testing.T) {
	valid := []string{"created_at", "price", "service_packages.price", "_internal"}
	for _, s := range valid {
		if !dto.ValidSortColumn(s) {
			t.Errorf("expected %q to be a valid sort column", s)
		}
	}

	invalid := []string{"", "1col", "a.b.c", "col name", "col;--", "col'"}
	for _, s := range invalid {
		if dto.ValidSortColumn(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}
