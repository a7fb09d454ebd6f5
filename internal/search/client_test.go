package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"name":             "skills",
					"full_name":        "acme/skills",
					"description":      "A pile of skills",
					"stargazers_count": 42,
				},
			},
		})
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL
	c.HTTPClient = server.Client()

	results, err := c.Search("testing")
	if err != nil {
		t.Fatal(err)
	}

	if gotQuery != "testing topic:agent-skills" {
		t.Errorf("q = %q", gotQuery)
	}
	if len(results) != 1 {
		t.Fatalf("results = %v", results)
	}
	r := results[0]
	if r.Source != "acme/skills" || r.Name != "skills" || r.Stars != 42 {
		t.Errorf("result = %+v", r)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "topic:agent-skills" {
			t.Errorf("q = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL
	c.HTTPClient = server.Client()

	results, err := c.Search("")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want none", results)
	}
}

func TestSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"rate limited"}`, http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL
	c.HTTPClient = server.Client()

	if _, err := c.Search("x"); err == nil {
		t.Error("err = nil, want error on non-200 response")
	}
}
