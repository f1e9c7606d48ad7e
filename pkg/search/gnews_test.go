// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/productdecoder/search-gw/pkg/core/schema"
	"github.com/productdecoder/search-gw/pkg/httputil"
)

func testHTTPClient() *httputil.Client {
	return httputil.New(5 * time.Second)
}

func newsArticle(i int) schema.NewsArticle {
	return schema.NewsArticle{
		Title:       fmt.Sprintf("Article %d", i),
		Description: "desc",
		Content:     "content",
		URL:         fmt.Sprintf("https://news.example.com/%d", i),
		Image:       "https://news.example.com/img.png",
		PublishedAt: "2025-08-01T12:00:00Z",
		Lang:        "en",
		Source: schema.NewsSource{
			ID:      "src",
			Name:    "Example News",
			URL:     "https://news.example.com",
			Country: "us",
		},
	}
}

func TestGNewsClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected path /search, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("apikey") != "test-key" {
			t.Errorf("expected apikey test-key, got %q", q.Get("apikey"))
		}
		if q.Get("q") != "bitcoin" {
			t.Errorf("expected q=bitcoin, got %q", q.Get("q"))
		}
		if q.Get("max") != "5" {
			t.Errorf("expected max=5, got %q", q.Get("max"))
		}
		if _, present := r.URL.Query()["country"]; present {
			t.Error("empty country parameter was serialized")
		}

		articles := make([]schema.NewsArticle, 5)
		for i := range articles {
			articles[i] = newsArticle(i)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(schema.NewsResponse{TotalArticles: 5, Articles: articles})
	}))
	defer server.Close()

	client := NewGNewsClient("test-key", server.URL, testHTTPClient())
	resp, err := client.Search(context.Background(), NewsSearchParams{
		Query: "bitcoin",
		Lang:  "en",
		Max:   "5",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalArticles != 5 {
		t.Errorf("expected totalArticles 5, got %d", resp.TotalArticles)
	}
	if len(resp.Articles) != 5 {
		t.Fatalf("expected 5 articles, got %d", len(resp.Articles))
	}
	if resp.Articles[0].Title != "Article 0" {
		t.Errorf("unexpected first article title: %q", resp.Articles[0].Title)
	}
	if resp.Articles[0].Source.Name != "Example News" {
		t.Errorf("unexpected source name: %q", resp.Articles[0].Source.Name)
	}
}

func TestGNewsClient_TopHeadlines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/top-headlines" {
			t.Errorf("expected path /top-headlines, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("category") != "technology" {
			t.Errorf("expected category=technology, got %q", r.URL.Query().Get("category"))
		}
		json.NewEncoder(w).Encode(schema.NewsResponse{
			TotalArticles: 1,
			Articles:      []schema.NewsArticle{newsArticle(0)},
		})
	}))
	defer server.Close()

	client := NewGNewsClient("test-key", server.URL, testHTTPClient())
	resp, err := client.TopHeadlines(context.Background(), TopHeadlinesParams{
		Lang:     "en",
		Category: "technology",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Articles) != 1 {
		t.Errorf("expected 1 article, got %d", len(resp.Articles))
	}
}

func TestGNewsClient_InvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// article missing required url and source
		w.Write([]byte(`{"totalArticles":1,"articles":[{"title":"t"}]}`))
	}))
	defer server.Close()

	client := NewGNewsClient("test-key", server.URL, testHTTPClient())
	_, err := client.Search(context.Background(), NewsSearchParams{Query: "x"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Kind != KindUpstreamInvalid {
		t.Errorf("expected KindUpstreamInvalid, got %v", gerr.Kind)
	}

	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("validation detail should be preserved in the error chain")
	}
	if len(verr.Violations) == 0 {
		t.Error("expected at least one violation")
	}
}

func TestGNewsClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"errors":["quota exhausted"]}`))
	}))
	defer server.Close()

	client := NewGNewsClient("test-key", server.URL, testHTTPClient())
	_, err := client.Search(context.Background(), NewsSearchParams{Query: "x"})

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Kind != KindUpstreamUnavailable {
		t.Errorf("expected KindUpstreamUnavailable, got %v", gerr.Kind)
	}
	if gerr.UpstreamStatus != http.StatusServiceUnavailable {
		t.Errorf("expected upstream status 503, got %d", gerr.UpstreamStatus)
	}
}

func TestGNewsClient_EmptyArticlesStaysArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalArticles":0,"articles":[]}`))
	}))
	defer server.Close()

	client := NewGNewsClient("test-key", server.URL, testHTTPClient())
	resp, err := client.Search(context.Background(), NewsSearchParams{Query: "nothing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Articles == nil {
		t.Error("articles must be an empty slice, not nil")
	}

	data, _ := json.Marshal(resp)
	if string(data) != `{"totalArticles":0,"articles":[]}` {
		t.Errorf("unexpected serialization: %s", data)
	}
}
