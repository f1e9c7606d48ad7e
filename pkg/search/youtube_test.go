// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func youtubeItemJSON(id string) string {
	thumb := `{"url":"https://i.ytimg.com/t.jpg","width":120,"height":90}`
	return fmt.Sprintf(`{
		"kind":"youtube#searchResult","etag":"etag-%s",
		"id":{"kind":"youtube#video","videoId":"%s"},
		"snippet":{"publishedAt":"2025-08-01T00:00:00Z","channelId":"ch","title":"t",
			"description":"d","thumbnails":{"default":%s,"medium":%s,"high":%s},
			"channelTitle":"Channel","liveBroadcastContent":"none"}
	}`, id, id, thumb, thumb, thumb)
}

func TestYouTubeClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("part") != "snippet" {
			t.Errorf("expected part=snippet, got %q", q.Get("part"))
		}
		if q.Get("type") != "video" {
			t.Errorf("expected type=video, got %q", q.Get("type"))
		}
		if q.Get("maxResults") != "10" {
			t.Errorf("expected default maxResults=10, got %q", q.Get("maxResults"))
		}
		if q.Get("key") != "test-key" {
			t.Errorf("expected key=test-key, got %q", q.Get("key"))
		}
		if _, present := r.URL.Query()["pageToken"]; present {
			t.Error("empty pageToken was serialized")
		}

		fmt.Fprintf(w, `{
			"kind":"youtube#searchListResponse","etag":"e","regionCode":"US",
			"nextPageToken":"NEXT",
			"pageInfo":{"totalResults":2,"resultsPerPage":10},
			"items":[%s,%s]
		}`, youtubeItemJSON("v1"), youtubeItemJSON("v2"))
	}))
	defer server.Close()

	client := NewYouTubeClient("test-key", server.URL, testHTTPClient())
	resp, err := client.Search(context.Background(), YouTubeSearchParams{Query: "golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if resp.Items[0].ID.VideoID != "v1" {
		t.Errorf("expected videoId v1, got %q", resp.Items[0].ID.VideoID)
	}
	if resp.NextPageToken != "NEXT" {
		t.Errorf("expected nextPageToken NEXT, got %q", resp.NextPageToken)
	}
	if resp.PageInfo.ResultsPerPage != 10 {
		t.Errorf("expected resultsPerPage 10, got %d", resp.PageInfo.ResultsPerPage)
	}
}

func TestYouTubeClient_PageToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageToken") != "TOKEN" {
			t.Errorf("expected pageToken=TOKEN, got %q", r.URL.Query().Get("pageToken"))
		}
		if r.URL.Query().Get("maxResults") != "25" {
			t.Errorf("expected maxResults=25, got %q", r.URL.Query().Get("maxResults"))
		}
		fmt.Fprint(w, `{
			"kind":"youtube#searchListResponse","etag":"e","regionCode":"US",
			"pageInfo":{"totalResults":0,"resultsPerPage":25},
			"items":[]
		}`)
	}))
	defer server.Close()

	client := NewYouTubeClient("test-key", server.URL, testHTTPClient())
	resp, err := client.Search(context.Background(), YouTubeSearchParams{
		Query:      "golang",
		MaxResults: "25",
		PageToken:  "TOKEN",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Items == nil {
		t.Error("items must be an empty slice, not nil")
	}
	if resp.NextPageToken != "" {
		t.Errorf("expected no nextPageToken, got %q", resp.NextPageToken)
	}
}

func TestYouTubeClient_WrongListKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"kind":"youtube#videoListResponse","etag":"e","regionCode":"US",
			"pageInfo":{"totalResults":0,"resultsPerPage":10},
			"items":[]
		}`)
	}))
	defer server.Close()

	client := NewYouTubeClient("test-key", server.URL, testHTTPClient())
	_, err := client.Search(context.Background(), YouTubeSearchParams{Query: "q"})

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Kind != KindUpstreamInvalid {
		t.Errorf("expected KindUpstreamInvalid, got %v", gerr.Kind)
	}
}
