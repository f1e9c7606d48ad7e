// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestVisionClient_ReverseImage(t *testing.T) {
	imageBytes := []byte("fake-png-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected key=test-key, got %q", r.URL.Query().Get("key"))
		}

		var req annotateRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Requests) != 1 {
			t.Fatalf("expected 1 annotate entry, got %d", len(req.Requests))
		}
		if req.Requests[0].Features[0].Type != "WEB_DETECTION" {
			t.Errorf("expected WEB_DETECTION feature, got %q", req.Requests[0].Features[0].Type)
		}
		decoded, _ := base64.StdEncoding.DecodeString(req.Requests[0].Image.Content)
		if string(decoded) != string(imageBytes) {
			t.Error("image content not forwarded intact")
		}

		w.Write([]byte(`{"responses":[{"webDetection":{
			"webEntities":[{"description":"Sneaker","score":0.92},{"score":0.4}],
			"fullMatchingImages":[{"url":"https://a.com/full.png"}],
			"pagesWithMatchingImages":[{"url":"https://a.com/page","pageTitle":"Shop"}]
		}}]}`))
	}))
	defer server.Close()

	client := NewVisionClient("test-key", server.URL, testHTTPClient())
	result, err := client.ReverseImage(context.Background(), imageBytes, "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.WebEntities) != 2 {
		t.Fatalf("expected 2 web entities, got %d", len(result.WebEntities))
	}
	if result.WebEntities[0].Description != "Sneaker" || result.WebEntities[0].Score != 0.92 {
		t.Errorf("unexpected first entity: %+v", result.WebEntities[0])
	}
	if result.WebEntities[1].Description != "" {
		t.Errorf("missing description should default to empty, got %q", result.WebEntities[1].Description)
	}
	if len(result.FullMatchingImages) != 1 {
		t.Errorf("expected 1 full match, got %d", len(result.FullMatchingImages))
	}
	// partialMatchingImages was absent upstream: must still be an array
	if result.PartialMatchingImages == nil {
		t.Error("partialMatchingImages must be an empty slice, not nil")
	}
	if len(result.PagesWithMatchingImages) != 1 || result.PagesWithMatchingImages[0].PageTitle != "Shop" {
		t.Errorf("unexpected matching pages: %+v", result.PagesWithMatchingImages)
	}
}

func TestVisionClient_EmptyDetection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responses":[{}]}`))
	}))
	defer server.Close()

	client := NewVisionClient("test-key", server.URL, testHTTPClient())
	result, err := client.ReverseImage(context.Background(), []byte("x"), "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// all four keys must be present arrays even with no detection block
	data, _ := json.Marshal(result)
	want := `{"webEntities":[],"fullMatchingImages":[],"partialMatchingImages":[],"pagesWithMatchingImages":[]}`
	if string(data) != want {
		t.Errorf("unexpected serialization:\n got %s\nwant %s", data, want)
	}
}

func TestVisionClient_RejectsNonImage(t *testing.T) {
	var upstreamCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls.Add(1)
	}))
	defer server.Close()

	client := NewVisionClient("test-key", server.URL, testHTTPClient())

	_, err := client.ReverseImage(context.Background(), []byte("%PDF-1.4"), "application/pdf")
	var gerr *Error
	if !errors.As(err, &gerr) || gerr.Kind != KindUnsupportedMedia {
		t.Fatalf("expected KindUnsupportedMedia, got %v", err)
	}
	if gerr.HTTPStatus() != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415 mapping, got %d", gerr.HTTPStatus())
	}

	_, err = client.ReverseImage(context.Background(), []byte("y"), "")
	if !errors.As(err, &gerr) || gerr.Kind != KindBadRequest {
		t.Fatalf("expected KindBadRequest for missing content type, got %v", err)
	}

	if n := upstreamCalls.Load(); n != 0 {
		t.Errorf("expected zero upstream calls, got %d", n)
	}
}

func TestVisionClient_AnnotationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responses":[{"error":{"code":7,"message":"Cloud Vision API has not been used"}}]}`))
	}))
	defer server.Close()

	client := NewVisionClient("test-key", server.URL, testHTTPClient())
	_, err := client.ReverseImage(context.Background(), []byte("x"), "image/png")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Kind != KindUpstreamUnavailable {
		t.Errorf("expected KindUpstreamUnavailable, got %v", gerr.Kind)
	}
}
