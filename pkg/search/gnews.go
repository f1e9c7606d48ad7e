// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

// Package search contains the provider adapters. Each adapter builds the
// upstream request, performs the call through the shared httputil client,
// validates the raw response against its declared schema and maps it into
// the normalized DTO. Adapters are single-shot: no retries, one upstream
// call per invocation.
package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/productdecoder/search-gw/pkg/core/schema"
	"github.com/productdecoder/search-gw/pkg/httputil"
)

// NewsSearchParams are the caller-supplied parameters for a news search.
// Empty fields are omitted from the upstream query.
type NewsSearchParams struct {
	Query    string
	Lang     string
	Country  string
	Max      string
	In       string
	Nullable string
	From     string
	To       string
	SortBy   string // "relevance" or "publishedAt"
}

// TopHeadlinesParams are the caller-supplied parameters for top headlines
type TopHeadlinesParams struct {
	Lang     string
	Country  string
	Max      string
	Nullable string
	Category string // general, world, nation, business, technology, entertainment, sports, science, health
}

// GNewsClient adapts the GNews v4 API
type GNewsClient struct {
	apiKey     string
	baseURL    string
	httpClient *httputil.Client
}

// NewGNewsClient creates a GNews adapter
func NewGNewsClient(apiKey, baseURL string, httpClient *httputil.Client) *GNewsClient {
	return &GNewsClient{apiKey: apiKey, baseURL: baseURL, httpClient: httpClient}
}

// Search queries /search and returns the validated news DTO
func (c *GNewsClient) Search(ctx context.Context, p NewsSearchParams) (*schema.NewsResponse, error) {
	return c.fetch(ctx, "/search", map[string]string{
		"apikey":   c.apiKey,
		"q":        p.Query,
		"lang":     p.Lang,
		"country":  p.Country,
		"max":      p.Max,
		"in":       p.In,
		"nullable": p.Nullable,
		"from":     p.From,
		"to":       p.To,
		"sortby":   p.SortBy,
	})
}

// TopHeadlines queries /top-headlines and returns the validated news DTO
func (c *GNewsClient) TopHeadlines(ctx context.Context, p TopHeadlinesParams) (*schema.NewsResponse, error) {
	return c.fetch(ctx, "/top-headlines", map[string]string{
		"apikey":   c.apiKey,
		"lang":     p.Lang,
		"country":  p.Country,
		"max":      p.Max,
		"nullable": p.Nullable,
		"category": p.Category,
	})
}

func (c *GNewsClient) fetch(ctx context.Context, path string, params map[string]string) (*schema.NewsResponse, error) {
	body, err := c.httpClient.GetJSON(ctx, c.baseURL+path, params)
	if err != nil {
		return nil, fromTransport("gnews", err)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, invalidResponse("gnews", fmt.Errorf("parse response: %w", err))
	}
	if err := schema.GNewsResponseSchema.Assert(decoded); err != nil {
		return nil, invalidResponse("gnews", err)
	}

	var out schema.NewsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, invalidResponse("gnews", fmt.Errorf("decode response: %w", err))
	}
	if out.Articles == nil {
		out.Articles = []schema.NewsArticle{}
	}
	return &out, nil
}
