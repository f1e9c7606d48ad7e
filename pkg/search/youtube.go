// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/productdecoder/search-gw/pkg/core/schema"
	"github.com/productdecoder/search-gw/pkg/httputil"
)

// YouTubeSearchParams are the caller-supplied parameters for a video search
type YouTubeSearchParams struct {
	Query      string
	MaxResults string // default "10"
	PageToken  string
}

// YouTubeClient adapts the YouTube Data API v3 search endpoint
type YouTubeClient struct {
	apiKey     string
	endpoint   string
	httpClient *httputil.Client
}

// NewYouTubeClient creates a video search adapter
func NewYouTubeClient(apiKey, endpoint string, httpClient *httputil.Client) *YouTubeClient {
	return &YouTubeClient{apiKey: apiKey, endpoint: endpoint, httpClient: httpClient}
}

// Search queries for videos. The part and type parameters are fixed:
// every call asks for snippets of videos only.
func (c *YouTubeClient) Search(ctx context.Context, p YouTubeSearchParams) (*schema.YouTubeSearchResponse, error) {
	maxResults := p.MaxResults
	if maxResults == "" {
		maxResults = "10"
	}

	body, err := c.httpClient.GetJSON(ctx, c.endpoint, map[string]string{
		"key":        c.apiKey,
		"part":       "snippet",
		"type":       "video",
		"q":          p.Query,
		"maxResults": maxResults,
		"pageToken":  p.PageToken,
	})
	if err != nil {
		return nil, fromTransport("youtube", err)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, invalidResponse("youtube", fmt.Errorf("parse response: %w", err))
	}
	if err := schema.YouTubeSearchResponseSchema.Assert(decoded); err != nil {
		return nil, invalidResponse("youtube", err)
	}

	var out schema.YouTubeSearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, invalidResponse("youtube", fmt.Errorf("decode response: %w", err))
	}
	if out.Items == nil {
		out.Items = []schema.YouTubeItem{}
	}
	return &out, nil
}
