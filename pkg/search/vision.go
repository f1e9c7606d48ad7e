// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/productdecoder/search-gw/pkg/core/schema"
	"github.com/productdecoder/search-gw/pkg/httputil"
)

// VisionClient adapts the image annotation API for reverse-image search
type VisionClient struct {
	apiKey     string
	endpoint   string
	httpClient *httputil.Client
}

// NewVisionClient creates a reverse-image adapter
func NewVisionClient(apiKey, endpoint string, httpClient *httputil.Client) *VisionClient {
	return &VisionClient{apiKey: apiKey, endpoint: endpoint, httpClient: httpClient}
}

type annotateRequest struct {
	Requests []annotateEntry `json:"requests"`
}

type annotateEntry struct {
	Image    annotateImage     `json:"image"`
	Features []annotateFeature `json:"features"`
}

type annotateImage struct {
	Content string `json:"content"` // base64-encoded image bytes
}

type annotateFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

// Raw annotate response shapes. Decoded only after the body passes
// AnnotateResponseSchema.
type rawAnnotateResponse struct {
	Responses []rawAnnotateResult `json:"responses"`
}

type rawAnnotateResult struct {
	WebDetection *rawWebDetection `json:"webDetection"`
	Error        *rawStatus       `json:"error"`
}

type rawWebDetection struct {
	WebEntities []struct {
		Description *string  `json:"description"`
		Score       *float64 `json:"score"`
	} `json:"webEntities"`
	FullMatchingImages []struct {
		URL *string `json:"url"`
	} `json:"fullMatchingImages"`
	PartialMatchingImages []struct {
		URL *string `json:"url"`
	} `json:"partialMatchingImages"`
	PagesWithMatchingImages []struct {
		URL       *string `json:"url"`
		PageTitle *string `json:"pageTitle"`
	} `json:"pagesWithMatchingImages"`
}

type rawStatus struct {
	Code    float64 `json:"code"`
	Message string  `json:"message"`
}

// ReverseImage runs web detection over the given image bytes and returns
// the normalized result. The content type must be image/*; anything else
// is rejected before any upstream call happens.
func (c *VisionClient) ReverseImage(ctx context.Context, content []byte, mimeType string) (*schema.WebDetectionResult, error) {
	if mimeType == "" {
		return nil, BadRequest("No file provided")
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, UnsupportedMedia("Unsupported media type")
	}

	req := annotateRequest{Requests: []annotateEntry{{
		Image:    annotateImage{Content: base64.StdEncoding.EncodeToString(content)},
		Features: []annotateFeature{{Type: "WEB_DETECTION", MaxResults: 50}},
	}}}

	body, err := c.httpClient.PostJSON(ctx, c.endpoint, map[string]string{"key": c.apiKey}, req)
	if err != nil {
		return nil, fromTransport("vision", err)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, invalidResponse("vision", fmt.Errorf("parse response: %w", err))
	}
	if err := schema.AnnotateResponseSchema.Assert(decoded); err != nil {
		return nil, invalidResponse("vision", err)
	}

	var raw rawAnnotateResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, invalidResponse("vision", fmt.Errorf("decode response: %w", err))
	}
	if len(raw.Responses) == 0 {
		return nil, invalidResponse("vision", fmt.Errorf("annotate batch returned no responses"))
	}

	first := raw.Responses[0]
	if first.Error != nil {
		return nil, &Error{
			Kind:     KindUpstreamUnavailable,
			Provider: "vision",
			Message:  fmt.Sprintf("annotation failed with code %d", int(first.Error.Code)),
			err:      fmt.Errorf("annotate error: %s", first.Error.Message),
		}
	}

	return normalizeWebDetection(first.WebDetection), nil
}

// normalizeWebDetection maps the loose webDetection block into the DTO.
// Every absent nested field becomes an empty slice or string; provider
// nulls never reach the normalized shape.
func normalizeWebDetection(web *rawWebDetection) *schema.WebDetectionResult {
	out := &schema.WebDetectionResult{
		WebEntities:             []schema.WebEntity{},
		FullMatchingImages:      []schema.MatchingImage{},
		PartialMatchingImages:   []schema.MatchingImage{},
		PagesWithMatchingImages: []schema.MatchingPage{},
	}
	if web == nil {
		return out
	}

	for _, e := range web.WebEntities {
		entity := schema.WebEntity{}
		if e.Description != nil {
			entity.Description = *e.Description
		}
		if e.Score != nil {
			entity.Score = *e.Score
		}
		out.WebEntities = append(out.WebEntities, entity)
	}
	for _, i := range web.FullMatchingImages {
		img := schema.MatchingImage{}
		if i.URL != nil {
			img.URL = *i.URL
		}
		out.FullMatchingImages = append(out.FullMatchingImages, img)
	}
	for _, i := range web.PartialMatchingImages {
		img := schema.MatchingImage{}
		if i.URL != nil {
			img.URL = *i.URL
		}
		out.PartialMatchingImages = append(out.PartialMatchingImages, img)
	}
	for _, p := range web.PagesWithMatchingImages {
		page := schema.MatchingPage{}
		if p.URL != nil {
			page.URL = *p.URL
		}
		if p.PageTitle != nil {
			page.PageTitle = *p.PageTitle
		}
		out.PagesWithMatchingImages = append(out.PagesWithMatchingImages, page)
	}
	return out
}
