// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/productdecoder/search-gw/pkg/core/schema"
	"github.com/productdecoder/search-gw/pkg/httputil"
)

// defaultCSEFields trims the upstream payload to the fields the
// normalized DTO actually uses. Callers may override via the fields
// parameter.
const defaultCSEFields = "searchInformation(totalResults,searchTime,formattedTotalResults,formattedSearchTime),items(link,title,snippet,pagemap/cse_thumbnail)"

// CSESearchParams are the caller-supplied parameters for a web search
type CSESearchParams struct {
	Query      string
	Num        string
	Start      string
	Safe       string // "off" or "active"
	LR         string
	SiteSearch string
	Fields     string
}

// CSEClient adapts the Google Custom Search API
type CSEClient struct {
	apiKey     string
	cseID      string
	endpoint   string
	httpClient *httputil.Client
}

// NewCSEClient creates a Custom Search adapter
func NewCSEClient(apiKey, cseID, endpoint string, httpClient *httputil.Client) *CSEClient {
	return &CSEClient{apiKey: apiKey, cseID: cseID, endpoint: endpoint, httpClient: httpClient}
}

// rawCse mirrors the loose upstream shape. Decoded only after the
// response passes RawCseSchema.
type rawCse struct {
	SearchInformation *struct {
		TotalResults          *string  `json:"totalResults"`
		SearchTime            *float64 `json:"searchTime"`
		FormattedTotalResults *string  `json:"formattedTotalResults"`
		FormattedSearchTime   *string  `json:"formattedSearchTime"`
	} `json:"searchInformation"`
	Items []struct {
		Link    *string `json:"link"`
		Title   *string `json:"title"`
		Snippet *string `json:"snippet"`
		Pagemap *struct {
			CseThumbnail []struct {
				Src    *string `json:"src"`
				Width  any     `json:"width"`
				Height any     `json:"height"`
			} `json:"cse_thumbnail"`
		} `json:"pagemap"`
	} `json:"items"`
}

// Search queries Custom Search and returns the normalized recommendation
// DTO. The transform is re-asserted against the output schema before
// return since the mapping is non-trivial.
func (c *CSEClient) Search(ctx context.Context, p CSESearchParams) (*schema.SearchRecommendation, error) {
	num := p.Num
	if num == "" {
		num = "10"
	}
	fields := p.Fields
	if fields == "" {
		fields = defaultCSEFields
	}

	body, err := c.httpClient.GetJSON(ctx, c.endpoint, map[string]string{
		"key":        c.apiKey,
		"cx":         c.cseID,
		"q":          p.Query,
		"num":        num,
		"start":      p.Start,
		"safe":       p.Safe,
		"lr":         p.LR,
		"siteSearch": p.SiteSearch,
		"fields":     fields,
	})
	if err != nil {
		return nil, fromTransport("cse", err)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, invalidResponse("cse", fmt.Errorf("parse response: %w", err))
	}
	if err := schema.RawCseSchema.Assert(decoded); err != nil {
		return nil, invalidResponse("cse", err)
	}

	var raw rawCse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, invalidResponse("cse", fmt.Errorf("decode response: %w", err))
	}

	out := transformCse(&raw)

	if err := assertNormalized(schema.SearchRecommendationSchema, out); err != nil {
		return nil, invalidResponse("cse", err)
	}
	return out, nil
}

func transformCse(raw *rawCse) *schema.SearchRecommendation {
	out := &schema.SearchRecommendation{
		Info: schema.SearchInfo{
			TotalResults:          "0",
			SearchTime:            0,
			FormattedTotalResults: "0",
			FormattedSearchTime:   "0",
		},
		Items: []schema.SearchItem{},
	}

	if si := raw.SearchInformation; si != nil {
		if si.TotalResults != nil {
			out.Info.TotalResults = *si.TotalResults
		}
		if si.SearchTime != nil {
			out.Info.SearchTime = *si.SearchTime
		}
		if si.FormattedTotalResults != nil {
			out.Info.FormattedTotalResults = *si.FormattedTotalResults
		}
		if si.FormattedSearchTime != nil {
			out.Info.FormattedSearchTime = *si.FormattedSearchTime
		}
	}

	for _, it := range raw.Items {
		item := schema.SearchItem{
			Link:    "",
			Title:   "No title",
			Snippet: "No snippet available",
		}
		if it.Link != nil {
			item.Link = *it.Link
		}
		if it.Title != nil {
			item.Title = *it.Title
		}
		if it.Snippet != nil {
			item.Snippet = *it.Snippet
		}
		// thumbnail key only when the upstream has one with a src
		if it.Pagemap != nil && len(it.Pagemap.CseThumbnail) > 0 {
			t := it.Pagemap.CseThumbnail[0]
			if t.Src != nil && *t.Src != "" {
				item.Thumbnail = &schema.SearchThumbnail{
					Src:    *t.Src,
					Width:  stringifyDimension(t.Width),
					Height: stringifyDimension(t.Height),
				}
			}
		}
		out.Items = append(out.Items, item)
	}
	return out
}

// stringifyDimension renders a width/height that upstream sends as either
// a string or a number
func stringifyDimension(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case float64:
		return strconv.FormatFloat(d, 'f', -1, 64)
	default:
		return ""
	}
}

// assertNormalized round-trips a normalized value through JSON and checks
// it against the output schema.
func assertNormalized(s *schema.Schema, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal normalized value: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decode normalized value: %w", err)
	}
	return s.Assert(decoded)
}
