// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// SearchInfo summarizes one Custom Search query
type SearchInfo struct {
	TotalResults          string  `json:"totalResults"`
	SearchTime            float64 `json:"searchTime"`
	FormattedTotalResults string  `json:"formattedTotalResults"`
	FormattedSearchTime   string  `json:"formattedSearchTime"`
}

// SearchThumbnail is a CSE result thumbnail. Width and height are
// stringified upstream values.
type SearchThumbnail struct {
	Src    string `json:"src"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// SearchItem is a single normalized search result. Thumbnail is omitted
// entirely when the upstream item has none; it is never null.
type SearchItem struct {
	Link      string           `json:"link"`
	Title     string           `json:"title"`
	Snippet   string           `json:"snippet"`
	Thumbnail *SearchThumbnail `json:"thumbnail,omitempty"`
}

// SearchRecommendation is the normalized Custom Search DTO
type SearchRecommendation struct {
	Info  SearchInfo   `json:"info"`
	Items []SearchItem `json:"items"` // always present, possibly empty
}

// RawCseSchema describes the loose shape CSE actually returns. Everything
// is optional; the adapter supplies defaults during normalization.
// Thumbnail width/height arrive as either strings or numbers, hence the
// declared coercion.
var RawCseSchema = &Schema{Fields: []Field{
	{Name: "searchInformation", Kind: Object, Elem: &Schema{Fields: []Field{
		{Name: "totalResults", Kind: String},
		{Name: "searchTime", Kind: Number},
		{Name: "formattedTotalResults", Kind: String},
		{Name: "formattedSearchTime", Kind: String},
	}}},
	{Name: "items", Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
		{Name: "link", Kind: String},
		{Name: "title", Kind: String},
		{Name: "snippet", Kind: String},
		{Name: "pagemap", Kind: Object, Elem: &Schema{Fields: []Field{
			{Name: "cse_thumbnail", Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
				{Name: "src", Kind: String},
				{Name: "width", Kind: String, Coerce: true},
				{Name: "height", Kind: String, Coerce: true},
			}}}},
		}}},
	}}}},
}}

// SearchRecommendationSchema is the strict output contract. The CSE
// transform is re-asserted against it before the result leaves the
// adapter, since the mapping is non-trivial.
var SearchRecommendationSchema = &Schema{Fields: []Field{
	{Name: "info", Required: true, Kind: Object, Elem: &Schema{Fields: []Field{
		{Name: "totalResults", Required: true, Kind: String},
		{Name: "searchTime", Required: true, Kind: Number},
		{Name: "formattedTotalResults", Required: true, Kind: String},
		{Name: "formattedSearchTime", Required: true, Kind: String},
	}}},
	{Name: "items", Required: true, Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
		{Name: "link", Required: true, Kind: String},
		{Name: "title", Required: true, Kind: String},
		{Name: "snippet", Required: true, Kind: String},
		{Name: "thumbnail", Kind: Object, Elem: &Schema{Fields: []Field{
			{Name: "src", Required: true, Kind: String},
			{Name: "width", Required: true, Kind: String},
			{Name: "height", Required: true, Kind: String},
		}}},
	}}}},
}}
