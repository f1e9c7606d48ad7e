// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// NewsSource identifies the outlet an article came from
type NewsSource struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Country string `json:"country"`
}

// NewsArticle is a single article in a GNews response
type NewsArticle struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	URL         string     `json:"url"`
	Image       string     `json:"image"`
	PublishedAt string     `json:"publishedAt"`
	Lang        string     `json:"lang"`
	Source      NewsSource `json:"source"`
}

// NewsResponse is the normalized news DTO returned by both news routes
type NewsResponse struct {
	TotalArticles int           `json:"totalArticles"`
	Articles      []NewsArticle `json:"articles"` // always present, possibly empty
}

// GNewsResponseSchema is the contract GNews responses must satisfy before
// any field is forwarded. A mismatch signals provider contract drift.
var GNewsResponseSchema = &Schema{Fields: []Field{
	{Name: "totalArticles", Required: true, Kind: Number},
	{Name: "articles", Required: true, Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
		{Name: "title", Required: true, Kind: String},
		{Name: "description", Required: true, Kind: String},
		{Name: "content", Required: true, Kind: String},
		{Name: "url", Required: true, Kind: String},
		{Name: "image", Required: true, Kind: String},
		{Name: "publishedAt", Required: true, Kind: String},
		{Name: "lang", Required: true, Kind: String},
		{Name: "source", Required: true, Kind: Object, Elem: &Schema{Fields: []Field{
			{Name: "id", Required: true, Kind: String},
			{Name: "name", Required: true, Kind: String},
			{Name: "url", Required: true, Kind: String},
			{Name: "country", Required: true, Kind: String},
		}}},
	}}}},
}}
