// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// YouTubeThumbnail is a single thumbnail rendition
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeThumbnails holds the standard renditions
type YouTubeThumbnails struct {
	Default YouTubeThumbnail `json:"default"`
	Medium  YouTubeThumbnail `json:"medium"`
	High    YouTubeThumbnail `json:"high"`
}

// YouTubeSnippet is the snippet part of a search result
type YouTubeSnippet struct {
	PublishedAt          string            `json:"publishedAt"`
	ChannelID            string            `json:"channelId"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	Thumbnails           YouTubeThumbnails `json:"thumbnails"`
	ChannelTitle         string            `json:"channelTitle"`
	LiveBroadcastContent string            `json:"liveBroadcastContent"`
}

// YouTubeResultID identifies the matched video
type YouTubeResultID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

// YouTubeItem is a single video search result
type YouTubeItem struct {
	Kind    string          `json:"kind"`
	Etag    string          `json:"etag"`
	ID      YouTubeResultID `json:"id"`
	Snippet YouTubeSnippet  `json:"snippet"`
}

// YouTubePageInfo carries result paging counters
type YouTubePageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// YouTubeSearchResponse is the normalized video search DTO
type YouTubeSearchResponse struct {
	Kind          string          `json:"kind"`
	Etag          string          `json:"etag"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
	PrevPageToken string          `json:"prevPageToken,omitempty"`
	RegionCode    string          `json:"regionCode"`
	PageInfo      YouTubePageInfo `json:"pageInfo"`
	Items         []YouTubeItem   `json:"items"` // always present, possibly empty
}

var youtubeThumbnailSchema = &Schema{Fields: []Field{
	{Name: "url", Required: true, Kind: String},
	{Name: "width", Required: true, Kind: Number},
	{Name: "height", Required: true, Kind: Number},
}}

// YouTubeSearchResponseSchema is the contract YouTube Data API search
// responses must satisfy before being forwarded.
var YouTubeSearchResponseSchema = &Schema{Fields: []Field{
	{Name: "kind", Required: true, Kind: String, Const: "youtube#searchListResponse"},
	{Name: "etag", Required: true, Kind: String},
	{Name: "nextPageToken", Kind: String},
	{Name: "prevPageToken", Kind: String},
	{Name: "regionCode", Required: true, Kind: String},
	{Name: "pageInfo", Required: true, Kind: Object, Elem: &Schema{Fields: []Field{
		{Name: "totalResults", Required: true, Kind: Number},
		{Name: "resultsPerPage", Required: true, Kind: Number},
	}}},
	{Name: "items", Required: true, Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
		{Name: "kind", Required: true, Kind: String, Const: "youtube#searchResult"},
		{Name: "etag", Required: true, Kind: String},
		{Name: "id", Required: true, Kind: Object, Elem: &Schema{Fields: []Field{
			{Name: "kind", Required: true, Kind: String},
			{Name: "videoId", Required: true, Kind: String},
		}}},
		{Name: "snippet", Required: true, Kind: Object, Elem: &Schema{Fields: []Field{
			{Name: "publishedAt", Required: true, Kind: String},
			{Name: "channelId", Required: true, Kind: String},
			{Name: "title", Required: true, Kind: String},
			{Name: "description", Required: true, Kind: String},
			{Name: "thumbnails", Required: true, Kind: Object, Elem: &Schema{Fields: []Field{
				{Name: "default", Required: true, Kind: Object, Elem: youtubeThumbnailSchema},
				{Name: "medium", Required: true, Kind: Object, Elem: youtubeThumbnailSchema},
				{Name: "high", Required: true, Kind: Object, Elem: youtubeThumbnailSchema},
			}}},
			{Name: "channelTitle", Required: true, Kind: String},
			{Name: "liveBroadcastContent", Required: true, Kind: String},
		}}},
	}}}},
}}
