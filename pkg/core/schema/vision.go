// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// WebEntity is an entity the annotation service inferred from the image
type WebEntity struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// MatchingImage is a URL of an image matching the uploaded one
type MatchingImage struct {
	URL string `json:"url"`
}

// MatchingPage is a page containing a matching image
type MatchingPage struct {
	URL       string `json:"url"`
	PageTitle string `json:"pageTitle"`
}

// WebDetectionResult is the normalized reverse-image DTO. All four slices
// are always non-nil, even when the annotation service found nothing.
type WebDetectionResult struct {
	WebEntities             []WebEntity     `json:"webEntities"`
	FullMatchingImages      []MatchingImage `json:"fullMatchingImages"`
	PartialMatchingImages   []MatchingImage `json:"partialMatchingImages"`
	PagesWithMatchingImages []MatchingPage  `json:"pagesWithMatchingImages"`
}

// AnnotateResponseSchema describes the annotate batch response. The
// webDetection block and everything inside it is optional; absent parts
// become empty slices during normalization.
var AnnotateResponseSchema = &Schema{Fields: []Field{
	{Name: "responses", Required: true, Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
		{Name: "webDetection", Kind: Object, Elem: &Schema{Fields: []Field{
			{Name: "webEntities", Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
				{Name: "description", Kind: String},
				{Name: "score", Kind: Number},
			}}}},
			{Name: "fullMatchingImages", Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
				{Name: "url", Kind: String},
			}}}},
			{Name: "partialMatchingImages", Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
				{Name: "url", Kind: String},
			}}}},
			{Name: "pagesWithMatchingImages", Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
				{Name: "url", Kind: String},
				{Name: "pageTitle", Kind: String},
			}}}},
		}}},
		{Name: "error", Kind: Object, Elem: &Schema{Fields: []Field{
			{Name: "code", Kind: Number},
			{Name: "message", Kind: String},
		}}},
	}}}},
}}
