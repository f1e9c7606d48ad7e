// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return v
}

func TestAssert_Valid(t *testing.T) {
	s := &Schema{Fields: []Field{
		{Name: "name", Required: true, Kind: String},
		{Name: "count", Required: true, Kind: Number},
		{Name: "tags", Kind: Array, Items: &Field{Kind: String}},
	}}

	if err := s.Assert(decode(t, `{"name":"a","count":3,"tags":["x","y"]}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssert_CollectsAllViolations(t *testing.T) {
	s := &Schema{Fields: []Field{
		{Name: "name", Required: true, Kind: String},
		{Name: "count", Required: true, Kind: Number},
	}}

	err := s.Assert(decode(t, `{"count":"three"}`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(verr.Violations), verr.Violations)
	}
	if verr.Violations[0].Path != "$.name" || verr.Violations[0].Actual != "absent" {
		t.Errorf("unexpected first violation: %+v", verr.Violations[0])
	}
	if verr.Violations[1].Path != "$.count" || verr.Violations[1].Expected != "number" {
		t.Errorf("unexpected second violation: %+v", verr.Violations[1])
	}
}

func TestAssert_OptionalAbsentAndNull(t *testing.T) {
	s := &Schema{Fields: []Field{
		{Name: "required", Required: true, Kind: String},
		{Name: "optional", Kind: String},
	}}

	for _, raw := range []string{
		`{"required":"v"}`,
		`{"required":"v","optional":null}`,
	} {
		if err := s.Assert(decode(t, raw)); err != nil {
			t.Errorf("Assert(%s): unexpected error: %v", raw, err)
		}
	}

	// optional present with the wrong kind is still a violation
	if err := s.Assert(decode(t, `{"required":"v","optional":7}`)); err == nil {
		t.Error("expected violation for wrong-typed optional field")
	}
}

func TestAssert_NestedPaths(t *testing.T) {
	s := &Schema{Fields: []Field{
		{Name: "items", Required: true, Kind: Array, Items: &Field{Kind: Object, Elem: &Schema{Fields: []Field{
			{Name: "url", Required: true, Kind: String},
		}}}},
	}}

	err := s.Assert(decode(t, `{"items":[{"url":"a"},{"url":5},{}]}`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var verr *ValidationError
	errors.As(err, &verr)
	if len(verr.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(verr.Violations))
	}
	if verr.Violations[0].Path != "$.items[1].url" {
		t.Errorf("expected path $.items[1].url, got %q", verr.Violations[0].Path)
	}
	if verr.Violations[1].Path != "$.items[2].url" {
		t.Errorf("expected path $.items[2].url, got %q", verr.Violations[1].Path)
	}
}

func TestAssert_CoerceString(t *testing.T) {
	coercing := &Schema{Fields: []Field{
		{Name: "width", Kind: String, Coerce: true},
	}}
	strict := &Schema{Fields: []Field{
		{Name: "width", Kind: String},
	}}

	v := decode(t, `{"width":640}`)
	if err := coercing.Assert(v); err != nil {
		t.Errorf("coercing schema rejected number: %v", err)
	}
	if err := strict.Assert(v); err == nil {
		t.Error("strict schema accepted number for string field")
	}
}

func TestAssert_ConstString(t *testing.T) {
	s := &Schema{Fields: []Field{
		{Name: "kind", Required: true, Kind: String, Const: "youtube#searchListResponse"},
	}}

	if err := s.Assert(decode(t, `{"kind":"youtube#searchListResponse"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := s.Assert(decode(t, `{"kind":"youtube#videoListResponse"}`))
	if err == nil {
		t.Fatal("expected const mismatch error")
	}
	if !strings.Contains(err.Error(), "youtube#searchListResponse") {
		t.Errorf("error should name the expected value: %v", err)
	}
}

func TestAssert_RealSchemas(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		raw     string
		wantErr bool
	}{
		{
			name:   "gnews ok",
			schema: GNewsResponseSchema,
			raw: `{"totalArticles":1,"articles":[{"title":"t","description":"d","content":"c",
				"url":"https://e.com","image":"https://e.com/i.png","publishedAt":"2025-01-01T00:00:00Z",
				"lang":"en","source":{"id":"s","name":"n","url":"https://s.com","country":"us"}}]}`,
			wantErr: false,
		},
		{
			name:    "gnews missing articles",
			schema:  GNewsResponseSchema,
			raw:     `{"totalArticles":0}`,
			wantErr: true,
		},
		{
			name:    "raw cse entirely empty",
			schema:  RawCseSchema,
			raw:     `{}`,
			wantErr: false,
		},
		{
			name:    "raw cse numeric thumbnail dimensions",
			schema:  RawCseSchema,
			raw:     `{"items":[{"link":"l","pagemap":{"cse_thumbnail":[{"src":"s","width":640,"height":480}]}}]}`,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Assert(decode(t, tt.raw))
			if (err != nil) != tt.wantErr {
				t.Errorf("Assert() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
