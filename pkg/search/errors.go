// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/productdecoder/search-gw/pkg/httputil"
)

// Kind tags an Error with its failure class. The router maps kinds to
// HTTP statuses; nothing else in the gateway chooses a status.
type Kind int

const (
	KindBadRequest Kind = iota
	KindUnsupportedMedia
	KindRateLimited
	KindUpstreamUnavailable
	KindUpstreamInvalid
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnsupportedMedia:
		return "unsupported_media"
	case KindRateLimited:
		return "rate_limited"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindUpstreamInvalid:
		return "upstream_invalid_response"
	default:
		return "internal"
	}
}

// Error is the single error type crossing component boundaries. Adapters
// and the limiter return it as a value; unstructured errors never escape
// a component.
type Error struct {
	Kind           Kind
	Provider       string // upstream name, empty for caller-input errors
	Message        string
	UpstreamStatus int // set when the upstream answered with an error status
	err            error
}

func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// HTTPStatus maps the error kind to the response status
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUpstreamUnavailable, KindUpstreamInvalid:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest builds a caller-input error
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// UnsupportedMedia builds a wrong-content-type error
func UnsupportedMedia(message string) *Error {
	return &Error{Kind: KindUnsupportedMedia, Message: message}
}

// RateLimited builds an admission-control rejection
func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Message: message}
}

// Internal wraps an unclassified failure
func Internal(provider string, err error) *Error {
	return &Error{Kind: KindInternal, Provider: provider, Message: "internal error", err: err}
}

// fromTransport classifies a client-wrapper failure. Both no-response
// failures and upstream error statuses are UpstreamUnavailable; the
// status is kept for logging but upstream bodies are never forwarded
// to callers, so credentials embedded in provider errors cannot leak.
func fromTransport(provider string, err error) *Error {
	var terr *httputil.TransportError
	if errors.As(err, &terr) && !terr.NoResponse() {
		return &Error{
			Kind:           KindUpstreamUnavailable,
			Provider:       provider,
			Message:        fmt.Sprintf("upstream returned status %d", terr.Status),
			UpstreamStatus: terr.Status,
			err:            err,
		}
	}
	return &Error{
		Kind:     KindUpstreamUnavailable,
		Provider: provider,
		Message:  "upstream request failed",
		err:      err,
	}
}

// invalidResponse marks provider contract drift. Logged at higher
// severity by the router since it indicates a latent integration bug.
func invalidResponse(provider string, err error) *Error {
	return &Error{
		Kind:     KindUpstreamInvalid,
		Provider: provider,
		Message:  "upstream response failed validation",
		err:      err,
	}
}
