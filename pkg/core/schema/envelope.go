// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// ErrorResponse is the uniform error envelope. Every error path returns
// at least the error string; details and retryAfter appear only when
// meaningful.
type ErrorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"` // seconds, rate-limit rejections only
}

// ReverseImageResponse is the success envelope for reverse-image search
type ReverseImageResponse struct {
	OK   bool               `json:"ok"`
	Data WebDetectionResult `json:"data"`
}
