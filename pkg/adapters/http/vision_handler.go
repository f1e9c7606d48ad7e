// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"io"
	"net/http"
	"time"

	"github.com/productdecoder/search-gw/pkg/core/schema"
)

const (
	maxUploadSize = 20 * 1024 * 1024 // 20 MB, the Vision API request ceiling
)

// handleReverseImage handles POST /api/v1/google/reverse-image
func (h *Handler) handleReverseImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.logger.Error("Failed to parse multipart form", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid form data", "")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "No file provided", "")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read upload", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to read file", "")
		return
	}

	// the adapter rejects non-image/* types before any upstream call
	start := time.Now()
	result, err := h.image.ReverseImage(r.Context(), content, header.Header.Get("Content-Type"))
	h.recordUpstream("vision", time.Since(start), err)
	if err != nil {
		h.handleSearchError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, schema.ReverseImageResponse{OK: true, Data: *result})
}
