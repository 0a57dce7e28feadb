// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/types"
)

// ListResponse is the envelope returned by every list endpoint. PageSize is
// the effective (post-cap) page size, not the requested one.
type ListResponse struct {
	Data     any   `json:"data"`
	Total    int64 `json:"total"`
	Page     int64 `json:"page"`
	PageSize int64 `json:"pageSize"`
}

func NewListResponse(data any, total int64, page types.Pagination) ListResponse {
	return ListResponse{
		Data:     data,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps the service error taxonomy onto HTTP status codes. Errors
// outside the taxonomy are logged and reported as a generic internal error so
// storage details never leak to clients.
func WriteError(w http.ResponseWriter, err error, logger logging.LoggerInterface) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, types.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = taxonomyMessage(err, types.ErrUnauthenticated)
	case errors.Is(err, types.ErrForbidden):
		status = http.StatusForbidden
		message = taxonomyMessage(err, types.ErrForbidden)
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
		message = taxonomyMessage(err, types.ErrNotFound)
	case errors.Is(err, types.ErrBadRequest):
		status = http.StatusBadRequest
		message = taxonomyMessage(err, types.ErrBadRequest)
	default:
		logger.Errorf("unhandled error: %v", err)
	}

	WriteJSON(w, status, ErrorResponse{Status: status, Message: message})
}

func taxonomyMessage(err error, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}
