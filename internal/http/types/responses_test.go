// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/types"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "unauthenticated", err: types.ErrUnauthenticated, wantStatus: http.StatusUnauthorized, wantMessage: "unauthenticated"},
		{name: "forbidden", err: types.Forbiddenf("viewers cannot delete tasks"), wantStatus: http.StatusForbidden, wantMessage: "viewers cannot delete tasks"},
		{name: "not found", err: types.NotFoundf("task %q not found", "t-1"), wantStatus: http.StatusNotFound, wantMessage: `task "t-1" not found`},
		{name: "bad request", err: types.BadRequestf("invalid role %q", "boss"), wantStatus: http.StatusBadRequest, wantMessage: `invalid role "boss"`},
		{name: "internal errors are masked", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError, wantMessage: "internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tc.err, logging.NewNoopLogger())

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Message != tc.wantMessage {
				t.Errorf("expected message %q, got %q", tc.wantMessage, body.Message)
			}
		})
	}
}

func TestNewListResponseReportsEffectivePageSize(t *testing.T) {
	page := types.NewPagination(1, 500)
	resp := NewListResponse([]string{}, 3, page)

	if resp.PageSize != 100 {
		t.Errorf("expected capped pageSize 100, got %d", resp.PageSize)
	}
	if resp.Page != 1 || resp.Total != 3 {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}
