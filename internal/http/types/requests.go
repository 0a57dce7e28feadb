// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"net/http"
	"strconv"

	"github.com/canonical/task-service/internal/types"
)

// ParsePagination reads `page` and `pageSize` query parameters, falling back
// to defaults for anything absent or unparseable.
func ParsePagination(r *http.Request) types.Pagination {
	q := r.URL.Query()

	page, err := strconv.ParseInt(q.Get("page"), 10, 64)
	if err != nil {
		page = 0
	}

	pageSize, err := strconv.ParseInt(q.Get("pageSize"), 10, 64)
	if err != nil {
		pageSize = 0
	}

	return types.NewPagination(page, pageSize)
}
