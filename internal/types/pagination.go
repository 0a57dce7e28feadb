// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

const (
	defaultPageSize int64 = 20
	maxPageSize     int64 = 100
)

// Pagination carries normalized, 1-based paging parameters. Construct it
// through NewPagination so the defaults and the hard cap are always applied.
type Pagination struct {
	Page     int64
	PageSize int64
}

// NewPagination normalizes raw paging parameters: page defaults to 1,
// pageSize defaults to 20 and is capped at 100 regardless of the request.
func NewPagination(page, pageSize int64) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

func (p Pagination) Offset() uint64 {
	return uint64((p.Page - 1) * p.PageSize)
}

func (p Pagination) Limit() uint64 {
	return uint64(p.PageSize)
}
