// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	testCases := []struct {
		name         string
		page         int64
		pageSize     int64
		wantPage     int64
		wantPageSize int64
	}{
		{name: "defaults", page: 0, pageSize: 0, wantPage: 1, wantPageSize: 20},
		{name: "negative page", page: -3, pageSize: 10, wantPage: 1, wantPageSize: 10},
		{name: "within cap", page: 2, pageSize: 50, wantPage: 2, wantPageSize: 50},
		{name: "at cap", page: 1, pageSize: 100, wantPage: 1, wantPageSize: 100},
		{name: "above cap", page: 1, pageSize: 500, wantPage: 1, wantPageSize: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.pageSize)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantPageSize, p.PageSize)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	p := NewPagination(3, 20)
	assert.Equal(t, uint64(40), p.Offset())
	assert.Equal(t, uint64(20), p.Limit())
}
