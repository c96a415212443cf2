package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskQueryParamsNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       TaskQueryParams
		wantPage int
		wantSize int
		wantSort string
		wantDesc bool
	}{
		{
			name:     "defaults",
			in:       TaskQueryParams{},
			wantPage: 1,
			wantSize: DefaultPageSize,
			wantSort: SortByCreatedAt,
		},
		{
			name:     "negative page clamps to one",
			in:       TaskQueryParams{Page: -3, PageSize: 10},
			wantPage: 1,
			wantSize: 10,
			wantSort: SortByCreatedAt,
		},
		{
			name:     "oversized page size is capped",
			in:       TaskQueryParams{Page: 2, PageSize: 500},
			wantPage: 2,
			wantSize: MaxPageSize,
			wantSort: SortByCreatedAt,
		},
		{
			name:     "sort key is case insensitive",
			in:       TaskQueryParams{SortBy: "Priority", SortDescending: true},
			wantPage: 1,
			wantSize: DefaultPageSize,
			wantSort: SortByPriority,
			wantDesc: true,
		},
		{
			name:     "unknown sort key falls back to created at ascending",
			in:       TaskQueryParams{SortBy: "title", SortDescending: true},
			wantPage: 1,
			wantSize: DefaultPageSize,
			wantSort: SortByCreatedAt,
			wantDesc: false,
		},
		{
			name:     "due date sort survives",
			in:       TaskQueryParams{SortBy: "dueDate", SortDescending: true},
			wantPage: 1,
			wantSize: DefaultPageSize,
			wantSort: SortByDueDate,
			wantDesc: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			params := tc.in
			params.Normalize()
			assert.Equal(t, tc.wantPage, params.Page)
			assert.Equal(t, tc.wantSize, params.PageSize)
			assert.Equal(t, tc.wantSort, params.SortBy)
			assert.Equal(t, tc.wantDesc, params.SortDescending)
		})
	}
}

func TestTaskQueryParamsOffset(t *testing.T) {
	t.Parallel()

	params := TaskQueryParams{Page: 3, PageSize: 20}
	params.Normalize()
	assert.Equal(t, 40, params.Offset())

	params = TaskQueryParams{}
	params.Normalize()
	assert.Equal(t, 0, params.Offset())
}
