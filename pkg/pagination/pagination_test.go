package pagination_test

import (
	"testing"

	"registrar/pkg/pagination"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		size      int
		total     int
		want      pagination.Page
		hasNext   bool
		hasPrev   bool
	}{
		{
			name:      "first page",
			requested: 1, size: 10, total: 25,
			want:    pagination.Page{Number: 1, Size: 10, NumPages: 3, Total: 25},
			hasNext: true,
		},
		{
			name:      "middle page",
			requested: 2, size: 10, total: 25,
			want:    pagination.Page{Number: 2, Size: 10, NumPages: 3, Total: 25},
			hasNext: true, hasPrev: true,
		},
		{
			name:      "past the end clamps to last page",
			requested: 9, size: 10, total: 25,
			want:    pagination.Page{Number: 3, Size: 10, NumPages: 3, Total: 25},
			hasPrev: true,
		},
		{
			name:      "zero page clamps to first page",
			requested: 0, size: 10, total: 5,
			want: pagination.Page{Number: 1, Size: 10, NumPages: 1, Total: 5},
		},
		{
			name:      "empty result has one page",
			requested: 3, size: 10, total: 0,
			want: pagination.Page{Number: 1, Size: 10, NumPages: 1, Total: 0},
		},
		{
			name:      "default size",
			requested: 1, size: 0, total: 11,
			want:    pagination.Page{Number: 1, Size: pagination.DefaultSize, NumPages: 2, Total: 11},
			hasNext: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.New(tt.requested, tt.size, tt.total)
			require.Equal(t, tt.want, p)
			require.Equal(t, tt.hasNext, p.HasNext())
			require.Equal(t, tt.hasPrev, p.HasPrevious())
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	require.Equal(t, []int{1, 2}, pagination.Slice(items, pagination.New(1, 2, len(items))))
	require.Equal(t, []int{5}, pagination.Slice(items, pagination.New(3, 2, len(items))))
	require.Equal(t, []int{}, pagination.Slice([]int{}, pagination.New(1, 2, 0)))
}
