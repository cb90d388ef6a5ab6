package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	cases := []struct {
		name       string
		prev, next []int
		want       Plan[int]
	}{
		{"first pass", nil, []int{1, 2}, Plan[int]{Enter: []int{1, 2}}},
		{"no change", []int{1, 2}, []int{1, 2}, Plan[int]{Update: []int{1, 2}}},
		{"reorder keeps identity", []int{1, 2, 3}, []int{3, 1, 2}, Plan[int]{Update: []int{3, 1, 2}}},
		{"mixed", []int{1, 2, 3}, []int{2, 4, 3, 5}, Plan[int]{Enter: []int{4, 5}, Update: []int{2, 3}, Exit: []int{1}}},
		{"all removed", []int{1, 2}, nil, Plan[int]{Exit: []int{1, 2}}},
		{"duplicates collapse", []int{1}, []int{1, 2, 1, 2}, Plan[int]{Enter: []int{2}, Update: []int{1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Diff(tc.prev, tc.next))
		})
	}
}

func TestPlanEmpty(t *testing.T) {
	assert.True(t, Diff[int](nil, nil).Empty())
	assert.False(t, Diff(nil, []int{1}).Empty())
}
