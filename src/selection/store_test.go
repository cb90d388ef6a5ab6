package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/InteractiveDashboard/src/types"
)

type recorder struct {
	name   string
	staged Selection
	log    *[]string
}

func (r *recorder) Stage(s Selection) {
	r.staged = s
	*r.log = append(*r.log, r.name+":stage:"+s.String())
}

func (r *recorder) Commit() { *r.log = append(*r.log, r.name+":commit") }

func TestReduce(t *testing.T) {
	cases := []struct {
		name string
		cur  Selection
		in   Intent
		want Selection
	}{
		{"select from none", None(), Select(1), Of(1)},
		{"select replaces", Of(1), Select(2), Of(2)},
		{"clear", Of(2), Clear(), None()},
		{"clear none", None(), Clear(), None()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Reduce(tc.cur, tc.in))
		})
	}
}

func TestStore_InitiallyEmpty(t *testing.T) {
	s := NewStore()
	assert.True(t, s.Current().Empty())
	_, ok := s.Current().ID()
	assert.False(t, ok)
}

func TestStore_AllStagedBeforeAnyCommit(t *testing.T) {
	var log []string
	s := NewStore()
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	s.Subscribe(a)
	s.Subscribe(b)

	require.True(t, s.Dispatch(Select(7)))
	assert.Equal(t, []string{"a:stage:7", "b:stage:7", "a:commit", "b:commit"}, log)
	assert.Equal(t, Of(7), a.staged)
	assert.Equal(t, Of(7), b.staged)
}

func TestStore_SameValueIsNoop(t *testing.T) {
	var log []string
	s := NewStore()
	s.Subscribe(&recorder{name: "a", log: &log})

	require.True(t, s.Dispatch(Select(3)))
	log = log[:0]
	assert.False(t, s.Dispatch(Select(3)))
	assert.False(t, s.Set(Of(3)))
	assert.Empty(t, log)

	require.True(t, s.Dispatch(Clear()))
	log = log[:0]
	assert.False(t, s.Dispatch(Clear()))
	assert.Empty(t, log)
}

func TestStore_CancelStopsNotifications(t *testing.T) {
	var log []string
	s := NewStore()
	cancel := s.Subscribe(&recorder{name: "a", log: &log})
	assert.Equal(t, 1, s.Subscribers())
	cancel()
	cancel()
	assert.Equal(t, 0, s.Subscribers())
	s.Dispatch(Select(1))
	assert.Empty(t, log)
}

func TestStore_ReentrantDispatchIsQueued(t *testing.T) {
	s := NewStore()
	var seen []Selection
	var commits int
	s.Subscribe(SubscriberFuncs{
		OnStage: func(sel Selection) { seen = append(seen, sel) },
		OnCommit: func() {
			commits++
			// A commit that reacts by dispatching again must not interleave.
			if s.Current().Is(1) {
				s.Dispatch(Select(2))
			}
		},
	})

	s.Dispatch(Select(1))
	assert.Equal(t, []Selection{Of(1), Of(2)}, seen)
	assert.Equal(t, 2, commits)
	assert.Equal(t, Of(2), s.Current())
}

func TestStore_OnChangeHook(t *testing.T) {
	s := NewStore()
	var got [][2]Selection
	s.OnChange(func(prev, next Selection) { got = append(got, [2]Selection{prev, next}) })
	s.Dispatch(Select(types.ID(4)))
	s.Dispatch(Select(types.ID(4)))
	s.Dispatch(Clear())
	assert.Equal(t, [][2]Selection{{None(), Of(4)}, {Of(4), None()}}, got)
}

func TestStore_HookDispatchWaitsForSubscribers(t *testing.T) {
	var log []string
	s := NewStore()
	s.Subscribe(&recorder{name: "a", log: &log})
	var hooked [][2]Selection
	s.OnChange(func(prev, next Selection) {
		hooked = append(hooked, [2]Selection{prev, next})
		if next.Is(1) {
			assert.True(t, s.Dispatch(Select(2)))
		}
	})

	s.Dispatch(Select(1))
	assert.Equal(t, []string{"a:stage:1", "a:commit", "a:stage:2", "a:commit"}, log)
	assert.Equal(t, [][2]Selection{{None(), Of(1)}, {Of(1), Of(2)}}, hooked)
	assert.Equal(t, Of(2), s.Current())
}
