package queue

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryPop_Order(t *testing.T) {
	q := New[string]()
	q.Push("a", "b")
	q.Push("c")
	require.Equal(t, 3, q.Len())

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.TryPop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := q.TryPop()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestTryPop_ZeroValues(t *testing.T) {
	q := New[int]()
	q.Push(0, 0)

	v, ok := q.TryPop()
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, 1, q.Len())
}

func TestDrain(t *testing.T) {
	tests := []struct {
		name string
		max  int
		want []int
		left int
	}{
		{"all", 0, []int{1, 2, 3, 4}, 0},
		{"negative means all", -1, []int{1, 2, 3, 4}, 0},
		{"batch", 3, []int{1, 2, 3}, 1},
		{"more than queued", 10, []int{1, 2, 3, 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New[int]()
			q.Push(1, 2, 3, 4)
			assert.Equal(t, tt.want, q.Drain(tt.max))
			assert.Equal(t, tt.left, q.Len())
		})
	}
}

func TestDrain_AfterPop(t *testing.T) {
	q := New[int]()
	q.Push(1, 2, 3)
	q.TryPop()

	assert.Equal(t, []int{2, 3}, q.Drain(0))
	assert.Nil(t, q.Drain(0))

	q.Push(9)
	v, ok := q.TryPop()
	assert.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestClear(t *testing.T) {
	q := New[*int]()
	x := 1
	q.Push(&x, &x)
	q.TryPop()
	q.Clear()

	assert.Equal(t, 0, q.Len())
	_, ok := q.TryPop()
	assert.False(t, ok)
}

func TestConcurrentPushPop(t *testing.T) {
	q := New[int]()
	const producers, each = 8, 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Push(base*each + i)
			}
		}(p)
	}
	wg.Wait()

	var mu sync.Mutex
	var seen []int
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := q.TryPop()
				if !ok {
					return
				}
				mu.Lock()
				seen = append(seen, v)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, producers*each)
	sort.Ints(seen)
	for i, v := range seen {
		assert.Equal(t, i, v)
	}
}
