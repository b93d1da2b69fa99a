package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/container"
)

func TestListInit(t *testing.T) {
	l := &container.List[int]{}
	assert.Nil(t, l.First())
	assert.Nil(t, l.Last())
	assert.Equal(t, 0, l.Len())
}

func TestListOperation(t *testing.T) {
	l := &container.List[int]{}

	// test: insert

	// ^, 1, ^
	n1 := &container.ListNode[int]{S: 1, Value: 1}
	l.PushBack(n1)
	// ^, 2, 1, ^
	n2 := &container.ListNode[int]{S: 2, Value: 2}
	l.PushFront(n2)
	// ^, 3, 2, 1, ^
	n3 := &container.ListNode[int]{S: 3, Value: 3}
	n2.InsertBefore(n3)
	// ^, 3, 2, 1, 4, ^
	n4 := &container.ListNode[int]{S: 4, Value: 4}
	n1.InsertAfter(n4)
	assert.Equal(t, 4, l.Len())

	// test: first last next prev

	assert.Equal(t, n3, l.First())
	assert.Equal(t, n4, l.Last())
	assert.Equal(t, n2, n3.Next())
	assert.Equal(t, n1, n2.Next())
	assert.Equal(t, n4, n1.Next())
	assert.Nil(t, n4.Next())
	assert.Nil(t, n3.Prev())
	assert.Equal(t, n3, n2.Prev())
	assert.Equal(t, l, n1.Parent())

	// test: keys values

	assert.Equal(t, []float64{3, 2, 1, 4}, l.Keys())
	assert.Equal(t, []int{3, 2, 1, 4}, l.Values())

	// test: remove

	// ^, 3, 1, 4, ^
	l.Remove(n2)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, n1, n3.Next())
	assert.Nil(t, n2.Parent())
	// ^, 1, 4, ^
	l.Remove(n3)
	assert.Equal(t, n1, l.First())
	// ^, 1, ^
	l.Remove(n4)
	assert.Equal(t, n1, l.First())
	assert.Equal(t, n1, l.Last())
	// ^, ^
	l.Remove(n1)
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.First())
	assert.Nil(t, l.Last())

	// removed node can be reinserted
	l.PushFront(n1)
	assert.Equal(t, 1, l.Len())
}
