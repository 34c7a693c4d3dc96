package cutter

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/cutter/media/codec"
)

func TestFrameHeap_ReleasesLowestPTSFirst(t *testing.T) {
	h := &frameHeap{}
	heap.Init(h)
	for _, pts := range []int64{50, 10, 30, 20, 40} {
		heap.Push(h, frameHeapItem{pts: pts, frame: codec.Frame{PTS: pts}})
	}

	var order []int64
	for h.Len() > 0 {
		item := heap.Pop(h).(frameHeapItem)
		order = append(order, item.pts)
	}
	assert.Equal(t, []int64{10, 20, 30, 40, 50}, order)
}

func TestFrameHeap_PeekDoesNotRemove(t *testing.T) {
	h := &frameHeap{}
	heap.Init(h)
	heap.Push(h, frameHeapItem{pts: 5})
	heap.Push(h, frameHeapItem{pts: 2})

	require.Equal(t, int64(2), h.peek().pts)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, int64(2), h.peek().pts)
}

func TestFrameHeap_MissingPTSSortsEarliest(t *testing.T) {
	h := &frameHeap{}
	heap.Init(h)
	heap.Push(h, frameHeapItem{pts: 100})
	heap.Push(h, frameHeapItem{pts: -1})
	heap.Push(h, frameHeapItem{pts: 50})

	assert.Equal(t, int64(-1), h.peek().pts)
}
