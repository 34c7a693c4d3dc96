package cutter

import (
	"container/heap"

	"github.com/clipforge/cutter/media/codec"
)

// bufferedFramesCount is how many decoded frames the cutter holds before releasing
// the lowest-PTS one, high enough to absorb reordering even when generated
// timestamps are unreliable (spec §9 DESIGN NOTES "PTS heap").
const bufferedFramesCount = 15

// frameHeapItem wraps a decoded frame for PTS-ordered release. A missing PTS sorts
// as the earliest possible value, matching the source decoder's GENPTS fallback.
type frameHeapItem struct {
	pts   int64
	frame codec.Frame
}

// frameHeap is a container/heap.Interface min-heap ordered by PTS, used by the
// Video Cutter to restore presentation order to frames a decoder emits out of order
// (spec §4.4 "Frame release protocol").
type frameHeap []frameHeapItem

func (h frameHeap) Len() int            { return len(h) }
func (h frameHeap) Less(i, j int) bool  { return h[i].pts < h[j].pts }
func (h frameHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *frameHeap) Push(x interface{}) { *h = append(*h, x.(frameHeapItem)) }

func (h *frameHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// peek returns the lowest-PTS item without removing it.
func (h frameHeap) peek() frameHeapItem { return h[0] }

var _ = heap.Interface(&frameHeap{})
