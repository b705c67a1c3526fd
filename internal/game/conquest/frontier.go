package conquest

import (
	"container/heap"

	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
)

// candidate is a tile waiting to be evaluated. The same tile may be queued
// more than once; stale copies are dropped when popped.
type candidate struct {
	tile     core.TileID
	priority float64
	seq      uint64
}

// candidateHeap orders by priority, then by insertion sequence so equal
// priorities come out first-in first-out.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) { *h = append(*h, x.(candidate)) }

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// frontier is the min-priority queue of candidates for one simulation.
type frontier struct {
	h    candidateHeap
	next uint64
}

func newFrontier() *frontier {
	return &frontier{}
}

func (f *frontier) push(tile core.TileID, priority float64) {
	heap.Push(&f.h, candidate{tile: tile, priority: priority, seq: f.next})
	f.next++
}

func (f *frontier) pop() candidate {
	return heap.Pop(&f.h).(candidate)
}

func (f *frontier) len() int { return f.h.Len() }
