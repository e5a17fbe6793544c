package pathfind

import (
	"container/heap"

	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
)

// Category is a node's state within one search episode.
type Category uint8

const (
	Unvisited Category = iota
	Open
	Closed
)

// NodeRecord is the search bookkeeping for one node. Records belong to an
// episode; a record whose Episode differs from the engine's current one is
// treated as unvisited.
type NodeRecord struct {
	Ref      navgraph.NodeRef
	Category Category
	// CostSoFar is the cost of the best known route from the start.
	CostSoFar float64
	// Connection is the hop that reached this node. It is unset for the
	// start node.
	Connection    navgraph.Connection
	HasConnection bool
	// Priority is CostSoFar plus the heuristic estimate to the goal.
	Priority float64
	Episode  uint32

	heapIndex int
	seq       uint64
}

func (r *NodeRecord) reset(ref navgraph.NodeRef, episode uint32) {
	*r = NodeRecord{Ref: ref, Episode: episode, heapIndex: -1}
}

// openList is a binary heap of records ordered by priority. Equal
// priorities pop in insertion order.
type openList struct {
	items []*NodeRecord
	next  uint64
}

func (q *openList) Len() int { return len(q.items) }

func (q *openList) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.seq < b.seq
}

func (q *openList) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].heapIndex = i
	q.items[j].heapIndex = j
}

func (q *openList) Push(x any) {
	rec := x.(*NodeRecord)
	rec.heapIndex = len(q.items)
	q.items = append(q.items, rec)
}

func (q *openList) Pop() any {
	old := q.items
	n := len(old)
	rec := old[n-1]
	old[n-1] = nil
	rec.heapIndex = -1
	q.items = old[:n-1]
	return rec
}

// add inserts rec, or repositions it when it is already queued. Either way
// it takes a fresh insertion sequence.
func (q *openList) add(rec *NodeRecord, priority float64) {
	rec.Priority = priority
	rec.seq = q.next
	q.next++
	if rec.heapIndex >= 0 && rec.heapIndex < len(q.items) && q.items[rec.heapIndex] == rec {
		heap.Fix(q, rec.heapIndex)
		return
	}
	heap.Push(q, rec)
}

func (q *openList) pop() *NodeRecord {
	return heap.Pop(q).(*NodeRecord)
}

func (q *openList) clear() {
	for i := range q.items {
		q.items[i].heapIndex = -1
		q.items[i] = nil
	}
	q.items = q.items[:0]
	q.next = 0
}
