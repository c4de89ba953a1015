package gridastar

import "container/heap"

// frontier is the open set. It holds at most one entry per cell.
type frontier interface {
	Len() int
	push(n *searchNode)
	popMin() *searchNode
	// update repositions n after its f decreased.
	update(n *searchNode)
	nodes() []*searchNode
}

// FrontierKind selects the open-set implementation.
type FrontierKind int

const (
	// ScanFrontier rescans the whole open set on every pop. Among equal f,
	// the node earliest in the current slice order wins, and a relaxed node
	// moves to the end. Quadratic, but it reproduces the reference paths.
	ScanFrontier FrontierKind = iota
	// HeapFrontier is a binary heap keyed on (f, seq), where seq increases on
	// every insert and relaxation. It finds paths of the same cost, but may
	// pick a different one among equally short paths.
	HeapFrontier
)

func (k FrontierKind) String() string {
	switch k {
	case ScanFrontier:
		return "scan"
	case HeapFrontier:
		return "heap"
	}
	return "unknown"
}

func newFrontier(kind FrontierKind) frontier {
	if kind == HeapFrontier {
		return &heapFrontier{}
	}
	return &scanFrontier{}
}

type scanFrontier struct {
	items []*searchNode
}

func (s *scanFrontier) Len() int { return len(s.items) }

func (s *scanFrontier) push(n *searchNode) {
	s.items = append(s.items, n)
}

func (s *scanFrontier) popMin() *searchNode {
	best := 0
	for i := 1; i < len(s.items); i++ {
		if s.items[i].f < s.items[best].f {
			best = i
		}
	}
	n := s.items[best]
	s.remove(best)
	return n
}

func (s *scanFrontier) update(n *searchNode) {
	for i, it := range s.items {
		if it == n {
			s.remove(i)
			break
		}
	}
	s.items = append(s.items, n)
}

func (s *scanFrontier) remove(i int) {
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
}

func (s *scanFrontier) nodes() []*searchNode { return s.items }

// priorityQueue orders search nodes by f, then by seq.
type priorityQueue []*searchNode

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	if queue[i].f != queue[j].f {
		return queue[i].f < queue[j].f
	}
	return queue[i].seq < queue[j].seq
}
func (queue priorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].index = i
	queue[j].index = j
}

func (queue *priorityQueue) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*queue)
	*queue = append(*queue, n)
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.index = -1
	*queue = oldQueue[:n-1]
	return item
}

type heapFrontier struct {
	queue priorityQueue
	seq   uint64
}

func (h *heapFrontier) Len() int { return h.queue.Len() }

func (h *heapFrontier) push(n *searchNode) {
	h.seq++
	n.seq = h.seq
	heap.Push(&h.queue, n)
}

func (h *heapFrontier) popMin() *searchNode {
	return heap.Pop(&h.queue).(*searchNode)
}

func (h *heapFrontier) update(n *searchNode) {
	h.seq++
	n.seq = h.seq
	heap.Fix(&h.queue, n.index)
}

func (h *heapFrontier) nodes() []*searchNode { return h.queue }
