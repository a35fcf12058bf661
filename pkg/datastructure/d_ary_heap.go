package datastructure

import (
	"errors"

	"github.com/lintang-b-s/ecorouting/pkg"
)

// EdgeKey directed edge state of an edge-based search: the edge plus its traversal direction.
type EdgeKey struct {
	edgeId  Index
	reverse bool
}

func NewEdgeKey(edgeId Index, reverse bool) EdgeKey {
	return EdgeKey{edgeId: edgeId, reverse: reverse}
}

func (k EdgeKey) GetEdgeId() Index {
	return k.edgeId
}

func (k EdgeKey) IsReverse() bool {
	return k.reverse
}

// Slot dense position of the key, 2*edgeId (+1 when reverse).
func (k EdgeKey) Slot() int {
	slot := int(k.edgeId) << 1
	if k.reverse {
		slot++
	}
	return slot
}

var ErrEmptyHeap = errors.New("heap is empty")

type PriorityQueueNode[T comparable] struct {
	rank    float64
	item    T
	itemPos int
}

func NewPriorityQueueNode[T comparable](rank float64, item T) *PriorityQueueNode[T] {
	return &PriorityQueueNode[T]{rank: rank, item: item}
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *PriorityQueueNode[T]) GetRank() float64 {
	return p.rank
}

func (p *PriorityQueueNode[T]) SetRank(rank float64) {
	p.rank = rank
}

func (p *PriorityQueueNode[T]) SetPos(i int) {
	p.itemPos = i
}

// GetPos position inside the heap array, -1 once extracted.
func (p *PriorityQueueNode[T]) GetPos() int {
	return p.itemPos
}

// MinHeap d-ary min heap with decrease key.
type MinHeap[T comparable] struct {
	heap []*PriorityQueueNode[T]
	d    int
}

func NewBinaryHeap[T comparable]() *MinHeap[T] {
	return NewdAryHeap[T](2)
}

func NewFourAryHeap[T comparable]() *MinHeap[T] {
	return NewdAryHeap[T](4)
}

func NewdAryHeap[T comparable](d int) *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]*PriorityQueueNode[T], 0),
		d:    d,
	}
}

func (h *MinHeap[T]) Preallocate(maxSearchSize int) {
	h.heap = make([]*PriorityQueueNode[T], 0, maxSearchSize)
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

// heapifyUp moves the node at index up while its parent has a larger rank. O(log n).
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.heap[index].rank < h.heap[h.parent(index)].rank {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown moves the node at index down to its smallest child until the heap property holds. O(d log n).
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		first := index*h.d + 1
		if first >= len(h.heap) {
			return
		}
		last := min(first+h.d, len(h.heap))

		smallest := first
		for i := first + 1; i < last; i++ {
			if h.heap[i].rank < h.heap[smallest].rank {
				smallest = i
			}
		}
		if h.heap[smallest].rank >= h.heap[index].rank {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]

	h.heap[i].SetPos(i)
	h.heap[j].SetPos(j)
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) Clear() {
	h.heap = h.heap[:0]
}

func (h *MinHeap[T]) GetMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return nil, ErrEmptyHeap
	}
	return h.heap[0], nil
}

// GetMinRank rank of the root, +Inf when empty.
func (h *MinHeap[T]) GetMinRank() float64 {
	if h.IsEmpty() {
		return pkg.INF_WEIGHT
	}
	return h.heap[0].rank
}

func (h *MinHeap[T]) Insert(node *PriorityQueueNode[T]) {
	h.heap = append(h.heap, node)
	index := h.Size() - 1
	node.SetPos(index)
	h.heapifyUp(index)
}

// ExtractMin pops the root. O(d log n).
func (h *MinHeap[T]) ExtractMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return nil, ErrEmptyHeap
	}
	root := h.heap[0]

	h.swap(0, h.Size()-1)
	h.heap = h.heap[:h.Size()-1]
	root.SetPos(-1)
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}

// DecreaseKey lowers the rank of a node still in the heap. O(log n).
func (h *MinHeap[T]) DecreaseKey(node *PriorityQueueNode[T], rank float64) error {
	pos := node.GetPos()
	if pos < 0 || pos >= h.Size() || h.heap[pos] != node || node.GetRank() < rank {
		return errors.New("invalid index or new value")
	}

	node.SetRank(rank)
	h.heapifyUp(pos)
	return nil
}
