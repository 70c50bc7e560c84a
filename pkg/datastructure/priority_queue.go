package datastructure

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var (
	ErrPriorityQueueEmpty = errors.New("priority queue empty")
	ErrItemNotFound       = errors.New("item not found in priority queue")
)

type PriorityQueueNode[T constraints.Ordered] struct {
	Rank float64
	// Tiebreak orders items with equal Rank; the larger Tiebreak wins
	// (A* uses the accumulated g-score here, so the open set prefers
	// deeper nodes on equal f).
	Tiebreak float64
	Item     T
}

// less orders by Rank, then by higher Tiebreak, then by the smaller item so
// ExtractMin is deterministic for identical ranks.
func (n PriorityQueueNode[T]) less(other PriorityQueueNode[T]) bool {
	if n.Rank != other.Rank {
		return n.Rank < other.Rank
	}
	if n.Tiebreak != other.Tiebreak {
		return n.Tiebreak > other.Tiebreak
	}
	return n.Item < other.Item
}

// MinHeap is a binary heap priority queue with DecreaseKey support. Items
// must be unique; an index map tracks each item's heap position.
type MinHeap[T constraints.Ordered] struct {
	heap    []PriorityQueueNode[T]
	indexOf map[T]int
}

func NewMinHeap[T constraints.Ordered]() *MinHeap[T] {
	return &MinHeap[T]{
		heap:    make([]PriorityQueueNode[T], 0),
		indexOf: make(map[T]int),
	}
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.indexOf[h.heap[i].Item] = i
	h.indexOf[h.heap[j].Item] = j
}

func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.heap[index].less(h.heap[h.parent(index)]) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		smallest := index
		left := 2*index + 1
		right := 2*index + 2

		if left < len(h.heap) && h.heap[left].less(h.heap[smallest]) {
			smallest = left
		}
		if right < len(h.heap) && h.heap[right].less(h.heap[smallest]) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) Insert(node PriorityQueueNode[T]) {
	h.heap = append(h.heap, node)
	h.indexOf[node.Item] = len(h.heap) - 1
	h.heapifyUp(len(h.heap) - 1)
}

func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrPriorityQueueEmpty
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrPriorityQueueEmpty
	}
	root := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	delete(h.indexOf, root.Item)
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}
	return root, nil
}

// DecreaseKey replaces the rank of an already inserted item with a smaller
// one and restores the heap property.
func (h *MinHeap[T]) DecreaseKey(node PriorityQueueNode[T]) error {
	index, ok := h.indexOf[node.Item]
	if !ok {
		return ErrItemNotFound
	}
	h.heap[index].Rank = node.Rank
	h.heap[index].Tiebreak = node.Tiebreak
	h.heapifyUp(index)
	return nil
}

// Contains reports whether the item is currently queued.
func (h *MinHeap[T]) Contains(item T) bool {
	_, ok := h.indexOf[item]
	return ok
}
