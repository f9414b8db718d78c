package core

import (
	"container/heap"

	"github.com/valter-silva-au/ztask/pkg/models"
)

// taskHeap is a binary min-heap of tasks ordered by models.Task.Less, with an
// id index so any element can be fixed or removed in O(log n).
type taskHeap struct {
	items []models.Task
	slots map[string]int
}

// newTaskHeap builds a heap from tasks with unique ids.
func newTaskHeap(tasks []models.Task) *taskHeap {
	h := &taskHeap{
		items: make([]models.Task, 0, len(tasks)),
		slots: make(map[string]int, len(tasks)),
	}
	for _, t := range tasks {
		h.slots[t.ID] = len(h.items)
		h.items = append(h.items, t)
	}
	heap.Init(h)
	return h
}

func (h *taskHeap) Len() int           { return len(h.items) }
func (h *taskHeap) Less(i, j int) bool { return h.items[i].Less(h.items[j]) }

func (h *taskHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.slots[h.items[i].ID] = i
	h.slots[h.items[j].ID] = j
}

func (h *taskHeap) Push(x any) {
	t := x.(models.Task)
	h.slots[t.ID] = len(h.items)
	h.items = append(h.items, t)
}

func (h *taskHeap) Pop() any {
	n := len(h.items) - 1
	t := h.items[n]
	h.items[n] = models.Task{}
	h.items = h.items[:n]
	delete(h.slots, t.ID)
	return t
}

func (h *taskHeap) insert(t models.Task) {
	heap.Push(h, t)
}

// get returns the stored task for id. The result aliases heap state.
func (h *taskHeap) get(id string) (*models.Task, bool) {
	i, ok := h.slots[id]
	if !ok {
		return nil, false
	}
	return &h.items[i], true
}

// replace swaps in a new value for the task with the same id and restores
// heap order.
func (h *taskHeap) replace(t models.Task) bool {
	i, ok := h.slots[t.ID]
	if !ok {
		return false
	}
	h.items[i] = t
	heap.Fix(h, i)
	return true
}

func (h *taskHeap) remove(id string) (models.Task, bool) {
	i, ok := h.slots[id]
	if !ok {
		return models.Task{}, false
	}
	return heap.Remove(h, i).(models.Task), true
}

func (h *taskHeap) top() (models.Task, bool) {
	if len(h.items) == 0 {
		return models.Task{}, false
	}
	return h.items[0], true
}

// ids returns the ids currently stored, in slot order.
func (h *taskHeap) ids() []string {
	out := make([]string, len(h.items))
	for i, t := range h.items {
		out[i] = t.ID
	}
	return out
}

// sorted returns deep copies of all tasks, most urgent first.
func (h *taskHeap) sorted() []models.Task {
	out := make([]models.Task, len(h.items))
	for i, t := range h.items {
		out[i] = t.Clone()
	}
	models.SortTasks(out)
	return out
}
