package service

// History menyimpan snapshot urutan id (undo/redo linear).
type History struct {
	capacity int
	undo     [][]string
	redo     [][]string
}

const defaultHistoryCapacity = 50

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Record dipanggil sebelum perubahan; redo dibuang.
func (h *History) Record(order []string) {
	h.undo = append(h.undo, cloneIDs(order))
	if len(h.undo) > h.capacity {
		h.undo = h.undo[len(h.undo)-h.capacity:]
	}
	h.redo = nil
}

// Undo mengembalikan snapshot sebelumnya dan menyimpan `current` ke redo.
func (h *History) Undo(current []string) ([]string, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cloneIDs(current))
	return prev, true
}

func (h *History) Redo(current []string) ([]string, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cloneIDs(current))
	return next, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
