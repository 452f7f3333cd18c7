package service

import "university_backend/internals/features/ordering/model"

// ReorderResult: daftar baru + item yang posisinya berubah (dengan posisi baru).
type ReorderResult struct {
	List    []model.OrderedItem
	Changed []model.OrderedItem
}

func (r ReorderResult) NoOp() bool { return len(r.Changed) == 0 }

// CheckIndices dipakai pemanggil supaya Reorder tidak panic.
func CheckIndices(n, from, to int) error {
	if from < 0 || from >= n {
		return &InvalidIndexError{Index: from, Len: n}
	}
	if to < 0 || to >= n {
		return &InvalidIndexError{Index: to, Len: n}
	}
	return nil
}

// Reorder memindahkan item dari index `from` ke `to` lalu menomori ulang 1..N.
// Input tidak diubah. Index di luar jangkauan = bug pemanggil → panic *InvalidIndexError.
func Reorder(list []model.OrderedItem, from, to int) ReorderResult {
	if err := CheckIndices(len(list), from, to); err != nil {
		panic(err)
	}
	if from == to {
		return ReorderResult{List: model.Clone(list), Changed: []model.OrderedItem{}}
	}

	moved := make([]model.OrderedItem, 0, len(list))
	moved = append(moved, list[:from]...)
	moved = append(moved, list[from+1:]...)

	// sisipkan di `to`
	moved = append(moved, model.OrderedItem{})
	copy(moved[to+1:], moved[to:])
	moved[to] = list[from]

	return renumber(list, moved)
}

// Arrange menyusun ulang list mengikuti urutan ids (dipakai undo/redo & normalisasi).
// ids harus berisi himpunan id yang sama persis dengan list; jika tidak, ok=false.
func Arrange(list []model.OrderedItem, ids []string) (ReorderResult, bool) {
	if len(ids) != len(list) {
		return ReorderResult{}, false
	}
	byID := make(map[string]model.OrderedItem, len(list))
	for _, it := range list {
		byID[it.ID] = it
	}
	ordered := make([]model.OrderedItem, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return ReorderResult{}, false
		}
		delete(byID, id)
		ordered = append(ordered, it)
	}
	return renumber(list, ordered), true
}

// Normalize menutup celah posisi (hasil delete) tanpa mengubah urutan.
func Normalize(list []model.OrderedItem) ReorderResult {
	res, _ := Arrange(list, model.IDs(list))
	return res
}

func renumber(before, ordered []model.OrderedItem) ReorderResult {
	prev := make(map[string]int, len(before))
	for _, it := range before {
		prev[it.ID] = it.Position
	}

	out := make([]model.OrderedItem, len(ordered))
	changed := make([]model.OrderedItem, 0)
	for i, it := range ordered {
		it.Position = i + 1
		out[i] = it
		if p, ok := prev[it.ID]; !ok || p != it.Position {
			changed = append(changed, it)
		}
	}
	return ReorderResult{List: out, Changed: changed}
}
