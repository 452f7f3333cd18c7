package service

import (
	"sort"

	"university_backend/internals/features/ordering/model"
)

type Phase string

const (
	PhaseSynced    Phase = "synced"    // sama dengan data server terakhir
	PhasePending   Phase = "pending"   // optimistic, commit belum selesai
	PhaseCommitted Phase = "committed" // commit terakhir sukses
	PhaseFailed    Phase = "failed"    // commit gagal, list sudah direkonsiliasi dari server
)

// State: snapshot fase + isi list.
type State struct {
	Phase Phase
	Items []model.OrderedItem
	Err   error
}

// Store memegang satu daftar di memori. Tidak thread-safe: satu pemilik (request / layar).
type Store struct {
	items   []model.OrderedItem
	phase   Phase
	err     error
	history *History
}

func NewStore(initial []model.OrderedItem) *Store {
	s := &Store{history: NewHistory(0)}
	s.Refresh(initial)
	return s
}

func (s *Store) Current() []model.OrderedItem {
	return model.Clone(s.items)
}

func (s *Store) State() State {
	return State{Phase: s.phase, Items: s.Current(), Err: s.err}
}

func (s *Store) Phase() Phase { return s.phase }

func (s *Store) Len() int { return len(s.items) }

// ApplyReorder langsung mengganti list di memori (optimistic).
// No-op tidak mengubah fase maupun history.
func (s *Store) ApplyReorder(from, to int) ReorderResult {
	res := Reorder(s.items, from, to)
	if res.NoOp() {
		return res
	}
	s.history.Record(model.IDs(s.items))
	s.setPending(res.List)
	return res
}

// Undo mengembalikan urutan sebelum perubahan terakhir (optimistic).
func (s *Store) Undo() (ReorderResult, bool) {
	prev, ok := s.history.Undo(model.IDs(s.items))
	if !ok {
		return ReorderResult{}, false
	}
	return s.arrange(prev)
}

func (s *Store) Redo() (ReorderResult, bool) {
	next, ok := s.history.Redo(model.IDs(s.items))
	if !ok {
		return ReorderResult{}, false
	}
	return s.arrange(next)
}

func (s *Store) CanUndo() bool { return s.history.CanUndo() }
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

func (s *Store) arrange(ids []string) (ReorderResult, bool) {
	res, ok := Arrange(s.items, ids)
	if !ok {
		// set id berubah sejak snapshot; history tidak berlaku lagi
		s.history.Clear()
		return ReorderResult{}, false
	}
	if !res.NoOp() {
		s.setPending(res.List)
	}
	return res, true
}

// MarkCommitted: Pending → Committed.
func (s *Store) MarkCommitted() {
	if s.phase == PhasePending {
		s.phase = PhaseCommitted
		s.err = nil
	}
}

// Reconcile: Pending → Failed(list dari server).
func (s *Store) Reconcile(server []model.OrderedItem, cause error) {
	s.replace(server)
	s.phase = PhaseFailed
	s.err = cause
	s.history.Clear()
}

// MarkFailed dipakai jika list server tidak bisa dibaca ulang; list optimistic dipertahankan.
func (s *Store) MarkFailed(cause error) {
	s.phase = PhaseFailed
	s.err = cause
}

// Refresh mengganti list dengan data server apa adanya.
func (s *Store) Refresh(server []model.OrderedItem) {
	s.replace(server)
	s.phase = PhaseSynced
	s.err = nil
	s.history.Clear()
}

// Sync menerima data server. Jika urutannya sama dengan memori, history dipertahankan;
// jika berbeda, sama dengan Refresh. Return true bila history dipertahankan.
func (s *Store) Sync(server []model.OrderedItem) bool {
	incoming := model.Clone(server)
	sort.SliceStable(incoming, func(i, j int) bool { return incoming[i].Position < incoming[j].Position })
	if sameOrder(s.items, incoming) {
		s.items = incoming
		s.phase = PhaseSynced
		s.err = nil
		return true
	}
	s.Refresh(incoming)
	return false
}

func sameOrder(a, b []model.OrderedItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Position != b[i].Position {
			return false
		}
	}
	return true
}

func (s *Store) setPending(list []model.OrderedItem) {
	s.items = list
	s.phase = PhasePending
	s.err = nil
}

func (s *Store) replace(server []model.OrderedItem) {
	items := model.Clone(server)
	if items == nil {
		items = []model.OrderedItem{}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	s.items = items
}
