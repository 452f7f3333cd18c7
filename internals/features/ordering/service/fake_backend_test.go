package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"university_backend/internals/features/ordering/model"
)

var errWriteRejected = errors.New("write rejected")

// memBackend: backend in-memory untuk test, bisa diatur agar id tertentu gagal.
type memBackend struct {
	mu       sync.Mutex
	rows     map[string]int
	failIDs  map[string]bool
	writes   []string
	listErr  error
	inflight int
	peak     int
}

func newMemBackend(list []model.OrderedItem) *memBackend {
	b := &memBackend{rows: map[string]int{}, failIDs: map[string]bool{}}
	for _, it := range list {
		b.rows[it.ID] = it.Position
	}
	return b
}

func (b *memBackend) ListItems(_ context.Context, _ model.ListRef) ([]model.OrderedItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]model.OrderedItem, 0, len(b.rows))
	for id, pos := range b.rows {
		out = append(out, model.OrderedItem{ID: id, Position: pos})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position == out[j].Position {
			return out[i].ID < out[j].ID
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (b *memBackend) UpdatePosition(_ context.Context, _ model.ListRef, id string, position int) error {
	b.mu.Lock()
	b.inflight++
	if b.inflight > b.peak {
		b.peak = b.inflight
	}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.inflight--
		b.mu.Unlock()
	}()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes = append(b.writes, id)
	if b.failIDs[id] {
		return errWriteRejected
	}
	b.rows[id] = position
	return nil
}

func (b *memBackend) writeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.writes)
}

// bulkBackend menambahkan UpdatePositions.
type bulkBackend struct {
	*memBackend
	bulkCalls int
	bulkErr   error
}

func (b *bulkBackend) UpdatePositions(_ context.Context, _ model.ListRef, items []model.OrderedItem) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bulkCalls++
	if b.bulkErr != nil {
		return b.bulkErr
	}
	for _, it := range items {
		b.rows[it.ID] = it.Position
	}
	return nil
}

type recordedNotice struct {
	Kind    NotifyKind
	Message string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []recordedNotice
}

func (n *recordingNotifier) Notify(_ context.Context, kind NotifyKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, recordedNotice{Kind: kind, Message: message})
}

type recordingObserver struct {
	calls []observed
}

type observed struct {
	bulk            bool
	written, failed int
}

func (o *recordingObserver) ObserveCommit(_ model.ListRef, bulk bool, written, failed int, _ float64) {
	o.calls = append(o.calls, observed{bulk: bulk, written: written, failed: failed})
}

var testList = model.ListRef{Name: "test", Table: "things", IDColumn: "id", PositionColumn: "pos"}
