package service

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"university_backend/internals/features/ordering/model"
)

const defaultWriteConcurrency = 4

type SynchronizerOptions struct {
	Concurrency int  // batas write paralel per commit (<=0 → default)
	DisableBulk bool // paksa jalur per-item walau backend mendukung batch
	Observer    CommitObserver
}

// Synchronizer menulis perubahan posisi ke backend.
type Synchronizer struct {
	backend Backend
	opts    SynchronizerOptions
}

func NewSynchronizer(backend Backend, opts SynchronizerOptions) *Synchronizer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultWriteConcurrency
	}
	return &Synchronizer{backend: backend, opts: opts}
}

// Commit menulis posisi baru tiap item di `changed`.
// Hasil: nil atau *PersistError berisi id yang gagal. Jalur per item tidak di-rollback;
// jalur bulk atomik (gagal → tidak ada yang tertulis).
func (s *Synchronizer) Commit(ctx context.Context, list model.ListRef, changed []model.OrderedItem) error {
	items := dedupeByID(changed)
	if len(items) == 0 {
		return nil
	}

	start := time.Now()
	var (
		perr *PersistError
		bulk bool
	)
	if bu, ok := s.backend.(BulkUpdater); ok && !s.opts.DisableBulk {
		bulk = true
		perr = s.commitBulk(ctx, bu, list, items)
	} else {
		perr = s.commitEach(ctx, list, items)
	}

	failed := 0
	if perr != nil {
		failed = len(perr.Failed)
		log.Printf("[REORDER] list=%s commit failed ids=%v", list.Key(), perr.Failed)
	}
	if s.opts.Observer != nil {
		s.opts.Observer.ObserveCommit(list, bulk, len(items)-failed, failed, time.Since(start).Seconds())
	}
	if perr != nil {
		return perr
	}
	return nil
}

func (s *Synchronizer) commitBulk(ctx context.Context, bu BulkUpdater, list model.ListRef, items []model.OrderedItem) *PersistError {
	err := bu.UpdatePositions(ctx, list, items)
	if err == nil {
		return nil
	}
	// batch gagal → semua dianggap gagal
	perr := &PersistError{Failed: model.IDs(items), Causes: make(map[string]error, len(items))}
	for _, it := range items {
		perr.Causes[it.ID] = err
	}
	return perr
}

func (s *Synchronizer) commitEach(ctx context.Context, list model.ListRef, items []model.OrderedItem) *PersistError {
	var (
		mu     sync.Mutex
		causes = map[string]error{}
	)

	// errgroup tanpa WithContext: satu write gagal tidak membatalkan yang lain
	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for _, it := range items {
		it := it
		g.Go(func() error {
			if err := s.backend.UpdatePosition(ctx, list, it.ID, it.Position); err != nil {
				mu.Lock()
				causes[it.ID] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(causes) == 0 {
		return nil
	}
	// urutan Failed mengikuti urutan changed
	perr := &PersistError{Causes: causes}
	for _, it := range items {
		if _, bad := causes[it.ID]; bad {
			perr.Failed = append(perr.Failed, it.ID)
		}
	}
	return perr
}

// dedupeByID: id sama muncul dua kali → yang terakhir menang, posisi urutan pertama dipertahankan.
func dedupeByID(items []model.OrderedItem) []model.OrderedItem {
	idx := make(map[string]int, len(items))
	out := make([]model.OrderedItem, 0, len(items))
	for _, it := range items {
		if i, ok := idx[it.ID]; ok {
			out[i] = it
			continue
		}
		idx[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}
