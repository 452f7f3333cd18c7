package service

import (
	"context"

	"university_backend/internals/features/ordering/model"
)

// Backend adalah kolaborator persistence minimal untuk daftar berurutan.
type Backend interface {
	// ListItems mengembalikan item terurut position ASC.
	ListItems(ctx context.Context, list model.ListRef) ([]model.OrderedItem, error)
	UpdatePosition(ctx context.Context, list model.ListRef, id string, position int) error
}

// BulkUpdater opsional: jika backend mendukung, Synchronizer memakai satu panggilan batch.
type BulkUpdater interface {
	UpdatePositions(ctx context.Context, list model.ListRef, items []model.OrderedItem) error
}

// NotifyKind: jenis notifikasi ke pengguna.
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
)

// Notifier di-inject ke ListAdapter, tidak ada notifier global.
type Notifier interface {
	Notify(ctx context.Context, kind NotifyKind, message string)
}

// NotifierFunc adapter fungsi → Notifier.
type NotifierFunc func(ctx context.Context, kind NotifyKind, message string)

func (f NotifierFunc) Notify(ctx context.Context, kind NotifyKind, message string) {
	f(ctx, kind, message)
}

// CommitObserver dipanggil setelah commit selesai (metrics).
type CommitObserver interface {
	ObserveCommit(list model.ListRef, bulk bool, written, failed int, elapsedSeconds float64)
}
