package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"university_backend/internals/features/ordering/model"
)

const (
	MsgOrderSaved      = "Order saved"
	MsgOrderSaveFailed = "Failed to save the new order, list reloaded from server"
)

// ListAdapter menghubungkan gesture drag (index sumber → tujuan) dengan store + synchronizer.
type ListAdapter struct {
	List     model.ListRef
	backend  Backend
	sync     *Synchronizer
	store    *Store
	notifier Notifier
}

func NewListAdapter(list model.ListRef, backend Backend, sync *Synchronizer, notifier Notifier) *ListAdapter {
	if notifier == nil {
		notifier = NotifierFunc(func(context.Context, NotifyKind, string) {})
	}
	return &ListAdapter{
		List:     list,
		backend:  backend,
		sync:     sync,
		store:    NewStore(nil),
		notifier: notifier,
	}
}

func (a *ListAdapter) Store() *Store { return a.store }

func (a *ListAdapter) Current() []model.OrderedItem { return a.store.Current() }

// SetNotifier mengganti notifier (session dipakai ulang oleh request berikutnya).
func (a *ListAdapter) SetNotifier(n Notifier) {
	if n != nil {
		a.notifier = n
	}
}

// Load membaca ulang list dari server dan mengganti isi store.
func (a *ListAdapter) Load(ctx context.Context) error {
	items, err := a.backend.ListItems(ctx, a.List)
	if err != nil {
		return fmt.Errorf("load %s: %w", a.List.Key(), err)
	}
	a.store.Refresh(items)
	return nil
}

// Resync seperti Load, tetapi history undo dipertahankan jika server tidak berubah.
func (a *ListAdapter) Resync(ctx context.Context) error {
	items, err := a.backend.ListItems(ctx, a.List)
	if err != nil {
		return fmt.Errorf("load %s: %w", a.List.Key(), err)
	}
	a.store.Sync(items)
	return nil
}

// DragEnd: terapkan reorder di memori lalu commit perubahan ke server.
func (a *ListAdapter) DragEnd(ctx context.Context, source, dest int) (ReorderResult, error) {
	if err := CheckIndices(a.store.Len(), source, dest); err != nil {
		return ReorderResult{}, err
	}
	res := a.store.ApplyReorder(source, dest)
	if res.NoOp() {
		return res, nil
	}
	return res, a.commit(ctx, res)
}

func (a *ListAdapter) Undo(ctx context.Context) (ReorderResult, bool, error) {
	res, ok := a.store.Undo()
	if !ok || res.NoOp() {
		return res, ok, nil
	}
	return res, true, a.commit(ctx, res)
}

func (a *ListAdapter) Redo(ctx context.Context) (ReorderResult, bool, error) {
	res, ok := a.store.Redo()
	if !ok || res.NoOp() {
		return res, ok, nil
	}
	return res, true, a.commit(ctx, res)
}

func (a *ListAdapter) commit(ctx context.Context, res ReorderResult) error {
	err := a.sync.Commit(ctx, a.List, res.Changed)
	if err == nil {
		a.store.MarkCommitted()
		a.notifier.Notify(ctx, NotifySuccess, MsgOrderSaved)
		return nil
	}

	var perr *PersistError
	if !errors.As(err, &perr) {
		a.store.MarkFailed(err)
		a.notifier.Notify(ctx, NotifyError, MsgOrderSaveFailed)
		return err
	}

	server, lerr := a.backend.ListItems(ctx, a.List)
	if lerr != nil {
		log.Printf("[REORDER] list=%s reload after failed commit: %v", a.List.Key(), lerr)
		a.store.MarkFailed(errors.Join(err, lerr))
		a.notifier.Notify(ctx, NotifyError, MsgOrderSaveFailed)
		return errors.Join(err, lerr)
	}
	a.store.Reconcile(server, err)
	a.notifier.Notify(ctx, NotifyError, MsgOrderSaveFailed)
	return err
}
