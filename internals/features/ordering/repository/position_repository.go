package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"university_backend/internals/features/ordering/model"
)

var ErrNotFound = errors.New("ordering: item not found")

// PositionRepository: Backend + BulkUpdater di atas GORM.
type PositionRepository struct {
	DB *gorm.DB
}

func NewPositionRepository(db *gorm.DB) *PositionRepository {
	return &PositionRepository{DB: db}
}

type positionRow struct {
	ID       string
	Position int
	Label    *string
}

func (r *PositionRepository) scoped(ctx context.Context, list model.ListRef) *gorm.DB {
	q := r.DB.WithContext(ctx).Table(list.Table)
	if list.Scoped() {
		q = q.Where(fmt.Sprintf("%s = ?", list.ScopeColumn), list.Scope)
	}
	if list.SoftDeleteColumn != "" {
		q = q.Where(fmt.Sprintf("%s IS NULL", list.SoftDeleteColumn))
	}
	return q
}

// ListItems membaca id + posisi (+label) terurut position ASC, id ASC sebagai tie-breaker.
func (r *PositionRepository) ListItems(ctx context.Context, list model.ListRef) ([]model.OrderedItem, error) {
	cols := fmt.Sprintf("CAST(%s AS TEXT) AS id, %s AS position", list.IDColumn, list.PositionColumn)
	if list.LabelColumn != "" {
		cols += fmt.Sprintf(", %s AS label", list.LabelColumn)
	}

	var rows []positionRow
	if err := r.scoped(ctx, list).
		Select(cols).
		Order(fmt.Sprintf("%s ASC, %s ASC", list.PositionColumn, list.IDColumn)).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]model.OrderedItem, 0, len(rows))
	for _, row := range rows {
		it := model.OrderedItem{ID: row.ID, Position: row.Position}
		if row.Label != nil {
			it.Payload = model.Metadata{"label": *row.Label}
		}
		out = append(out, it)
	}
	return out, nil
}

// UpdatePosition menulis satu posisi. Baris tidak ditemukan → ErrNotFound.
func (r *PositionRepository) UpdatePosition(ctx context.Context, list model.ListRef, id string, position int) error {
	values := map[string]any{list.PositionColumn: position}
	if list.TouchColumn != "" {
		values[list.TouchColumn] = time.Now()
	}
	res := r.scoped(ctx, list).
		Where(fmt.Sprintf("%s = ?", list.IDColumn), id).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// UpdatePositions: satu statement UPDATE ... SET pos = CASE id WHEN .. THEN .. END.
// Semua atau tidak sama sekali: kalau ada baris yang hilang, transaksi di-rollback.
func (r *PositionRepository) UpdatePositions(ctx context.Context, list model.ListRef, items []model.OrderedItem) error {
	if len(items) == 0 {
		return nil
	}
	query, args, err := BuildBulkPositionUpdate(list, items, time.Now())
	if err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(query, args...)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(items)) {
			return fmt.Errorf("%w: updated %d of %d rows", ErrNotFound, res.RowsAffected, len(items))
		}
		return nil
	})
}

// BuildBulkPositionUpdate menghasilkan SQL dengan placeholder "?" (GORM yang menerjemahkan ke dialek).
func BuildBulkPositionUpdate(list model.ListRef, items []model.OrderedItem, now time.Time) (string, []any, error) {
	ids := make([]string, 0, len(items))
	cases := sq.Case(list.IDColumn)
	for _, it := range items {
		ids = append(ids, it.ID)
		cases = cases.When(sq.Expr("?", it.ID), sq.Expr("CAST(? AS INTEGER)", it.Position))
	}

	ub := sq.Update(list.Table).
		PlaceholderFormat(sq.Question).
		Set(list.PositionColumn, cases).
		Where(sq.Eq{list.IDColumn: ids})
	if list.TouchColumn != "" {
		ub = ub.Set(list.TouchColumn, now)
	}
	if list.Scoped() {
		ub = ub.Where(sq.Eq{list.ScopeColumn: list.Scope})
	}
	if list.SoftDeleteColumn != "" {
		ub = ub.Where(sq.Eq{list.SoftDeleteColumn: nil})
	}
	return ub.ToSql()
}

// LockKey: satu kunci per tabel + scope.
func LockKey(list model.ListRef) string {
	if list.Scoped() {
		return fmt.Sprintf("%s:%v", list.Table, list.Scope)
	}
	return list.Table
}

// ReserveNext dipanggil di dalam transaksi sebelum insert. Di Postgres append ke list
// yang sama diserialkan dengan advisory lock sampai commit; SQLite sudah menyerialkan writer.
func (r *PositionRepository) ReserveNext(ctx context.Context, list model.ListRef) (int, error) {
	if r.DB.Dialector.Name() == "postgres" {
		if err := r.DB.WithContext(ctx).
			Exec("SELECT pg_advisory_xact_lock(hashtext(?))", LockKey(list)).Error; err != nil {
			return 0, fmt.Errorf("lock %s: %w", LockKey(list), err)
		}
	}
	return r.NextPosition(ctx, list)
}

// NextPosition = COALESCE(MAX(pos),0)+1 dalam scope list; baris soft-deleted tidak dihitung.
func (r *PositionRepository) NextPosition(ctx context.Context, list model.ListRef) (int, error) {
	var maxPos int
	if err := r.scoped(ctx, list).
		Select(fmt.Sprintf("COALESCE(MAX(%s), 0)", list.PositionColumn)).
		Scan(&maxPos).Error; err != nil {
		return 0, err
	}
	return maxPos + 1, nil
}
