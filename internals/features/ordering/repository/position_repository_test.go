package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"university_backend/internals/features/ordering/model"
	"university_backend/internals/features/ordering/service"
)

type widget struct {
	WidgetID        string     `gorm:"column:widget_id;primaryKey"`
	WidgetGroup     string     `gorm:"column:widget_group"`
	WidgetTitle     string     `gorm:"column:widget_title"`
	WidgetOrder     int        `gorm:"column:widget_order"`
	WidgetUpdatedAt time.Time  `gorm:"column:widget_updated_at"`
	WidgetDeletedAt *time.Time `gorm:"column:widget_deleted_at"`
}

func (widget) TableName() string { return "widgets" }

var widgetList = model.ListRef{
	Name:             "widgets",
	Table:            "widgets",
	IDColumn:         "widget_id",
	PositionColumn:   "widget_order",
	ScopeColumn:      "widget_group",
	Scope:            "home",
	SoftDeleteColumn: "widget_deleted_at",
	LabelColumn:      "widget_title",
	TouchColumn:      "widget_updated_at",
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

// seed membuat widget berurutan; id dikembalikan sesuai urutan judul.
func seed(t *testing.T, db *gorm.DB, group string, titles ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(titles))
	for i, title := range titles {
		w := widget{WidgetID: uuid.NewString(), WidgetGroup: group, WidgetTitle: title, WidgetOrder: i + 1}
		require.NoError(t, db.Create(&w).Error)
		ids = append(ids, w.WidgetID)
	}
	return ids
}

func labels(list []model.OrderedItem) []string {
	out := make([]string, 0, len(list))
	for _, it := range list {
		out = append(out, it.Payload.String("label"))
	}
	return out
}

func TestListItems_ScopedOrderedAndSkipsDeleted(t *testing.T) {
	db := setupDB(t)
	repo := NewPositionRepository(db)
	ids := seed(t, db, "home", "A", "B", "C")
	seed(t, db, "about", "X")

	now := time.Now()
	require.NoError(t, db.Model(&widget{}).Where("widget_id = ?", ids[1]).Update("widget_deleted_at", &now).Error)

	got, err := repo.ListItems(context.Background(), widgetList)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C"}, labels(got))
	assert.Equal(t, []int{1, 3}, []int{got[0].Position, got[1].Position})
	assert.Equal(t, ids[0], got[0].ID)
}

func TestUpdatePosition(t *testing.T) {
	db := setupDB(t)
	repo := NewPositionRepository(db)
	ids := seed(t, db, "home", "A", "B")

	require.NoError(t, repo.UpdatePosition(context.Background(), widgetList, ids[0], 5))

	var w widget
	require.NoError(t, db.First(&w, "widget_id = ?", ids[0]).Error)
	assert.Equal(t, 5, w.WidgetOrder)
	assert.False(t, w.WidgetUpdatedAt.IsZero())

	err := repo.UpdatePosition(context.Background(), widgetList, uuid.NewString(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePosition_OtherScopeIsNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewPositionRepository(db)
	other := seed(t, db, "about", "X")

	err := repo.UpdatePosition(context.Background(), widgetList, other[0], 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePositions_Bulk(t *testing.T) {
	db := setupDB(t)
	repo := NewPositionRepository(db)
	seed(t, db, "home", "A", "B", "C", "D")

	before, err := repo.ListItems(context.Background(), widgetList)
	require.NoError(t, err)
	res := service.Reorder(before, 0, 2)

	require.NoError(t, repo.UpdatePositions(context.Background(), widgetList, res.Changed))

	after, err := repo.ListItems(context.Background(), widgetList)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A", "D"}, labels(after))
	for i, it := range after {
		assert.Equal(t, i+1, it.Position)
	}
}

func TestUpdatePositions_MissingRowFails(t *testing.T) {
	db := setupDB(t)
	repo := NewPositionRepository(db)
	ids := seed(t, db, "home", "A")

	err := repo.UpdatePositions(context.Background(), widgetList, []model.OrderedItem{
		{ID: ids[0], Position: 2},
		{ID: uuid.NewString(), Position: 1},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePositions_MissingRowRollsBack(t *testing.T) {
	db := setupDB(t)
	repo := NewPositionRepository(db)
	ids := seed(t, db, "home", "A", "B", "C")

	err := repo.UpdatePositions(context.Background(), widgetList, []model.OrderedItem{
		{ID: ids[0], Position: 3},
		{ID: ids[2], Position: 1},
		{ID: uuid.NewString(), Position: 2},
	})
	require.ErrorIs(t, err, ErrNotFound)

	after, err := repo.ListItems(context.Background(), widgetList)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, labels(after))
	for i, it := range after {
		assert.Equal(t, i+1, it.Position)
	}
}

// Item dihapus admin lain setelah list dimuat: batch gagal utuh, tidak ada
// baris yang tertulis, dan list di-reload dari server.
func TestSynchronizerWithRepository_DeletedRowFailsWholeBatch(t *testing.T) {
	db := setupDB(t)
	repo := NewPositionRepository(db)
	ids := seed(t, db, "home", "A", "B", "C", "D")

	a := service.NewListAdapter(widgetList, repo, service.NewSynchronizer(repo, service.SynchronizerOptions{}), nil)
	require.NoError(t, a.Load(context.Background()))

	now := time.Now()
	require.NoError(t, db.Model(&widget{}).Where("widget_id = ?", ids[2]).Update("widget_deleted_at", &now).Error)

	_, err := a.DragEnd(context.Background(), 0, 3)
	var perr *service.PersistError
	require.ErrorAs(t, err, &perr)
	assert.ElementsMatch(t, []string{ids[0], ids[1], ids[2], ids[3]}, perr.Failed)

	after, err := repo.ListItems(context.Background(), widgetList)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, labels(after))
	assert.Equal(t, []int{1, 2, 4}, []int{after[0].Position, after[1].Position, after[2].Position})
	assert.Equal(t, []string{"A", "B", "D"}, labels(a.Current()))
}

func TestBuildBulkPositionUpdate(t *testing.T) {
	sql, args, err := BuildBulkPositionUpdate(widgetList, []model.OrderedItem{{ID: "a", Position: 2}, {ID: "b", Position: 1}}, time.Unix(0, 0))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sql, "UPDATE widgets SET widget_order = CASE widget_id WHEN ? THEN CAST(? AS INTEGER) WHEN ? THEN CAST(? AS INTEGER) END"), sql)
	assert.Contains(t, sql, "widget_id IN (?,?)")
	assert.Contains(t, sql, "widget_group = ?")
	assert.Contains(t, sql, "widget_deleted_at IS NULL")
	assert.Equal(t, "a", args[0])
	assert.Equal(t, 2, args[1])
}

func TestNextPosition(t *testing.T) {
	db := setupDB(t)
	repo := NewPositionRepository(db)

	next, err := repo.NextPosition(context.Background(), widgetList)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	seed(t, db, "home", "A", "B")
	next, err = repo.NextPosition(context.Background(), widgetList)
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestLockKey(t *testing.T) {
	assert.Equal(t, "widgets:home", LockKey(widgetList))
	global := widgetList
	global.ScopeColumn, global.Scope = "", nil
	assert.Equal(t, "widgets", LockKey(global))
}

func TestReserveNextInsideTransaction(t *testing.T) {
	db := setupDB(t)
	seed(t, db, "home", "A", "B")
	seed(t, db, "about", "X")

	err := db.Transaction(func(tx *gorm.DB) error {
		next, err := NewPositionRepository(tx).ReserveNext(context.Background(), widgetList)
		if err != nil {
			return err
		}
		assert.Equal(t, 3, next)
		return tx.Create(&widget{WidgetID: uuid.NewString(), WidgetGroup: "home", WidgetTitle: "C", WidgetOrder: next}).Error
	})
	require.NoError(t, err)

	next, err := NewPositionRepository(db).ReserveNext(context.Background(), widgetList)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
}

// Synchronizer + repository: commit lewat jalur bulk.
func TestSynchronizerWithRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewPositionRepository(db)
	seed(t, db, "home", "A", "B", "C")

	a := service.NewListAdapter(widgetList, repo, service.NewSynchronizer(repo, service.SynchronizerOptions{}), nil)
	require.NoError(t, a.Load(context.Background()))

	_, err := a.DragEnd(context.Background(), 2, 0)
	require.NoError(t, err)

	after, err := repo.ListItems(context.Background(), widgetList)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, labels(after))
}
