package seeds

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	contentBlockModel "university_backend/internals/features/home/content_blocks/model"
	quickServiceModel "university_backend/internals/features/home/quick_services/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&quickServiceModel.QuickServiceModel{}, &contentBlockModel.ContentBlockModel{}))
	return db
}

func TestRunFileAppendsInFileOrder(t *testing.T) {
	db := setupDB(t)

	res, err := RunFile(context.Background(), db, "data/home.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, res.QuickServices)
	assert.Equal(t, 6, res.ContentBlocks)

	var titles []string
	require.NoError(t, db.Model(&quickServiceModel.QuickServiceModel{}).
		Order("quick_service_display_order").Pluck("quick_service_title", &titles).Error)
	assert.Equal(t, []string{"KRS Online", "Jadwal Kuliah", "Perpustakaan Digital", "Pembayaran UKT"}, titles)

	var orders []int
	require.NoError(t, db.Model(&contentBlockModel.ContentBlockModel{}).
		Where("content_block_page = ?", "admissions").
		Order("content_block_order").Pluck("content_block_order", &orders).Error)
	assert.Equal(t, []int{1, 2}, orders)

	// jalan kedua: semua dilewati
	res, err = RunFile(context.Background(), db, "data/home.yaml")
	require.NoError(t, err)
	assert.Zero(t, res.QuickServices)
	assert.Zero(t, res.ContentBlocks)
	assert.Equal(t, 10, res.Skipped)
}

func TestRunRejectsInvalidMetadata(t *testing.T) {
	db := setupDB(t)
	f, err := Parse([]byte(`
content_blocks:
  - page: home
    kind: image
    title: no source
`))
	require.NoError(t, err)

	_, err = Run(context.Background(), db, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content_blocks[0]")
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("quick_services: [oops"))
	assert.Error(t, err)
}
