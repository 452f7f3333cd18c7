package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	orderingModel "university_backend/internals/features/ordering/model"
)

type ContentBlockKind string

const (
	BlockHeading   ContentBlockKind = "heading"
	BlockParagraph ContentBlockKind = "paragraph"
	BlockImage     ContentBlockKind = "image"
	BlockCTA       ContentBlockKind = "cta"
	BlockEmbed     ContentBlockKind = "embed"
)

// RequiredMetadata: key metadata wajib per jenis blok.
var RequiredMetadata = map[ContentBlockKind][]string{
	BlockImage: {"src", "alt"},
	BlockCTA:   {"label", "href"},
	BlockEmbed: {"url"},
}

// ContentBlockModel: blok konten halaman publik kampus; urutan per halaman.
type ContentBlockModel struct {
	ContentBlockID          uuid.UUID         `gorm:"column:content_block_id;primaryKey;type:uuid" json:"content_block_id"`
	ContentBlockPage        string            `gorm:"column:content_block_page;type:varchar(60);not null;index:idx_content_blocks_page_order,priority:1" json:"content_block_page"`
	ContentBlockKind        ContentBlockKind  `gorm:"column:content_block_kind;type:varchar(20);not null" json:"content_block_kind"`
	ContentBlockTitle       string            `gorm:"column:content_block_title;type:varchar(200)" json:"content_block_title"`
	ContentBlockBody        string            `gorm:"column:content_block_body;type:text" json:"content_block_body"`
	ContentBlockMetadata    datatypes.JSONMap `gorm:"column:content_block_metadata" json:"content_block_metadata"`
	ContentBlockIsPublished bool              `gorm:"column:content_block_is_published;not null" json:"content_block_is_published"`
	ContentBlockOrder       int               `gorm:"column:content_block_order;not null;index:idx_content_blocks_page_order,priority:2" json:"content_block_order"`
	ContentBlockCreatedAt   time.Time         `gorm:"column:content_block_created_at;autoCreateTime" json:"content_block_created_at"`
	ContentBlockUpdatedAt   time.Time         `gorm:"column:content_block_updated_at;autoUpdateTime" json:"content_block_updated_at"`
}

func (ContentBlockModel) TableName() string {
	return "content_blocks"
}

func (m *ContentBlockModel) BeforeCreate(tx *gorm.DB) error {
	if m.ContentBlockID == uuid.Nil {
		m.ContentBlockID = uuid.New()
	}
	return nil
}

// PageList: daftar blok untuk satu halaman. Delete di sini hard delete.
func PageList(page string) orderingModel.ListRef {
	return orderingModel.ListRef{
		Name:           "content_blocks",
		Table:          "content_blocks",
		IDColumn:       "content_block_id",
		PositionColumn: "content_block_order",
		ScopeColumn:    "content_block_page",
		Scope:          page,
		LabelColumn:    "content_block_title",
		TouchColumn:    "content_block_updated_at",
	}
}
