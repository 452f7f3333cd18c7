package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"university_backend/internals/features/home/content_blocks/model"
	orderingModel "university_backend/internals/features/ordering/model"
)

type CreateContentBlockRequest struct {
	ContentBlockPage        string         `json:"content_block_page" validate:"required,max=60,page_slug"`
	ContentBlockKind        string         `json:"content_block_kind" validate:"required,oneof=heading paragraph image cta embed"`
	ContentBlockTitle       string         `json:"content_block_title" validate:"omitempty,max=200"`
	ContentBlockBody        string         `json:"content_block_body"`
	ContentBlockMetadata    map[string]any `json:"content_block_metadata"`
	ContentBlockIsPublished bool           `json:"content_block_is_published"`
}

// Page dan kind tidak bisa diubah; pindah halaman = hapus + buat baru.
type UpdateContentBlockRequest struct {
	ContentBlockTitle       *string        `json:"content_block_title" validate:"omitempty,max=200"`
	ContentBlockBody        *string        `json:"content_block_body"`
	ContentBlockMetadata    map[string]any `json:"content_block_metadata"`
	ContentBlockIsPublished *bool          `json:"content_block_is_published"`
}

type ContentBlockDTO struct {
	ContentBlockID          uuid.UUID      `json:"content_block_id"`
	ContentBlockPage        string         `json:"content_block_page"`
	ContentBlockKind        string         `json:"content_block_kind"`
	ContentBlockTitle       string         `json:"content_block_title"`
	ContentBlockBody        string         `json:"content_block_body"`
	ContentBlockMetadata    map[string]any `json:"content_block_metadata"`
	ContentBlockIsPublished bool           `json:"content_block_is_published"`
	ContentBlockOrder       int            `json:"content_block_order"`
	ContentBlockCreatedAt   time.Time      `json:"content_block_created_at"`
	ContentBlockUpdatedAt   time.Time      `json:"content_block_updated_at"`
}

// ValidateMetadata: key wajib sesuai kind.
func ValidateMetadata(kind model.ContentBlockKind, meta map[string]any) map[string][]string {
	errs := map[string][]string{}
	for _, k := range orderingModel.Metadata(meta).MissingKeys(model.RequiredMetadata[kind]...) {
		field := "content_block_metadata." + k
		errs[field] = append(errs[field], k+" is required for "+string(kind)+" blocks")
	}
	return errs
}

func NormalizePage(page string) string {
	return strings.ToLower(strings.TrimSpace(page))
}

func (r CreateContentBlockRequest) ToModel() *model.ContentBlockModel {
	return &model.ContentBlockModel{
		ContentBlockPage:        NormalizePage(r.ContentBlockPage),
		ContentBlockKind:        model.ContentBlockKind(r.ContentBlockKind),
		ContentBlockTitle:       strings.TrimSpace(r.ContentBlockTitle),
		ContentBlockBody:        r.ContentBlockBody,
		ContentBlockMetadata:    datatypes.JSONMap(r.ContentBlockMetadata),
		ContentBlockIsPublished: r.ContentBlockIsPublished,
	}
}

func (r UpdateContentBlockRequest) ApplyTo(m *model.ContentBlockModel) {
	if r.ContentBlockTitle != nil {
		m.ContentBlockTitle = strings.TrimSpace(*r.ContentBlockTitle)
	}
	if r.ContentBlockBody != nil {
		m.ContentBlockBody = *r.ContentBlockBody
	}
	if r.ContentBlockMetadata != nil {
		m.ContentBlockMetadata = datatypes.JSONMap(r.ContentBlockMetadata)
	}
	if r.ContentBlockIsPublished != nil {
		m.ContentBlockIsPublished = *r.ContentBlockIsPublished
	}
}

func ToContentBlockDTO(m model.ContentBlockModel) ContentBlockDTO {
	meta := map[string]any(m.ContentBlockMetadata)
	if meta == nil {
		meta = map[string]any{}
	}
	return ContentBlockDTO{
		ContentBlockID:          m.ContentBlockID,
		ContentBlockPage:        m.ContentBlockPage,
		ContentBlockKind:        string(m.ContentBlockKind),
		ContentBlockTitle:       m.ContentBlockTitle,
		ContentBlockBody:        m.ContentBlockBody,
		ContentBlockMetadata:    meta,
		ContentBlockIsPublished: m.ContentBlockIsPublished,
		ContentBlockOrder:       m.ContentBlockOrder,
		ContentBlockCreatedAt:   m.ContentBlockCreatedAt,
		ContentBlockUpdatedAt:   m.ContentBlockUpdatedAt,
	}
}

func ToContentBlockDTOs(list []model.ContentBlockModel) []ContentBlockDTO {
	out := make([]ContentBlockDTO, 0, len(list))
	for _, m := range list {
		out = append(out, ToContentBlockDTO(m))
	}
	return out
}
