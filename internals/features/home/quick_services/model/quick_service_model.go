package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	orderingModel "university_backend/internals/features/ordering/model"
)

// QuickServiceModel: shortcut layanan kampus di dashboard (KRS, jadwal, perpustakaan, ...).
type QuickServiceModel struct {
	QuickServiceID           uuid.UUID         `gorm:"column:quick_service_id;primaryKey;type:uuid" json:"quick_service_id"`
	QuickServiceTitle        string            `gorm:"column:quick_service_title;type:varchar(120);not null" json:"quick_service_title"`
	QuickServiceDescription  string            `gorm:"column:quick_service_description;type:text" json:"quick_service_description"`
	QuickServiceIcon         string            `gorm:"column:quick_service_icon;type:varchar(60)" json:"quick_service_icon"`
	QuickServiceURL          string            `gorm:"column:quick_service_url;type:text;not null" json:"quick_service_url"`
	QuickServiceIsActive     bool              `gorm:"column:quick_service_is_active;not null" json:"quick_service_is_active"`
	QuickServiceDisplayOrder int               `gorm:"column:quick_service_display_order;not null;index" json:"quick_service_display_order"`
	QuickServiceMetadata     datatypes.JSONMap `gorm:"column:quick_service_metadata" json:"quick_service_metadata"`
	QuickServiceCreatedAt    time.Time         `gorm:"column:quick_service_created_at;autoCreateTime" json:"quick_service_created_at"`
	QuickServiceUpdatedAt    time.Time         `gorm:"column:quick_service_updated_at;autoUpdateTime" json:"quick_service_updated_at"`
	QuickServiceDeletedAt    gorm.DeletedAt    `gorm:"column:quick_service_deleted_at;index" json:"-"`
}

func (QuickServiceModel) TableName() string {
	return "quick_services"
}

func (m *QuickServiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuickServiceID == uuid.Nil {
		m.QuickServiceID = uuid.New()
	}
	return nil
}

// QuickServiceList: satu daftar global, diurutkan oleh admin.
func QuickServiceList() orderingModel.ListRef {
	return orderingModel.ListRef{
		Name:             "quick_services",
		Table:            "quick_services",
		IDColumn:         "quick_service_id",
		PositionColumn:   "quick_service_display_order",
		SoftDeleteColumn: "quick_service_deleted_at",
		LabelColumn:      "quick_service_title",
		TouchColumn:      "quick_service_updated_at",
	}
}
