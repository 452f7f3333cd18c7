package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	orderingModel "university_backend/internals/features/ordering/model"
	"university_backend/internals/features/home/quick_services/model"
)

// Key metadata yang dikenali:
//   badge           string, label kecil di pojok kartu ("Baru")
//   color           string, warna aksen #RRGGBB
//   open_in_new_tab bool
const (
	MetaBadge        = "badge"
	MetaColor        = "color"
	MetaOpenInNewTab = "open_in_new_tab"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type CreateQuickServiceRequest struct {
	QuickServiceTitle       string         `json:"quick_service_title" validate:"required,min=2,max=120"`
	QuickServiceDescription string         `json:"quick_service_description" validate:"omitempty,max=1000"`
	QuickServiceIcon        string         `json:"quick_service_icon" validate:"omitempty,max=60"`
	QuickServiceURL         string         `json:"quick_service_url" validate:"required,max=2048"`
	QuickServiceIsActive    *bool          `json:"quick_service_is_active"`
	QuickServiceMetadata    map[string]any `json:"quick_service_metadata"`
}

type UpdateQuickServiceRequest struct {
	QuickServiceTitle       *string        `json:"quick_service_title" validate:"omitempty,min=2,max=120"`
	QuickServiceDescription *string        `json:"quick_service_description" validate:"omitempty,max=1000"`
	QuickServiceIcon        *string        `json:"quick_service_icon" validate:"omitempty,max=60"`
	QuickServiceURL         *string        `json:"quick_service_url" validate:"omitempty,max=2048"`
	QuickServiceIsActive    *bool          `json:"quick_service_is_active"`
	QuickServiceMetadata    map[string]any `json:"quick_service_metadata"`
}

type QuickServiceDTO struct {
	QuickServiceID           uuid.UUID      `json:"quick_service_id"`
	QuickServiceTitle        string         `json:"quick_service_title"`
	QuickServiceDescription  string         `json:"quick_service_description"`
	QuickServiceIcon         string         `json:"quick_service_icon"`
	QuickServiceURL          string         `json:"quick_service_url"`
	QuickServiceIsActive     bool           `json:"quick_service_is_active"`
	QuickServiceDisplayOrder int            `json:"quick_service_display_order"`
	QuickServiceMetadata     map[string]any `json:"quick_service_metadata"`
	QuickServiceCreatedAt    time.Time      `json:"quick_service_created_at"`
	QuickServiceUpdatedAt    time.Time      `json:"quick_service_updated_at"`
}

// ValidateMetadata mengembalikan error per key (kosong = valid). Key lain dibiarkan.
func ValidateMetadata(meta map[string]any) map[string][]string {
	errs := map[string][]string{}
	m := orderingModel.Metadata(meta)
	if m.Has(MetaColor) {
		if !hexColor.MatchString(m.String(MetaColor)) {
			errs["quick_service_metadata.color"] = append(errs["quick_service_metadata.color"], "color must be #RRGGBB")
		}
	}
	if m.Has(MetaOpenInNewTab) {
		if _, ok := meta[MetaOpenInNewTab].(bool); !ok {
			errs["quick_service_metadata.open_in_new_tab"] = append(errs["quick_service_metadata.open_in_new_tab"], "open_in_new_tab must be a boolean")
		}
	}
	if m.Has(MetaBadge) && len(m.String(MetaBadge)) > 20 {
		errs["quick_service_metadata.badge"] = append(errs["quick_service_metadata.badge"], "badge must be at most 20 characters")
	}
	return errs
}

func (r CreateQuickServiceRequest) ToModel() *model.QuickServiceModel {
	active := true
	if r.QuickServiceIsActive != nil {
		active = *r.QuickServiceIsActive
	}
	return &model.QuickServiceModel{
		QuickServiceTitle:       strings.TrimSpace(r.QuickServiceTitle),
		QuickServiceDescription: strings.TrimSpace(r.QuickServiceDescription),
		QuickServiceIcon:        strings.TrimSpace(r.QuickServiceIcon),
		QuickServiceURL:         strings.TrimSpace(r.QuickServiceURL),
		QuickServiceIsActive:    active,
		QuickServiceMetadata:    datatypes.JSONMap(r.QuickServiceMetadata),
	}
}

// ApplyTo menerapkan patch ke model. Posisi tidak bisa diubah lewat update (pakai reorder).
func (r UpdateQuickServiceRequest) ApplyTo(m *model.QuickServiceModel) {
	if r.QuickServiceTitle != nil {
		m.QuickServiceTitle = strings.TrimSpace(*r.QuickServiceTitle)
	}
	if r.QuickServiceDescription != nil {
		m.QuickServiceDescription = strings.TrimSpace(*r.QuickServiceDescription)
	}
	if r.QuickServiceIcon != nil {
		m.QuickServiceIcon = strings.TrimSpace(*r.QuickServiceIcon)
	}
	if r.QuickServiceURL != nil {
		m.QuickServiceURL = strings.TrimSpace(*r.QuickServiceURL)
	}
	if r.QuickServiceIsActive != nil {
		m.QuickServiceIsActive = *r.QuickServiceIsActive
	}
	if r.QuickServiceMetadata != nil {
		m.QuickServiceMetadata = datatypes.JSONMap(r.QuickServiceMetadata)
	}
}

func ToQuickServiceDTO(m model.QuickServiceModel) QuickServiceDTO {
	meta := map[string]any(m.QuickServiceMetadata)
	if meta == nil {
		meta = map[string]any{}
	}
	return QuickServiceDTO{
		QuickServiceID:           m.QuickServiceID,
		QuickServiceTitle:        m.QuickServiceTitle,
		QuickServiceDescription:  m.QuickServiceDescription,
		QuickServiceIcon:         m.QuickServiceIcon,
		QuickServiceURL:          m.QuickServiceURL,
		QuickServiceIsActive:     m.QuickServiceIsActive,
		QuickServiceDisplayOrder: m.QuickServiceDisplayOrder,
		QuickServiceMetadata:     meta,
		QuickServiceCreatedAt:    m.QuickServiceCreatedAt,
		QuickServiceUpdatedAt:    m.QuickServiceUpdatedAt,
	}
}

func ToQuickServiceDTOs(list []model.QuickServiceModel) []QuickServiceDTO {
	out := make([]QuickServiceDTO, 0, len(list))
	for _, m := range list {
		out = append(out, ToQuickServiceDTO(m))
	}
	return out
}
