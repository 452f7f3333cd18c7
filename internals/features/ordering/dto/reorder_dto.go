package dto

import (
	"university_backend/internals/features/ordering/model"
	"university_backend/internals/features/ordering/service"
)

// ReorderRequest: gesture drag dari client. item_id opsional untuk deteksi view basi.
type ReorderRequest struct {
	ItemID    string `json:"item_id" validate:"omitempty,uuid"`
	FromIndex *int   `json:"from_index" validate:"required,min=0"`
	ToIndex   *int   `json:"to_index" validate:"required,min=0"`
}

type OrderedItemDTO struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Label    string `json:"label,omitempty"`
}

type OrderStateDTO struct {
	Phase     string           `json:"phase"`
	Items     []OrderedItemDTO `json:"items"`
	Changed   []OrderedItemDTO `json:"changed"`
	FailedIDs []string         `json:"failed_ids,omitempty"`
	CanUndo   bool             `json:"can_undo"`
	CanRedo   bool             `json:"can_redo"`
}

func ToOrderedItemDTOs(items []model.OrderedItem) []OrderedItemDTO {
	out := make([]OrderedItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, OrderedItemDTO{ID: it.ID, Position: it.Position, Label: it.Payload.String("label")})
	}
	return out
}

func ToOrderStateDTO(store *service.Store, changed []model.OrderedItem, perr *service.PersistError) OrderStateDTO {
	out := OrderStateDTO{
		Phase:   string(store.Phase()),
		Items:   ToOrderedItemDTOs(store.Current()),
		Changed: ToOrderedItemDTOs(changed),
		CanUndo: store.CanUndo(),
		CanRedo: store.CanRedo(),
	}
	if perr != nil {
		out.FailedIDs = perr.Failed
	}
	return out
}
