package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"university_backend/internals/features/home/quick_services/dto"
	"university_backend/internals/features/home/quick_services/model"
	orderingRepo "university_backend/internals/features/ordering/repository"
	helper "university_backend/internals/helpers"
)

type QuickServiceController struct {
	DB *gorm.DB
}

func NewQuickServiceController(db *gorm.DB) *QuickServiceController {
	return &QuickServiceController{DB: db}
}

func validationFailed(c *fiber.Ctx, err error) error {
	if fields, ok := helper.ValidationErrors(err); ok {
		return helper.JsonValidationError(c, fields)
	}
	return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
}

// =============================
// ➕ Create (posisi = max+1)
// =============================
func (ctrl *QuickServiceController) Create(c *fiber.Ctx) error {
	var req dto.CreateQuickServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}
	if errs := dto.ValidateMetadata(req.QuickServiceMetadata); len(errs) > 0 {
		return helper.JsonValidationError(c, errs)
	}

	qs := req.ToModel()
	err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		next, err := orderingRepo.NewPositionRepository(tx).ReserveNext(c.UserContext(), model.QuickServiceList())
		if err != nil {
			return err
		}
		qs.QuickServiceDisplayOrder = next
		return tx.Create(qs).Error
	})
	if err != nil {
		log.Printf("[ERROR] create quick service: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create quick service")
	}

	return helper.JsonCreated(c, "Quick service created", dto.ToQuickServiceDTO(*qs))
}

// =============================
// 📄 List admin (semua, terurut)
// =============================
func (ctrl *QuickServiceController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.QuickServiceModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(quick_service_title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	switch c.Query("active") {
	case "true":
		q = q.Where("quick_service_is_active = ?", true)
	case "false":
		q = q.Where("quick_service_is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count quick services")
	}

	var rows []model.QuickServiceModel
	if err := q.Order("quick_service_display_order ASC").
		Order("quick_service_id ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve quick services")
	}

	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "ok", dto.ToQuickServiceDTOs(rows), &pg)
}

// =============================
// 🌐 List publik (aktif saja)
// =============================
func (ctrl *QuickServiceController) ListPublic(c *fiber.Ctx) error {
	var rows []model.QuickServiceModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("quick_service_is_active = ?", true).
		Order("quick_service_display_order ASC").
		Order("quick_service_id ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve quick services")
	}
	c.Set("Cache-Control", "public, max-age=60")
	return helper.JsonOK(c, "ok", dto.ToQuickServiceDTOs(rows))
}

func (ctrl *QuickServiceController) find(c *fiber.Ctx) (*model.QuickServiceModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var qs model.QuickServiceModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&qs, "quick_service_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Quick service not found")
		}
		return nil, err
	}
	return &qs, nil
}

func (ctrl *QuickServiceController) GetByID(c *fiber.Ctx) error {
	qs, err := ctrl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToQuickServiceDTO(*qs))
}

// =============================
// 🔄 Update (tanpa posisi)
// =============================
func (ctrl *QuickServiceController) Update(c *fiber.Ctx) error {
	var req dto.UpdateQuickServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}
	if errs := dto.ValidateMetadata(req.QuickServiceMetadata); len(errs) > 0 {
		return helper.JsonValidationError(c, errs)
	}

	qs, err := ctrl.find(c)
	if err != nil {
		return err
	}
	req.ApplyTo(qs)
	if err := ctrl.DB.WithContext(c.UserContext()).Save(qs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update quick service")
	}
	return helper.JsonUpdated(c, "Quick service updated", dto.ToQuickServiceDTO(*qs))
}

// =============================
// 🗑️ Delete (soft, posisi lain tidak diubah)
// =============================
func (ctrl *QuickServiceController) Delete(c *fiber.Ctx) error {
	qs, err := ctrl.find(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Delete(qs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete quick service")
	}
	return helper.JsonDeleted(c, "Quick service deleted", fiber.Map{"quick_service_id": qs.QuickServiceID})
}
