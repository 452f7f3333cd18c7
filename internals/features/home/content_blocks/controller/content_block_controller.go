package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"university_backend/internals/features/home/content_blocks/dto"
	"university_backend/internals/features/home/content_blocks/model"
	orderingModel "university_backend/internals/features/ordering/model"
	orderingRepo "university_backend/internals/features/ordering/repository"
	helper "university_backend/internals/helpers"
)

type ContentBlockController struct {
	DB *gorm.DB
}

func NewContentBlockController(db *gorm.DB) *ContentBlockController {
	return &ContentBlockController{DB: db}
}

// PageListFromPath: resolver list untuk /pages/:page/...
func PageListFromPath(c *fiber.Ctx) (orderingModel.ListRef, error) {
	page := dto.NormalizePage(c.Params("page"))
	if !helper.IsPageSlug(page) {
		return orderingModel.ListRef{}, fiber.NewError(fiber.StatusBadRequest, "page tidak valid")
	}
	return model.PageList(page), nil
}

func (ctrl *ContentBlockController) Create(c *fiber.Ctx) error {
	var req dto.CreateContentBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		if fields, ok := helper.ValidationErrors(err); ok {
			return helper.JsonValidationError(c, fields)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	block := req.ToModel()
	if errs := dto.ValidateMetadata(block.ContentBlockKind, req.ContentBlockMetadata); len(errs) > 0 {
		return helper.JsonValidationError(c, errs)
	}

	err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		next, err := orderingRepo.NewPositionRepository(tx).ReserveNext(c.UserContext(), model.PageList(block.ContentBlockPage))
		if err != nil {
			return err
		}
		block.ContentBlockOrder = next
		return tx.Create(block).Error
	})
	if err != nil {
		log.Printf("[ERROR] create content block: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create content block")
	}
	return helper.JsonCreated(c, "Content block created", dto.ToContentBlockDTO(*block))
}

// ListByPage (admin): semua blok halaman, termasuk draft.
func (ctrl *ContentBlockController) ListByPage(c *fiber.Ctx) error {
	list, err := PageListFromPath(c)
	if err != nil {
		return err
	}
	return ctrl.listPage(c, list.Scope.(string), false)
}

// ListPublic: ?page=home, hanya yang published.
func (ctrl *ContentBlockController) ListPublic(c *fiber.Ctx) error {
	page := dto.NormalizePage(c.Query("page", "home"))
	if !helper.IsPageSlug(page) {
		return helper.JsonError(c, fiber.StatusBadRequest, "page tidak valid")
	}
	c.Set("Cache-Control", "public, max-age=60")
	return ctrl.listPage(c, page, true)
}

func (ctrl *ContentBlockController) listPage(c *fiber.Ctx, page string, publishedOnly bool) error {
	q := ctrl.DB.WithContext(c.UserContext()).Where("content_block_page = ?", page)
	if publishedOnly {
		q = q.Where("content_block_is_published = ?", true)
	}
	var rows []model.ContentBlockModel
	if err := q.Order("content_block_order ASC").Order("content_block_id ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve content blocks")
	}
	return helper.JsonOK(c, "ok", dto.ToContentBlockDTOs(rows))
}

// ListPages: halaman yang punya blok + jumlahnya.
func (ctrl *ContentBlockController) ListPages(c *fiber.Ctx) error {
	type pageCount struct {
		Page  string `json:"page"`
		Total int64  `json:"total"`
	}
	var rows []pageCount
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.ContentBlockModel{}).
		Select("content_block_page AS page, COUNT(*) AS total").
		Group("content_block_page").
		Order("content_block_page ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve pages")
	}
	return helper.JsonOK(c, "ok", rows)
}

func (ctrl *ContentBlockController) find(c *fiber.Ctx) (*model.ContentBlockModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var block model.ContentBlockModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&block, "content_block_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Content block not found")
		}
		return nil, err
	}
	return &block, nil
}

func (ctrl *ContentBlockController) GetByID(c *fiber.Ctx) error {
	block, err := ctrl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToContentBlockDTO(*block))
}

func (ctrl *ContentBlockController) Update(c *fiber.Ctx) error {
	var req dto.UpdateContentBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		if fields, ok := helper.ValidationErrors(err); ok {
			return helper.JsonValidationError(c, fields)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	block, err := ctrl.find(c)
	if err != nil {
		return err
	}
	req.ApplyTo(block)
	if errs := dto.ValidateMetadata(block.ContentBlockKind, block.ContentBlockMetadata); len(errs) > 0 {
		return helper.JsonValidationError(c, errs)
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(block).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update content block")
	}
	return helper.JsonUpdated(c, "Content block updated", dto.ToContentBlockDTO(*block))
}

// Delete: hard delete; posisi blok lain tidak diubah (celah dibiarkan).
func (ctrl *ContentBlockController) Delete(c *fiber.Ctx) error {
	block, err := ctrl.find(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Delete(block).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete content block")
	}
	return helper.JsonDeleted(c, "Content block deleted", fiber.Map{"content_block_id": block.ContentBlockID})
}
