package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"university_backend/internals/constants"
	"university_backend/internals/features/home/content_blocks/controller"
	orderingController "university_backend/internals/features/ordering/controller"
	authMiddleware "university_backend/internals/middlewares/auth"
)

func ContentBlockAdminRoutes(api fiber.Router, db *gorm.DB, reorder *orderingController.ReorderController) {
	ctrl := controller.NewContentBlockController(db)

	g := api.Group("/content-blocks",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorStaff("mengelola konten halaman"), constants.StaffRoles),
	)
	g.Post("/", ctrl.Create)
	g.Get("/pages", ctrl.ListPages)

	page := g.Group("/pages/:page")
	page.Get("/", ctrl.ListByPage)
	page.Get("/order", reorder.Show(controller.PageListFromPath))
	page.Patch("/reorder", reorder.Reorder(controller.PageListFromPath))
	page.Post("/reorder/undo", reorder.Undo(controller.PageListFromPath))
	page.Post("/reorder/redo", reorder.Redo(controller.PageListFromPath))

	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
