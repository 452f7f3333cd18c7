package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"university_backend/internals/constants"
	"university_backend/internals/features/home/quick_services/controller"
	"university_backend/internals/features/home/quick_services/model"
	orderingController "university_backend/internals/features/ordering/controller"
	orderingModel "university_backend/internals/features/ordering/model"
	authMiddleware "university_backend/internals/middlewares/auth"
)

func quickServiceList(*fiber.Ctx) (orderingModel.ListRef, error) {
	return model.QuickServiceList(), nil
}

// CRUD + reorder quick services (admin)
func QuickServiceAdminRoutes(api fiber.Router, db *gorm.DB, reorder *orderingController.ReorderController) {
	ctrl := controller.NewQuickServiceController(db)

	g := api.Group("/quick-services",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("mengelola quick services"), constants.AdminAndAbove),
	)
	g.Post("/", ctrl.Create)
	g.Get("/", ctrl.List)

	g.Get("/order", reorder.Show(quickServiceList))
	g.Patch("/reorder", reorder.Reorder(quickServiceList))
	g.Post("/reorder/undo", reorder.Undo(quickServiceList))
	g.Post("/reorder/redo", reorder.Redo(quickServiceList))

	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
