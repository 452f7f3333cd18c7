package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"university_backend/internals/configs"
	"university_backend/internals/constants"
	paymentService "university_backend/internals/features/finance/payments/service"
	notificationService "university_backend/internals/features/home/notifications/service"
	orderingController "university_backend/internals/features/ordering/controller"
	orderingService "university_backend/internals/features/ordering/service"
	"university_backend/internals/helpers/metrics"
	authMiddleware "university_backend/internals/middlewares/auth"
	routeDetails "university_backend/internals/route/details"
)

var startTime time.Time

// Deps: service bersama yang dipakai lintas fitur.
type Deps struct {
	Notifications *notificationService.NotificationService
	Reorder       *orderingController.ReorderController
	Payments      *paymentService.PaymentService
}

func NewDeps(db *gorm.DB, gateway paymentService.Gateway) Deps {
	notifs := notificationService.NewNotificationService(db)
	reorder := orderingController.NewReorderController(db, orderingService.SynchronizerOptions{
		Concurrency: configs.OrderingWriteConcurrency,
		DisableBulk: !configs.OrderingBulkWrites,
		Observer:    metrics.OrderingObserver{},
	}, notifs.ForUser)

	return Deps{
		Notifications: notifs,
		Reorder:       reorder,
		Payments:      paymentService.NewPaymentService(db, gateway, configs.MidtransServerKey, notifs),
	}
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorStaff("mengakses panel admin"), constants.StaffRoles),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Home routes...")
	routeDetails.HomePublicRoutes(public, db)
	routeDetails.HomePrivateRoutes(private, deps.Notifications)
	routeDetails.HomeAdminRoutes(admin, db, deps.Reorder, deps.Notifications)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinancePublicRoutes(public, deps.Payments)
	routeDetails.FinanceUserRoutes(private, deps.Payments)
	routeDetails.FinanceAdminRoutes(admin, deps.Payments)
}
