package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"university_backend/internals/features/home/notifications/dto"
	"university_backend/internals/features/home/notifications/model"
	"university_backend/internals/features/home/notifications/service"
	helper "university_backend/internals/helpers"
)

type NotificationController struct {
	Svc *service.NotificationService
}

func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{Svc: svc}
}

// POST /api/a/notifications (admin broadcast / kirim ke user)
func (ctrl *NotificationController) Create(c *fiber.Ctx) error {
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		if fields, ok := helper.ValidationErrors(err); ok {
			return helper.JsonValidationError(c, fields)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	n := req.ToModel()
	if err := ctrl.Svc.Create(c.UserContext(), n); err != nil {
		log.Printf("[ERROR] create notification: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create notification")
	}
	return helper.JsonCreated(c, "Notification created", dto.ToNotificationDTO(*n, nil))
}

// GET /api/a/notifications
func (ctrl *NotificationController) ListAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Svc.ListAll(c.UserContext(), service.ListFilter{
		Kind:   c.Query("kind"),
		Offset: p.Offset,
		Limit:  p.Limit,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve notifications")
	}

	out := make([]dto.NotificationDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToNotificationDTO(r, nil))
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "ok", out, &pg)
}

// GET /api/u/notifications?unread=true&kind=error
func (ctrl *NotificationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	kind := c.Query("kind")
	if kind != "" && !model.NotificationKind(kind).Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "kind harus success, error, atau info")
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Svc.ListForUser(c.UserContext(), userID, service.ListFilter{
		UnreadOnly: c.QueryBool("unread"),
		Kind:       kind,
		Offset:     p.Offset,
		Limit:      p.Limit,
	})
	if err != nil {
		log.Printf("[ERROR] list notifications user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve notifications")
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "ok", rows, &pg)
}

// GET /api/u/notifications/unread-count
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	n, err := ctrl.Svc.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"unread": n})
}

// PATCH /api/u/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := ctrl.Svc.MarkRead(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
		}
		log.Printf("[ERROR] mark read %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark notification")
	}
	return helper.JsonUpdated(c, "Notification marked as read", fiber.Map{"notification_id": id})
}
