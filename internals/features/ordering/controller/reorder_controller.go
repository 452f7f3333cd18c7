package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"university_backend/internals/features/ordering/dto"
	"university_backend/internals/features/ordering/model"
	"university_backend/internals/features/ordering/repository"
	"university_backend/internals/features/ordering/service"
	helper "university_backend/internals/helpers"
)

// ListResolver menentukan list mana yang dimaksud request (mis. scope dari path).
type ListResolver func(c *fiber.Ctx) (model.ListRef, error)

// NotifierFactory membuat notifier untuk admin yang sedang melakukan reorder.
type NotifierFactory func(userID uuid.UUID) service.Notifier

type ReorderController struct {
	Repo        *repository.PositionRepository
	Sync        *service.Synchronizer
	Sessions    *service.Sessions
	NotifierFor NotifierFactory
}

func NewReorderController(db *gorm.DB, opts service.SynchronizerOptions, notifierFor NotifierFactory) *ReorderController {
	repo := repository.NewPositionRepository(db)
	return &ReorderController{
		Repo:        repo,
		Sync:        service.NewSynchronizer(repo, opts),
		Sessions:    service.NewSessions(0),
		NotifierFor: notifierFor,
	}
}

type sessionFn func(c *fiber.Ctx, a *service.ListAdapter) error

// withSession: resolve list + user, kunci session (user, list), sinkron dengan server.
func (rc *ReorderController) withSession(resolve ListResolver, fn sessionFn) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := resolve(c)
		if err != nil {
			return err
		}
		userID, err := helper.GetUserUUID(c)
		if err != nil {
			return err
		}

		key := fmt.Sprintf("%s:%s:%v", userID, list.Key(), list.Scope)
		adapter, _, release := rc.Sessions.Acquire(key, func() *service.ListAdapter {
			return service.NewListAdapter(list, rc.Repo, rc.Sync, nil)
		})
		defer release()

		if rc.NotifierFor != nil {
			adapter.SetNotifier(rc.NotifierFor(userID))
		}
		if err := adapter.Resync(c.UserContext()); err != nil {
			log.Printf("[REORDER] load %s: %v", list.Key(), err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load list")
		}
		return fn(c, adapter)
	}
}

// Show: urutan saat ini + status undo/redo.
func (rc *ReorderController) Show(resolve ListResolver) fiber.Handler {
	return rc.withSession(resolve, func(c *fiber.Ctx, a *service.ListAdapter) error {
		return helper.JsonOK(c, "ok", dto.ToOrderStateDTO(a.Store(), nil, nil))
	})
}

// Reorder: PATCH {item_id?, from_index, to_index}.
func (rc *ReorderController) Reorder(resolve ListResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.ReorderRequest
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := helper.Validate.Struct(&req); err != nil {
			if fields, ok := helper.ValidationErrors(err); ok {
				return helper.JsonValidationError(c, fields)
			}
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}

		return rc.withSession(resolve, func(c *fiber.Ctx, a *service.ListAdapter) error {
			from, to := *req.FromIndex, *req.ToIndex
			if err := service.CheckIndices(a.Store().Len(), from, to); err != nil {
				return helper.JsonValidationError(c, map[string][]string{"index": {err.Error()}})
			}
			if req.ItemID != "" && a.Current()[from].ID != req.ItemID {
				return helper.JsonErrorWithData(c, fiber.StatusConflict, service.ErrStaleView.Error(),
					dto.ToOrderStateDTO(a.Store(), nil, nil))
			}

			res, err := a.DragEnd(c.UserContext(), from, to)
			return rc.respond(c, a, res, err)
		})(c)
	}
}

func (rc *ReorderController) Undo(resolve ListResolver) fiber.Handler {
	return rc.withSession(resolve, func(c *fiber.Ctx, a *service.ListAdapter) error {
		res, ok, err := a.Undo(c.UserContext())
		if !ok && err == nil {
			return helper.JsonError(c, fiber.StatusConflict, "Nothing to undo")
		}
		return rc.respond(c, a, res, err)
	})
}

func (rc *ReorderController) Redo(resolve ListResolver) fiber.Handler {
	return rc.withSession(resolve, func(c *fiber.Ctx, a *service.ListAdapter) error {
		res, ok, err := a.Redo(c.UserContext())
		if !ok && err == nil {
			return helper.JsonError(c, fiber.StatusConflict, "Nothing to redo")
		}
		return rc.respond(c, a, res, err)
	})
}

func (rc *ReorderController) respond(c *fiber.Ctx, a *service.ListAdapter, res service.ReorderResult, err error) error {
	if err == nil {
		msg := service.MsgOrderSaved
		if res.NoOp() {
			msg = "Order unchanged"
		}
		return helper.JsonUpdated(c, msg, dto.ToOrderStateDTO(a.Store(), res.Changed, nil))
	}

	var perr *service.PersistError
	if errors.As(err, &perr) {
		return helper.JsonErrorWithData(c, fiber.StatusConflict, service.MsgOrderSaveFailed,
			dto.ToOrderStateDTO(a.Store(), res.Changed, perr))
	}
	log.Printf("[REORDER] list=%s: %v", a.List.Key(), err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save order")
}
