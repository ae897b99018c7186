package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bugtrail/internal/domain"
	"bugtrail/internal/middleware"
	"bugtrail/internal/service/bug"
)

type BugHandler struct {
	bugService bug.Service
}

func NewBugHandler(bugService bug.Service) *BugHandler {
	return &BugHandler{bugService: bugService}
}

func (h *BugHandler) Create(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.CreateBugInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.bugService.Create(c.Context(), input, actor)
	if err != nil {
		if errors.Is(err, bug.ErrTitleRequired) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *BugHandler) Get(c *fiber.Ctx) error {
	bugID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid bug ID")
	}

	found, err := h.bugService.GetByID(c.Context(), bugID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *BugHandler) Assign(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	bugID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid bug ID")
	}

	var input domain.AssignBugInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.AssigneeID == uuid.Nil {
		return middleware.BadRequest("Assignee ID is required")
	}

	updated, err := h.bugService.Assign(c.Context(), bugID, input, actor)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *BugHandler) UpdateStatus(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	bugID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid bug ID")
	}

	var input domain.UpdateBugStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.bugService.UpdateStatus(c.Context(), bugID, input, actor)
	if err != nil {
		if errors.Is(err, bug.ErrInvalidStatus) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *BugHandler) Resolve(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	bugID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid bug ID")
	}

	var input domain.ResolveBugInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.bugService.Resolve(c.Context(), bugID, input, actor)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *BugHandler) Close(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	bugID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid bug ID")
	}

	var input domain.CloseBugInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.bugService.Close(c.Context(), bugID, input, actor)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}
