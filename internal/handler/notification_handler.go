package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bugtrail/internal/domain"
	"bugtrail/internal/middleware"
	"bugtrail/internal/service/notification"
	"bugtrail/internal/service/preference"
)

type NotificationHandler struct {
	notifService notification.Service
	prefService  preference.Service
}

func NewNotificationHandler(notifService notification.Service, prefService preference.Service) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
		prefService:  prefService,
	}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	params := domain.DefaultPagination()
	if limit, err := strconv.Atoi(c.Query("limit", "")); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset", "")); err == nil {
		params.Offset = offset
	}

	result, err := h.notifService.List(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.MarkAsRead(c.Context(), notifID, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.Delete(c.Context(), notifID, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) GetPreferences(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	prefs := h.prefService.UserPreferences(c.Context(), userID)
	return c.Status(fiber.StatusOK).JSON(prefs)
}

func (h *NotificationHandler) UpdatePreferences(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdatePreferenceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if !input.Channel.IsValid() {
		return middleware.BadRequest("Unknown notification channel")
	}

	if ok := h.prefService.SetUserPreference(c.Context(), userID, input.Channel, input.Enabled, nil); !ok {
		return middleware.BadRequest("Preference update failed")
	}

	prefs := h.prefService.UserPreferences(c.Context(), userID)
	return c.Status(fiber.StatusOK).JSON(prefs)
}
