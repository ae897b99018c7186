package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bugtrail/internal/domain"
	"bugtrail/internal/middleware"
	"bugtrail/internal/service/preference"
	"bugtrail/internal/service/retention"
)

type AdminHandler struct {
	prefService      preference.Service
	retentionService retention.Service
}

func NewAdminHandler(prefService preference.Service, retentionService retention.Service) *AdminHandler {
	return &AdminHandler{
		prefService:      prefService,
		retentionService: retentionService,
	}
}

type enabledInput struct {
	Enabled bool `json:"enabled"`
}

func (h *AdminHandler) SetServerEnabled(c *fiber.Ctx) error {
	var input enabledInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.prefService.SetServerEnabled(c.Context(), input.Enabled); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notifications_enabled": input.Enabled,
	})
}

func (h *AdminHandler) SetChannelEnabled(c *fiber.Ctx) error {
	ch := domain.Channel(c.Params("channel"))
	if !ch.IsValid() {
		return middleware.BadRequest("Unknown notification channel")
	}

	var input enabledInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.prefService.SetChannelEnabled(c.Context(), ch, input.Enabled); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"channel": ch,
		"enabled": input.Enabled,
	})
}

func (h *AdminHandler) SetUserPreferences(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	var input domain.UpdatePreferenceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if !input.Channel.IsValid() {
		return middleware.BadRequest("Unknown notification channel")
	}

	if ok := h.prefService.SetUserPreference(c.Context(), userID, input.Channel, input.Enabled, actor); !ok {
		return middleware.Forbidden("Preference update not permitted")
	}

	prefs := h.prefService.UserPreferences(c.Context(), userID)
	return c.Status(fiber.StatusOK).JSON(prefs)
}

func (h *AdminHandler) GetCleanupStats(c *fiber.Ctx) error {
	stats, err := h.retentionService.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

type startSchedulerInput struct {
	IntervalHours int `json:"interval_hours"`
}

func (h *AdminHandler) StartScheduler(c *fiber.Ctx) error {
	var input startSchedulerInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.retentionService.Start(input.IntervalHours); err != nil {
		if errors.Is(err, retention.ErrAlreadyRunning) {
			return middleware.Conflict(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"running": true,
	})
}

func (h *AdminHandler) StopScheduler(c *fiber.Ctx) error {
	if err := h.retentionService.Stop(); err != nil {
		if errors.Is(err, retention.ErrNotRunning) {
			return middleware.Conflict(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"running": false,
	})
}
