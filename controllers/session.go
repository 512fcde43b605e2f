package controllers

import (
	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/services"

	"github.com/gofiber/fiber/v2"
)

type SessionController struct {
	Service *services.SessionService
}

// GetSettings returns the current session configuration.
func (h *SessionController) GetSettings(c *fiber.Ctx) error {
	settings, err := h.Service.GetSettings()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

// UpdateSettings validates and applies a session configuration change.
func (h *SessionController) UpdateSettings(c *fiber.Ctx) error {
	var req dto.SessionSettingsUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}
	settings, err := h.Service.UpdateSettings(req)
	if err != nil {
		return serviceError(c, err)
	}
	services.LogActivity(h.Service.DB, currentUserID(c), "session.settings_updated", fiber.Map{
		"sessionName": settings.SessionName,
	})
	return c.JSON(settings)
}

// BeginNewSession performs the irreversible end-of-session rollover.
func (h *SessionController) BeginNewSession(c *fiber.Ctx) error {
	settings, err := h.Service.BeginNewSession()
	if err != nil {
		return serviceError(c, err)
	}
	// The audit trail was just wiped with the old session; the rollover
	// itself opens the new one.
	services.LogActivity(h.Service.DB, currentUserID(c), "session.started", fiber.Map{
		"sessionName": settings.SessionName,
	})
	return c.JSON(settings)
}
