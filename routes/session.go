package routes

import (
	"github.com/haginus/bachelor-backend-sub001/controllers"
	"github.com/haginus/bachelor-backend-sub001/middlewares"
	"github.com/haginus/bachelor-backend-sub001/models"

	"github.com/gofiber/fiber/v2"
)

func RegisterSessionRoutes(app *fiber.App, h *controllers.SessionController) {
	// Reading the session configuration is open to any signed-in account;
	// changing it and the rollover are admin-only.
	app.Get("/session", middlewares.UniversalAuthMiddleware(), h.GetSettings)

	adminGroup := app.Group("/admin/session", middlewares.UniversalAuthMiddleware(models.KindAdmin))
	adminGroup.Put("/", h.UpdateSettings)
	adminGroup.Post("/new", h.BeginNewSession)
}
