package routes

import (
	"github.com/haginus/bachelor-backend-sub001/controllers"
	"github.com/haginus/bachelor-backend-sub001/middlewares"
	"github.com/haginus/bachelor-backend-sub001/models"

	"github.com/gofiber/fiber/v2"
)

func RegisterCommitteeRoutes(app *fiber.App, h *controllers.CommitteeController, a *controllers.AssignmentController) {
	group := app.Group("/committees", middlewares.UniversalAuthMiddleware(
		models.KindAdmin, models.KindTeacher, models.KindSecretary))
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Get("/:id/papers", h.PaperCatalog)

	adminGroup := app.Group("/admin/committees", middlewares.UniversalAuthMiddleware(models.KindAdmin))
	adminGroup.Post("/", h.Create)
	adminGroup.Put("/:id", h.Update)
	adminGroup.Delete("/:id", h.Delete)
	adminGroup.Post("/auto-assign", a.AutoAssign)
}
