package routes

import (
	"github.com/haginus/bachelor-backend-sub001/controllers"
	"github.com/haginus/bachelor-backend-sub001/middlewares"
	"github.com/haginus/bachelor-backend-sub001/models"

	"github.com/gofiber/fiber/v2"
)

func RegisterPaperRoutes(app *fiber.App, h *controllers.PaperController) {
	studentGroup := app.Group("/student/paper", middlewares.UniversalAuthMiddleware(models.KindStudent))
	studentGroup.Get("/", h.MyPaper)
	studentGroup.Post("/submit", h.Submit)
	studentGroup.Post("/unsubmit", h.Unsubmit)
	studentGroup.Post("/documents", h.UploadDocument)

	app.Post("/admin/papers/:id/review",
		middlewares.UniversalAuthMiddleware(models.KindAdmin, models.KindSecretary), h.Review)
}
