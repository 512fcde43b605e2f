package routes

import (
	"github.com/haginus/bachelor-backend-sub001/controllers"
	"github.com/haginus/bachelor-backend-sub001/middlewares"
	"github.com/haginus/bachelor-backend-sub001/models"

	"github.com/gofiber/fiber/v2"
)

func RegisterOfferRoutes(app *fiber.App, h *controllers.OfferController) {
	app.Get("/offers", middlewares.UniversalAuthMiddleware(), h.List)
	app.Post("/teacher/offers", middlewares.UniversalAuthMiddleware(models.KindTeacher), h.Create)
	app.Post("/student/applications", middlewares.UniversalAuthMiddleware(models.KindStudent), h.Apply)
	app.Post("/applications/:id/decide",
		middlewares.UniversalAuthMiddleware(models.KindTeacher, models.KindAdmin), h.Decide)
}
