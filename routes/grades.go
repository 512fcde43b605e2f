package routes

import (
	"github.com/haginus/bachelor-backend-sub001/controllers"
	"github.com/haginus/bachelor-backend-sub001/middlewares"
	"github.com/haginus/bachelor-backend-sub001/models"

	"github.com/gofiber/fiber/v2"
)

func RegisterGradeRoutes(app *fiber.App, h *controllers.GradeController) {
	// Committee members grade papers; staff record written-exam grades.
	app.Post("/papers/:id/grades",
		middlewares.UniversalAuthMiddleware(models.KindTeacher), h.RecordPaperGrade)
	app.Get("/papers/:id/average",
		middlewares.UniversalAuthMiddleware(), h.PaperAverage)

	app.Post("/submissions/:id/grade",
		middlewares.UniversalAuthMiddleware(models.KindAdmin, models.KindSecretary), h.GradeSubmission)
	app.Get("/submissions/:id/grade",
		middlewares.UniversalAuthMiddleware(), h.WrittenExamGrade)
}
