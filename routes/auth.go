package routes

import (
	"github.com/haginus/bachelor-backend-sub001/controllers"

	"github.com/gofiber/fiber/v2"
)

func RegisterAuthRoutes(app *fiber.App) {
	app.Post("/auth/login", controllers.Login)
	app.Post("/auth/logout", controllers.Logout)
}
