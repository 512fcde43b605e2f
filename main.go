package main

import (
	"log"

	"github.com/haginus/bachelor-backend-sub001/config"
	"github.com/haginus/bachelor-backend-sub001/controllers"
	"github.com/haginus/bachelor-backend-sub001/database"
	"github.com/haginus/bachelor-backend-sub001/routes"
	"github.com/haginus/bachelor-backend-sub001/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	config.LoadEnv()

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	if err := database.Connect(); err != nil {
		log.Fatalf("could not connect to the database: %v", err)
	}

	sessionService := services.NewSessionService(database.DB)
	committeeService := services.NewCommitteeService(database.DB)
	assignmentService := services.NewAssignmentService(database.DB)
	gradeService := services.NewGradeService(database.DB, sessionService)
	paperService := services.NewPaperService(database.DB, sessionService)
	offerService := services.NewOfferService(database.DB, sessionService)

	routes.RegisterAuthRoutes(app)
	routes.RegisterSessionRoutes(app, &controllers.SessionController{Service: sessionService})
	routes.RegisterCommitteeRoutes(app,
		&controllers.CommitteeController{Service: committeeService, Papers: paperService},
		&controllers.AssignmentController{Service: assignmentService})
	routes.RegisterGradeRoutes(app, &controllers.GradeController{Service: gradeService})
	routes.RegisterPaperRoutes(app, &controllers.PaperController{Service: paperService})
	routes.RegisterOfferRoutes(app, &controllers.OfferController{Service: offerService})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	log.Fatal(app.Listen(config.ServerPort))
}
