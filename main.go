package main

import (
	"log"

	"civicvoice/config"
	"civicvoice/database"
	issueRoutes "civicvoice/routers/issueRoutes"
	userRoutes "civicvoice/routers/userRoutes"
	"civicvoice/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	issueRoutes.SetupIssueRoutes(app)
	userRoutes.SetupUserRoutes(app)

	utils.InitializeStaleDigestScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
