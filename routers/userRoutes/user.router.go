package userRoutes

import (
	userControllers "civicvoice/controllers/user"
	"civicvoice/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/api/users")

	users.Post("/sync", middleware.IdentityMiddleware, userControllers.SyncUser)
}
