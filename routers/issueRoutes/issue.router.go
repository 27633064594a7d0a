package issueRoutes

import (
	"civicvoice/config"
	issueControllers "civicvoice/controllers/issue"
	"civicvoice/middleware"
	issueValidators "civicvoice/validators/issue"

	"github.com/gofiber/fiber/v2"
)

func SetupIssueRoutes(app *fiber.App) {
	adminOnly := middleware.AdminOnly(config.AppConfig.AdminEmails)

	issues := app.Group("/api/issues")

	issues.Post("/", issueValidators.CreateIssue(), issueControllers.CreateIssue)
	issues.Get("/", issueValidators.ListIssues(config.AppConfig.PageSize), issueControllers.ListIssues)
	issues.Get("/analytics", middleware.IdentityMiddleware, adminOnly, issueControllers.GetAnalytics)
	issues.Get("/:id", issueControllers.GetIssue)
	issues.Patch("/:id/status", middleware.IdentityMiddleware, adminOnly, issueValidators.UpdateStatus(), issueControllers.UpdateStatus)
	issues.Patch("/:id/assign", middleware.IdentityMiddleware, adminOnly, issueValidators.AssignIssue(), issueControllers.AssignIssue)
	issues.Post("/:id/vote", issueControllers.VoteIssue)
}
