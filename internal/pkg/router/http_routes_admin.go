package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khoadanwneee/AuctionFox/app/controllers"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin)
	adminGroup.Get("/", controllers.HandleAdminDashboard)
	adminGroup.Get("/settings", controllers.HandleAdminSettings)
	adminGroup.Post("/settings", controllers.HandleAdminSettingsUpdate)
}
