package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/khoadanwneee/AuctionFox/app/controllers"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/env"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)

	// Seller moderation forms
	group.Get("/seller/products/:id/rejected", middleware.RequireSeller, controllers.HandleListRejectedBidders)
	group.Post("/seller/products/:id/reject/:bidder_id", middleware.RequireSeller, controllers.HandleRejectBidder)
	group.Post("/seller/products/:id/unreject/:bidder_id", middleware.RequireSeller, controllers.HandleUnrejectBidder)
}
