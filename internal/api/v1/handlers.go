package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/khoadanwneee/AuctionFox/app/controllers"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/middleware"
)

// APIServer implements the versioned JSON API
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers attaches all v1 routes to the given router group.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)

	r.Get("/products", s.GetProducts)
	r.Get("/products/ending-soon", s.GetProductsEndingSoon)
	r.Get("/products/:id", s.GetProduct)
	r.Get("/products/:id/bids", s.GetProductBids)
	r.Get("/users/:id/rating", s.GetUserRating)

	// Mutations require a logged-in session
	r.Post("/products/:id/bids", middleware.RequireAPISessionAuth, s.PostProductBid)
	r.Post("/products/:id/buy-now", middleware.RequireAPISessionAuth, s.PostProductBuyNow)
	r.Post("/users/:id/reviews", middleware.RequireAPISessionAuth, s.PostUserReview)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

// GetProducts lists running auctions
func (s *APIServer) GetProducts(c *fiber.Ctx) error {
	return controllers.HandleProductList(c)
}

// GetProductsEndingSoon lists auctions about to close
func (s *APIServer) GetProductsEndingSoon(c *fiber.Ctx) error {
	return controllers.HandleProductEndingSoon(c)
}

// GetProduct returns one listing with derived status
func (s *APIServer) GetProduct(c *fiber.Ctx) error {
	return controllers.HandleProductShow(c)
}

// GetProductBids returns the public, name-masked bid history
func (s *APIServer) GetProductBids(c *fiber.Ctx) error {
	return controllers.HandleGetBidHistory(c)
}

// GetUserRating returns a user's public reputation
func (s *APIServer) GetUserRating(c *fiber.Ctx) error {
	return controllers.HandleUserRating(c)
}

// PostProductBid places a proxy bid
func (s *APIServer) PostProductBid(c *fiber.Ctx) error {
	return controllers.HandleCreateBid(c)
}

// PostProductBuyNow buys a listing outright
func (s *APIServer) PostProductBuyNow(c *fiber.Ctx) error {
	return controllers.HandleBuyNow(c)
}

// PostUserReview stores a +1/-1 review after a finished auction
func (s *APIServer) PostUserReview(c *fiber.Ctx) error {
	return controllers.HandleCreateReview(c)
}
