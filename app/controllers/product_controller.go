package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/khoadanwneee/AuctionFox/app/repository"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/metrics/counter"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/usercontext"
)

// HandleProductList returns running auctions, newest first.
// GET /api/v1/products
func HandleProductList(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	products, err := repo.GetActive(offset, limit)
	if err != nil {
		return renderBidError(c, err)
	}

	return c.JSON(fiber.Map{
		"products": products,
		"offset":   offset,
		"limit":    limit,
	})
}

// HandleProductEndingSoon returns auctions closing within the next hour.
// GET /api/v1/products/ending-soon
func HandleProductEndingSoon(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	products, err := repo.GetEndingSoon(time.Hour, limit)
	if err != nil {
		return renderBidError(c, err)
	}

	return c.JSON(fiber.Map{"products": products})
}

// HandleProductShow returns one listing with its derived status and bid count.
// GET /api/v1/products/:id
func HandleProductShow(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Invalid product id",
		})
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	product, err := repo.GetByID(uint(productID))
	if err != nil {
		return renderBidError(c, err)
	}

	bidCount, err := repo.CountBids(product.ID)
	if err != nil {
		return renderBidError(c, err)
	}

	// View counting is best effort, a cache hiccup never fails the request
	if err := counter.AddProductView(product.ID); err != nil {
		log.Printf("Failed to count view for product %d: %v", product.ID, err)
	}

	resp := fiber.Map{
		"product":   product,
		"status":    product.Status(time.Now()),
		"bid_count": bidCount,
	}
	// The proxy ceiling stays hidden from everyone but the leader themselves
	if product.HighestBidderID != nil && usercontext.GetUserID(c) == *product.HighestBidderID {
		resp["my_max_price"] = product.HighestMaxPrice
	}

	return c.JSON(resp)
}
