package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sujit-baniya/flash"

	"github.com/khoadanwneee/AuctionFox/app/repository"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/bidding"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/bidnotify"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/database"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/env"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/jobqueue"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/usercontext"
)

var bidService *bidding.Service

// InitializeBidController wires the bidding service with its notification
// dispatcher. Must run after database, cache and repository factory setup.
func InitializeBidController() {
	repos := repository.GetGlobalRepositories()
	dispatcher := bidnotify.NewDispatcher(repos.User, jobqueue.GetQueue())
	bidService = bidding.NewServiceFromDB(database.GetDB(), dispatcher)
}

type placeBidRequest struct {
	BidAmount string `json:"bid_amount" form:"bid_amount"`
}

func publicBaseURL() string {
	return env.GetEnv("PUBLIC_DOMAIN", "http://localhost:4000")
}

func productURL(productID uint) string {
	return fmt.Sprintf("%s/products/%d", publicBaseURL(), productID)
}

// HandleCreateBid places a proxy bid on a listing.
// POST /api/v1/products/:id/bids
func HandleCreateBid(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Invalid product id",
		})
	}

	var req placeBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Invalid request body",
		})
	}

	bidAmount, err := decimal.NewFromString(req.BidAmount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Bid amount must be a number",
		})
	}

	userID := usercontext.GetUserID(c)
	result, err := bidService.PlaceBid(uint(productID), userID, bidAmount, productURL(uint(productID)))
	if err != nil {
		return renderBidError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       bidding.BuildBidResultMessage(result),
		"product_id":    result.ProductID,
		"current_price": result.NewCurrentPrice,
		"is_winning":    result.IsWinning(),
		"product_sold":  result.ProductSold,
		"auto_extended": result.AutoExtended,
		"new_end_time":  result.NewEndTime,
	})
}

// HandleBuyNow purchases a listing outright at its buy-now price.
// POST /api/v1/products/:id/buy-now
func HandleBuyNow(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Invalid product id",
		})
	}

	userID := usercontext.GetUserID(c)
	if err := bidService.BuyNow(uint(productID), userID); err != nil {
		return renderBidError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Congratulations! You purchased this product at the Buy Now price.",
		"product_id": productID,
	})
}

// HandleGetBidHistory returns the public bid history with masked bidder names.
// GET /api/v1/products/:id/bids
func HandleGetBidHistory(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Invalid product id",
		})
	}

	entries, err := bidService.GetBiddingHistory(uint(productID))
	if err != nil {
		return renderBidError(c, err)
	}

	return c.JSON(fiber.Map{
		"product_id": productID,
		"bids":       entries,
	})
}

// HandleRejectBidder removes a bidder from a listing and recomputes the price.
// Seller-only web form: POST /seller/products/:id/reject/:bidder_id
func HandleRejectBidder(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Invalid product id",
		}).Redirect("/")
	}
	bidderID, err := c.ParamsInt("bidder_id")
	if err != nil || bidderID <= 0 {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Invalid bidder id",
		}).Redirect(fmt.Sprintf("/products/%d", productID))
	}

	sellerID := usercontext.GetUserID(c)
	_, err = bidService.RejectBidder(uint(productID), uint(bidderID), sellerID, publicBaseURL())
	if err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": err.Error(),
		}).Redirect(fmt.Sprintf("/products/%d", productID))
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Bidder rejected and bids recalculated",
	}).Redirect(fmt.Sprintf("/products/%d", productID))
}

// HandleListRejectedBidders shows a listing's denylist to its seller.
// GET /seller/products/:id/rejected
func HandleListRejectedBidders(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Invalid product id",
		})
	}

	repos := repository.GetGlobalRepositories()
	product, err := repos.Product.GetByID(uint(productID))
	if err != nil {
		return renderBidError(c, err)
	}
	if product.SellerID != usercontext.GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "Only the seller can view rejected bidders",
		})
	}

	entries, err := repos.RejectedBidder.GetByProductID(product.ID)
	if err != nil {
		return renderBidError(c, err)
	}

	return c.JSON(fiber.Map{
		"product_id": product.ID,
		"rejected":   entries,
	})
}

// HandleUnrejectBidder lifts a rejection so the bidder may bid again.
// Seller-only web form: POST /seller/products/:id/unreject/:bidder_id
func HandleUnrejectBidder(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Invalid product id",
		}).Redirect("/")
	}
	bidderID, err := c.ParamsInt("bidder_id")
	if err != nil || bidderID <= 0 {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Invalid bidder id",
		}).Redirect(fmt.Sprintf("/products/%d", productID))
	}

	sellerID := usercontext.GetUserID(c)
	if err := bidService.UnrejectBidder(uint(productID), uint(bidderID), sellerID); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": err.Error(),
		}).Redirect(fmt.Sprintf("/products/%d", productID))
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Bidder may bid on this listing again",
	}).Redirect(fmt.Sprintf("/products/%d", productID))
}
