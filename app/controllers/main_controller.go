package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khoadanwneee/AuctionFox/internal/pkg/statistics"
)

// HandleStart serves the landing payload with live marketplace numbers.
// GET /
func HandleStart(c *fiber.Ctx) error {
	stats := statistics.GetStatisticsData()

	return c.JSON(fiber.Map{
		"name":            "AuctionFox",
		"active_auctions": stats.ActiveAuctions,
		"today_bids":      stats.TodayBids,
		"total_users":     stats.TotalUsers,
		"logged_in":       isLoggedIn(c),
		"username":        ExtractUsername(c),
	})
}
