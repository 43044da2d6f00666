package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khoadanwneee/AuctionFox/app/models"
	"github.com/khoadanwneee/AuctionFox/app/repository"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/statistics"
)

var adminSettingRepo repository.SettingRepository

// InitializeAdminController wires the admin handlers with their repositories.
func InitializeAdminController() {
	adminSettingRepo = repository.GetGlobalFactory().GetSettingRepository()
}

// HandleAdminDashboard shows marketplace totals for operators.
// GET /admin
func HandleAdminDashboard(c *fiber.Ctx) error {
	stats := statistics.GetStatisticsData()

	return c.JSON(fiber.Map{
		"active_auctions": stats.ActiveAuctions,
		"today_bids":      stats.TodayBids,
		"total_users":     stats.TotalUsers,
	})
}

// HandleAdminSettings returns the current application settings.
// GET /admin/settings
func HandleAdminSettings(c *fiber.Ctx) error {
	settings, err := adminSettingRepo.Get()
	if err != nil {
		return renderBidError(c, err)
	}

	return c.JSON(settings)
}

type updateSettingsRequest struct {
	SiteTitle                 string `json:"site_title" form:"site_title"`
	AutoExtendTriggerMinutes  int    `json:"auto_extend_trigger_minutes" form:"auto_extend_trigger_minutes"`
	AutoExtendDurationMinutes int    `json:"auto_extend_duration_minutes" form:"auto_extend_duration_minutes"`
}

// HandleAdminSettingsUpdate stores new settings and applies them immediately
// to subsequent bids.
// POST /admin/settings
func HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Invalid request body",
		})
	}

	settings := &models.AppSettings{
		SiteTitle:                 req.SiteTitle,
		AutoExtendTriggerMinutes:  req.AutoExtendTriggerMinutes,
		AutoExtendDurationMinutes: req.AutoExtendDurationMinutes,
	}
	if err := adminSettingRepo.Save(settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": err.Error(),
		})
	}

	return c.JSON(settings)
}
