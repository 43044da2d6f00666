package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khoadanwneee/AuctionFox/internal/pkg/bidding"
)

const (
	AUTH_KEY       string = "authenticated"
	USER_ID        string = "user_id"
	USER_NAME      string = "username"
	USER_ROLE      string = "userRole"
	USER_IS_ADMIN  string = "isAdmin"
	FROM_PROTECTED string = "from_protected"
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// ExtractUserID gets the user ID from Locals (set by middleware)
func ExtractUserID(c *fiber.Ctx) uint {
	if userIDValue := c.Locals(USER_ID); userIDValue != nil {
		if userID, ok := userIDValue.(uint); ok {
			return userID
		}
	}

	return 0
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	if userNameValue := c.Locals(USER_NAME); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}

	return ""
}

// bidErrorStatus maps a bidding error to the HTTP status of the JSON response.
func bidErrorStatus(err error) int {
	switch bidding.KindOf(err) {
	case bidding.ErrNotFound:
		return fiber.StatusNotFound
	case bidding.ErrForbidden, bidding.ErrBidderRejected, bidding.ErrIneligibleReputation, bidding.ErrSelfBidding:
		return fiber.StatusForbidden
	case bidding.ErrAuctionClosed, bidding.ErrAlreadyDecided, bidding.ErrBuyNowUnavailable:
		return fiber.StatusConflict
	case bidding.ErrBidTooLow, bidding.ErrNoPriorBid:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// renderBidError writes the JSON error for a failed bidding operation.
// Storage errors never leak their internals to the client.
func renderBidError(c *fiber.Ctx, err error) error {
	var bidErr *bidding.BidError
	if errors.As(err, &bidErr) {
		return c.Status(bidErrorStatus(err)).JSON(fiber.Map{
			"error":   string(bidErr.Kind),
			"message": bidErr.Message,
		})
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "Resource not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal",
		"message": "Something went wrong, please try again later",
	})
}
