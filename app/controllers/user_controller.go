package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khoadanwneee/AuctionFox/app/models"
	"github.com/khoadanwneee/AuctionFox/app/repository"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/usercontext"
)

// HandleUserProfile returns the authenticated user's account with reputation.
// GET /user/profile
func HandleUserProfile(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userID)
	if err != nil {
		return renderBidError(c, err)
	}

	rating, err := repos.Review.CalculateRatingPoint(userID)
	if err != nil {
		return renderBidError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":         user,
		"rating":       rating.Score,
		"review_count": rating.ReviewCount,
	})
}

// HandleUserRating returns the public reputation of any user.
// GET /api/v1/users/:id/rating
func HandleUserRating(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Invalid user id",
		})
	}

	rating, err := repository.GetGlobalRepositories().Review.CalculateRatingPoint(uint(userID))
	if err != nil {
		return renderBidError(c, err)
	}

	return c.JSON(fiber.Map{
		"user_id":      userID,
		"rating":       rating.Score,
		"review_count": rating.ReviewCount,
	})
}

type createReviewRequest struct {
	ProductID uint   `json:"product_id" form:"product_id"`
	Rating    int    `json:"rating" form:"rating"`
	Comment   string `json:"comment" form:"comment"`
}

// HandleCreateReview records a +1/-1 review for the other party of a finished
// auction. Re-submitting for the same product updates the earlier review.
// POST /api/v1/users/:id/reviews
func HandleCreateReview(c *fiber.Ctx) error {
	reviewedID, err := c.ParamsInt("id")
	if err != nil || reviewedID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Invalid user id",
		})
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Invalid request body",
		})
	}

	reviewerID := usercontext.GetUserID(c)
	if reviewerID == uint(reviewedID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "You cannot review yourself",
		})
	}

	review := &models.Review{
		ReviewerID:     reviewerID,
		ReviewedUserID: uint(reviewedID),
		ProductID:      req.ProductID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}
	if err := review.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Rating must be +1 or -1",
		})
	}

	if err := repository.GetGlobalRepositories().Review.CreateOrUpdate(review); err != nil {
		return renderBidError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}
