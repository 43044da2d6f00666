package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/khoadanwneee/AuctionFox/app/models"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/database"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/session"
)

// HandleAuthLogin authenticates a user and establishes the web session.
func HandleAuthLogin(c *fiber.Ctx) error {
	var user models.User

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	result := database.GetDB().Where("email = ?", c.FormValue("email")).First(&user)
	if result.Error != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "There is a problem with the login process",
		})
	}

	if models.CheckPasswordHash(c.FormValue("password"), user.Password) == false {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "There is a problem with the login process",
		})
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": fmt.Sprintf("something went wrong: %s", err),
		})
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.FullName)
	sess.Set(USER_ROLE, user.Role)
	sess.Set(USER_IS_ADMIN, user.Role == "admin")

	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": fmt.Sprintf("something went wrong: %s", err),
		})
	}

	database.GetDB().Model(&user).Update("last_login_at", time.Now())

	return c.JSON(fiber.Map{
		"user_id":   user.ID,
		"full_name": user.FullName,
		"role":      user.Role,
	})
}

// HandleAuthRegister creates a new bidder account.
func HandleAuthRegister(c *fiber.Ctx) error {
	user, err := models.CreateUser(c.FormValue("full_name"), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": err.Error(),
		})
	}
	user.Address = c.FormValue("address")

	if err := database.GetDB().Create(user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "registration_failed",
			"message": "Unable to create the account, the email may already be in use",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user_id":   user.ID,
		"full_name": user.FullName,
	})
}

// HandleAuthLogout destroys the current web session.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "logged out (no sess)",
		})
	}

	if err := sess.Destroy(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": fmt.Sprintf("something went wrong: %s", err),
		})
	}

	c.Locals(FROM_PROTECTED, false)

	return c.JSON(fiber.Map{"message": "logged out"})
}
