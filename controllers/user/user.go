package userControllers

import (
	"errors"
	"log"

	"civicvoice/database"
	"civicvoice/middleware"
	"civicvoice/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SyncUser upserts the local user row for the authenticated identity. It is
// idempotent and safe to call on every login: the first call creates the
// row, later calls refresh the mutable profile fields.
func SyncUser(c *fiber.Ctx) error {
	identity, ok := middleware.CallerIdentity(c)
	if !ok || identity.ExternalID == "" {
		return middleware.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	db := database.Database.Db

	var user models.User
	err := db.Where("external_id = ?", identity.ExternalID).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			ExternalID: identity.ExternalID,
			Email:      identity.Email,
			FirstName:  optional(identity.FirstName),
			LastName:   optional(identity.LastName),
			ImageURL:   optional(identity.ImageURL),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", identity.ExternalID, err)
			return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to sync user")
		}
	case err != nil:
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to sync user")
	default:
		user.Email = identity.Email
		user.FirstName = optional(identity.FirstName)
		user.LastName = optional(identity.LastName)
		user.ImageURL = optional(identity.ImageURL)
		if err := db.Save(&user).Error; err != nil {
			log.Printf("Failed to update user %s: %v", identity.ExternalID, err)
			return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to sync user")
		}
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
