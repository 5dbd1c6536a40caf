package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorHandler converts every error escaping a handler into the uniform
// {success:false, message} envelope. Unclassified errors are logged and
// surface as a generic 500; details never reach the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, gorm.ErrRecordNotFound):
		code = fiber.StatusNotFound
		message = "Record not found"
	default:
		log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{"success": false, "message": message})
}

// NotFoundHandler is the fallback for unmatched routes.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": "Endpoint not found",
	})
}
