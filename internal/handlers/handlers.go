// Package handlers exposes the services over HTTP with Fiber.
package handlers

import (
	"fmt"

	"teahouse/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the JSON request body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.ErrValidation.WithMessage("invalid request body").WithDetails(err.Error())
	}
	return nil
}

// searchTerm reads the required search query parameter.
func searchTerm(c *fiber.Ctx, param string) (string, error) {
	term := c.Query(param)
	if term == "" {
		return "", apperrors.ErrValidation.WithDetails(fmt.Sprintf("query parameter '%s' is required", param))
	}
	return term, nil
}

func deleted(c *fiber.Ctx, label string) error {
	return c.JSON(fiber.Map{"message": label + " deleted successfully"})
}
