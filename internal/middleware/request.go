package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"teahouse/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// RequestTimeout gives every request a user context that expires after d. Store
// calls made through c.UserContext() observe the deadline.
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the response yet
			status = apperrors.From(err).HTTPCode()
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		log.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
			"ip", c.IP(),
		)
		return err
	}
}

// ErrorHandler renders errors returned by handlers and middleware as JSON
// {message, details}. Server-side failures are logged with their cause.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		appErr := apperrors.From(err)
		if appErr.HTTPCode() >= fiber.StatusInternalServerError {
			log.ErrorContext(c.UserContext(), "request failed",
				"method", c.Method(), "path", c.Path(), "code", appErr.Code(), "error", err)
		}
		body := fiber.Map{"message": appErr.Message()}
		if details := appErr.Details(); len(details) > 0 {
			body["details"] = details
		}
		return c.Status(appErr.HTTPCode()).JSON(body)
	}
}

// NotFound answers every request that matched no route.
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "route not found"})
	}
}
