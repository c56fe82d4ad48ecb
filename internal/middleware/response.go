package middleware

import "github.com/gofiber/fiber/v3"

// Error codes used across the API.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeInvalidBody     = "INVALID_BODY"
	CodeMissingFields   = "MISSING_FIELDS"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
	CodeUpstream        = "UPSTREAM_ERROR"
)

// ErrorResponse writes the standard API error envelope.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}
