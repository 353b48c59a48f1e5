package utils

import (
	"github.com/campushire/placement_service/internal/apperr"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseAppError maps a service error onto the taxonomy's status code.
func ResponseAppError(ctx *fiber.Ctx, err error) error {
	return ResponseError(ctx, apperr.StatusCode(err), err.Error())
}
