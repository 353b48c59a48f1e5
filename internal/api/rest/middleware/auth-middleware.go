package middleware

import (
	"strings"

	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/helper"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", uint(user.UserID))
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

func currentUser(ctx *fiber.Ctx) (dto.AuthResponse, bool) {
	user, ok := ctx.Locals("user").(dto.AuthResponse)
	if !ok || user.UserID == 0 {
		return dto.AuthResponse{}, false
	}
	return user, true
}

func requireRole(ctx *fiber.Ctx, message string, roles ...string) error {
	user, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}

	for _, role := range roles {
		if user.Role == role {
			return ctx.Next()
		}
	}

	return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": message,
	})
}

func AdminOnly() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return requireRole(ctx, "admin only", domain.RoleAdmin)
	}
}

func StudentOnly() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return requireRole(ctx, "student only", domain.RoleStudent)
	}
}

func CompanyOrAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return requireRole(ctx, "recruiter only", domain.RoleCompany, domain.RoleAdmin)
	}
}
