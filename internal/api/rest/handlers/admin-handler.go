package handlers

import (
	"strings"

	"github.com/campushire/placement_service/internal/api/rest/middleware"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/helper"
	"github.com/campushire/placement_service/internal/helper/utils"
	"github.com/campushire/placement_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	svc       services.AdminService
	reportSvc services.ReportService
	jobSvc    services.JobService
	auth      helper.Auth
}

func NewAdminHandler(
	svc services.AdminService,
	reportSvc services.ReportService,
	jobSvc services.JobService,
	auth helper.Auth,
) *AdminHandler {
	return &AdminHandler{svc: svc, reportSvc: reportSvc, jobSvc: jobSvc, auth: auth}
}

func (h *AdminHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.AuthMiddleware(h.auth), middleware.AdminOnly())

	admin.Get("/stats", h.Stats)

	admin.Get("/users", h.ListUsers)
	admin.Put("/users/:id", h.UpdateUser)
	admin.Delete("/users/:id", h.DeleteUser)

	admin.Get("/companies", h.ListCompanies)
	admin.Put("/companies/:id/verify", h.VerifyCompany)

	admin.Get("/jobs", h.ListJobs)
	admin.Put("/jobs/:id/status", h.SetJobStatus)

	admin.Get("/logs", h.Logs)
}

func (h *AdminHandler) Stats(ctx *fiber.Ctx) error {
	stats, err := h.reportSvc.AdminStats()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(ctx *fiber.Ctx) error {
	role := strings.TrimSpace(ctx.Query("role"))
	search := strings.TrimSpace(ctx.Query("search"))

	users, err := h.svc.ListUsers(role, search)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, users)
}

func (h *AdminHandler) UpdateUser(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	var requestBody dto.UpdateUserRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.UpdateUser(uint(id), requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, toUserProfile(user))
}

func (h *AdminHandler) DeleteUser(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.svc.DeleteUser(claims, uint(id), ctx.IP()); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "User deleted")
}

func (h *AdminHandler) ListCompanies(ctx *fiber.Ctx) error {
	companies, err := h.svc.ListCompanies(strings.TrimSpace(ctx.Query("search")))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, companies)
}

func (h *AdminHandler) VerifyCompany(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid company id")
	}

	company, err := h.svc.VerifyCompany(claims, uint(id), ctx.IP())
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, company)
}

func (h *AdminHandler) ListJobs(ctx *fiber.Ctx) error {
	list, err := h.jobSvc.ListJobs(parseJobFilter(ctx))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *AdminHandler) SetJobStatus(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	var requestBody dto.SetJobStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	job, err := h.jobSvc.SetJobStatus(uint(id), requestBody.Status)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, job)
}

func (h *AdminHandler) Logs(ctx *fiber.Ctx) error {
	logs, err := h.svc.AccessLogs()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, logs)
}
