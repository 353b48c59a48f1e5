package handlers

import (
	"strconv"
	"strings"

	"github.com/campushire/placement_service/internal/api/rest/middleware"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/helper"
	"github.com/campushire/placement_service/internal/helper/utils"
	"github.com/campushire/placement_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type JobHandler struct {
	svc    services.JobService
	appSvc services.ApplicationService
	auth   helper.Auth
}

func NewJobHandler(svc services.JobService, appSvc services.ApplicationService, auth helper.Auth) *JobHandler {
	return &JobHandler{svc: svc, appSvc: appSvc, auth: auth}
}

func (h *JobHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	jobs := api.Group("/jobs", middleware.AuthMiddleware(h.auth))

	jobs.Get("/", h.ListJobs)
	jobs.Get("/stats", middleware.CompanyOrAdmin(), h.RecruiterStats)
	jobs.Get("/applications/all", middleware.CompanyOrAdmin(), h.ListCompanyApplications)
	jobs.Get("/:id", h.GetJob)
	jobs.Get("/:id/applications", middleware.CompanyOrAdmin(), h.ListJobApplications)

	jobs.Post("/", middleware.CompanyOrAdmin(), h.CreateJob)
	jobs.Put("/:id", middleware.CompanyOrAdmin(), h.UpdateJob)
	jobs.Delete("/:id", middleware.CompanyOrAdmin(), h.DeleteJob)
}

// parseJobFilter maps the query string onto a JobFilter. The ctc bounds
// come in bracket form, e.g. ctc[gte]=600000.
func parseJobFilter(ctx *fiber.Ctx) dto.JobFilter {
	filter := dto.JobFilter{
		Location: strings.TrimSpace(ctx.Query("location")),
		Search:   strings.TrimSpace(ctx.Query("search")),
		Sort:     strings.TrimSpace(ctx.Query("sort")),
		Page:     ctx.QueryInt("page", 1),
		Limit:    ctx.QueryInt("limit", 10),
	}

	parseFloat := func(key string) *float64 {
		raw := strings.TrimSpace(ctx.Query(key))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil
		}
		return &v
	}
	filter.CTCGte = parseFloat("ctc[gte]")
	filter.CTCGt = parseFloat("ctc[gt]")
	filter.CTCLte = parseFloat("ctc[lte]")
	filter.CTCLt = parseFloat("ctc[lt]")

	if industry := strings.TrimSpace(ctx.Query("industry")); industry != "" {
		filter.Industries = []string{industry}
	}
	if in := strings.TrimSpace(ctx.Query("industry[in]")); in != "" {
		for _, v := range strings.Split(in, ",") {
			if v = strings.TrimSpace(v); v != "" {
				filter.Industries = append(filter.Industries, v)
			}
		}
	}
	return filter
}

func (h *JobHandler) ListJobs(ctx *fiber.Ctx) error {
	list, err := h.svc.ListJobs(parseJobFilter(ctx))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *JobHandler) GetJob(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	job, err := h.svc.GetJob(uint(id))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, job)
}

func (h *JobHandler) CreateJob(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.JobRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	job, err := h.svc.CreateJob(claims, requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	var requestBody dto.JobRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	job, err := h.svc.UpdateJob(claims, uint(id), requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, job)
}

func (h *JobHandler) DeleteJob(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	if err := h.svc.DeleteJob(claims, uint(id)); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Job deleted")
}

func (h *JobHandler) ListJobApplications(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	applicants, err := h.appSvc.ListApplicantsForJob(claims, uint(id))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, applicants)
}

func (h *JobHandler) ListCompanyApplications(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	applicants, err := h.appSvc.ListCompanyApplications(claims)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, applicants)
}

func (h *JobHandler) RecruiterStats(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := h.svc.RecruiterStats(claims)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, stats)
}
