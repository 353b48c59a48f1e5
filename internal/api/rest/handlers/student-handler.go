package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/campushire/placement_service/internal/api/rest/middleware"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/helper"
	"github.com/campushire/placement_service/internal/helper/utils"
	"github.com/campushire/placement_service/internal/services"
	"github.com/campushire/placement_service/pkg/imageutil"
	pkgutils "github.com/campushire/placement_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	maxUploadSize   = 5 * 1024 * 1024 // 5MB
	profilePicWidth = 800
)

type StudentHandler struct {
	svc       services.StudentService
	appSvc    services.ApplicationService
	auth      helper.Auth
	uploadDir string
}

func NewStudentHandler(
	svc services.StudentService,
	appSvc services.ApplicationService,
	auth helper.Auth,
	uploadDir string,
) *StudentHandler {
	return &StudentHandler{svc: svc, appSvc: appSvc, auth: auth, uploadDir: uploadDir}
}

func (h *StudentHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	students := api.Group("/students", middleware.AuthMiddleware(h.auth))

	// own profile
	students.Get("/me", middleware.StudentOnly(), h.GetProfile)
	students.Put("/me", middleware.StudentOnly(), h.UpdateProfile)
	students.Put("/documents", middleware.StudentOnly(), h.UploadDocuments)

	// application lifecycle
	students.Post("/apply/:jobId", middleware.StudentOnly(), h.Apply)
	students.Put("/applications/:jobId/status", middleware.StudentOnly(), h.Decide)
	students.Put("/application/bulk", middleware.CompanyOrAdmin(), h.BulkUpdateApplicationStatus)
	students.Put("/application/:jobId/:studentId", middleware.CompanyOrAdmin(), h.UpdateApplicationStatus)

	// notifications
	students.Get("/notifications", middleware.StudentOnly(), h.ListNotifications)
	students.Put("/notifications/:id/read", middleware.StudentOnly(), h.MarkNotificationRead)
	students.Delete("/notifications/:id", middleware.StudentOnly(), h.DeleteNotification)

	// roster
	students.Get("/", middleware.AdminOnly(), h.ListStudents)
}

func (h *StudentHandler) GetProfile(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := h.svc.GetProfile(uint(claims.UserID))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	// nil means the student has not filled a profile yet
	return utils.ResponseSuccess(ctx, fiber.StatusOK, profile)
}

func (h *StudentHandler) UpdateProfile(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.UpdateStudentProfile
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	profile, err := h.svc.UpdateProfile(uint(claims.UserID), requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, profile)
}

// UploadDocuments accepts multipart form files under resume, profilePic
// and transcript. Resume and transcript must be PDFs, the profile picture
// is normalized to JPEG. Files land in uploadDir under uuid names.
func (h *StudentHandler) UploadDocuments(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "multipart form data required")
	}

	var docs dto.UploadedDocuments

	if file := firstFile(form, "resume"); file != nil {
		name, err := h.savePDF(file)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, fmt.Sprintf("resume: %v", err))
		}
		docs.Resume = name
	}
	if file := firstFile(form, "transcript"); file != nil {
		name, err := h.savePDF(file)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, fmt.Sprintf("transcript: %v", err))
		}
		docs.Transcript = name
	}
	if file := firstFile(form, "profilePic"); file != nil {
		name, err := h.saveProfilePic(file)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, fmt.Sprintf("profilePic: %v", err))
		}
		docs.ProfilePic = name
	}

	profile, err := h.svc.SetDocuments(uint(claims.UserID), docs)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, profile)
}

func (h *StudentHandler) Apply(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	jobID, err := ctx.ParamsInt("jobId")
	if err != nil || jobID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	if err := h.appSvc.Apply(uint(claims.UserID), uint(jobID)); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "Applied successfully")
}

func (h *StudentHandler) Decide(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	jobID, err := ctx.ParamsInt("jobId")
	if err != nil || jobID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	var requestBody dto.StudentDecisionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	app, err := h.appSvc.StudentDecision(uint(claims.UserID), uint(jobID), requestBody.Status)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *StudentHandler) UpdateApplicationStatus(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	jobID, err := ctx.ParamsInt("jobId")
	if err != nil || jobID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}
	studentID, err := ctx.ParamsInt("studentId")
	if err != nil || studentID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid student id")
	}

	var requestBody dto.UpdateApplicationStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	app, err := h.appSvc.UpdateStatus(claims, uint(jobID), uint(studentID), requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *StudentHandler) BulkUpdateApplicationStatus(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.BulkUpdateApplicationStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	updated, err := h.appSvc.BulkUpdateStatus(claims, requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"updated": updated,
		"count":   len(updated),
	})
}

func (h *StudentHandler) ListNotifications(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	list, err := h.svc.ListNotifications(uint(claims.UserID))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *StudentHandler) MarkNotificationRead(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid notification id")
	}

	n, err := h.svc.MarkNotificationRead(uint(claims.UserID), uint(id))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, n)
}

func (h *StudentHandler) DeleteNotification(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid notification id")
	}

	if err := h.svc.DeleteNotification(uint(claims.UserID), uint(id)); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Notification deleted")
}

func (h *StudentHandler) ListStudents(ctx *fiber.Ctx) error {
	students, err := h.svc.ListStudents()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, students)
}

func firstFile(form *multipart.Form, key string) *multipart.FileHeader {
	files := form.File[key]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func (h *StudentHandler) savePDF(file *multipart.FileHeader) (string, error) {
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return "", fmt.Errorf("only pdf allowed")
	}

	data, err := h.readUpload(file)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ".pdf"
	if err := h.writeUpload(name, data); err != nil {
		return "", err
	}
	return name, nil
}

func (h *StudentHandler) saveProfilePic(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	if !allowed[ext] {
		return "", fmt.Errorf("only jpg/jpeg/png/webp allowed")
	}

	data, err := h.readUpload(file)
	if err != nil {
		return "", err
	}

	normalized, err := imageutil.NormalizeToJPEG(data, profilePicWidth)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ".jpg"
	if err := h.writeUpload(name, normalized); err != nil {
		return "", err
	}
	return name, nil
}

func (h *StudentHandler) readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("cannot open uploaded file")
	}
	defer f.Close()

	data, err := pkgutils.ReadAllLimit(f, maxUploadSize)
	if err != nil {
		return nil, fmt.Errorf("file too large (max 5MB)")
	}
	return data, nil
}

func (h *StudentHandler) writeUpload(name string, data []byte) error {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return fmt.Errorf("cannot prepare upload directory")
	}
	if err := os.WriteFile(filepath.Join(h.uploadDir, name), data, 0o644); err != nil {
		return fmt.Errorf("cannot store uploaded file")
	}
	return nil
}
