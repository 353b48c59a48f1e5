package api

import (
	"log"

	"github.com/campushire/placement_service/config"
	"github.com/campushire/placement_service/infra/queue"
	"github.com/campushire/placement_service/internal/api/rest/handlers"
	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/helper"
	"github.com/campushire/placement_service/internal/repository"
	"github.com/campushire/placement_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260815

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Student{},
		&domain.Company{},
		&domain.Job{},
		&domain.Application{},
		&domain.Notification{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	logRepo := repository.NewAuditLogRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ---------- Services ----------
	notifier := services.NewNotifier(notifRepo, kafkaProducer)

	userSvc := services.NewUserService(userRepo, authHelper)
	appSvc := services.NewApplicationService(studentRepo, appRepo, jobRepo, userRepo, notifier)
	studentSvc := services.NewStudentService(studentRepo, userRepo, notifRepo, appSvc)
	jobSvc := services.NewJobService(jobRepo, appRepo, companyRepo, userRepo)
	reportSvc := services.NewReportService(reportRepo, userRepo, jobRepo)
	adminSvc := services.NewAdminService(userRepo, companyRepo, jobRepo, logRepo)

	// ---------- Handlers ----------
	handlers.NewUserHandler(userSvc, authHelper).SetupRoutes(app)
	handlers.NewStudentHandler(studentSvc, appSvc, authHelper, cfg.UploadDir).SetupRoutes(app)
	handlers.NewJobHandler(jobSvc, appSvc, authHelper).SetupRoutes(app)
	handlers.NewAdminHandler(adminSvc, reportSvc, jobSvc, authHelper).SetupRoutes(app)

	// ---------- Static uploads ----------
	app.Static("/uploads", cfg.UploadDir)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
