package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gmpsaude/clinic-scheduler/internal/audit"
	"github.com/gmpsaude/clinic-scheduler/internal/config"
	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/handlers"
	infraCache "github.com/gmpsaude/clinic-scheduler/internal/infra/cache"
	infraRepo "github.com/gmpsaude/clinic-scheduler/internal/infra/repository"
	"github.com/gmpsaude/clinic-scheduler/internal/infra/storage"
	"github.com/gmpsaude/clinic-scheduler/internal/middleware"
	"github.com/gmpsaude/clinic-scheduler/internal/notify"
	ucAppointment "github.com/gmpsaude/clinic-scheduler/internal/usecase/appointment"
	ucPrescription "github.com/gmpsaude/clinic-scheduler/internal/usecase/prescription"
)

// Deps expõe o que o main precisa além das rotas montadas (a varredura
// de no-show roda também em background).
type Deps struct {
	Expire *ucAppointment.Expire
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) Deps {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New()
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db, auditLogger)

	slotCache := infraCache.NewRedisSlotCache(
		cfg.RedisAddr,
		cfg.RedisPassword,
		cfg.RedisDB,
		cfg.SlotCacheTTL,
	)

	store := storage.NewS3Storage(cfg)

	var mailer notify.Mailer = notify.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPassword,
			cfg.MailFrom,
		)
	}
	mailDispatcher := notify.NewDispatcher(mailer)

	sched := domain.Schedule{
		OpeningHour: cfg.OpeningHour,
		ClosingHour: cfg.ClosingHour,
		SlotMinutes: cfg.SlotMinutes,
		LeadTime:    cfg.LeadTime,
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBook(
		appointmentRepo,
		slotCache,
		sched,
		mailDispatcher,
		cfg.DoctorDailyLimit,
		cfg.Timezone,
	)

	cancelUC := ucAppointment.NewCancel(appointmentRepo, slotCache, cfg.Timezone)

	completeUC := ucAppointment.NewComplete(
		appointmentRepo,
		slotCache,
		mailDispatcher,
		cfg.VisitDescriptionMax,
		cfg.Timezone,
	)

	deleteUC := ucAppointment.NewDelete(appointmentRepo, slotCache)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		slotCache,
		sched,
		cfg.Timezone,
	)

	expireUC := ucAppointment.NewExpire(
		appointmentRepo,
		slotCache,
		cfg.NoShowGrace,
		cfg.Timezone,
	)

	// ======================================================
	// 🧠 USE CASES — PRESCRIPTIONS
	// ======================================================
	generateUC := ucPrescription.NewGenerate(appointmentRepo, store, cfg.Timezone)
	uploadUC := ucPrescription.NewUpload(appointmentRepo, store, cfg.PrescriptionMaxBytes)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	photoHandler := handlers.NewPhotoHandler(db, store, cfg.PhotoMaxBytes)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		bookUC,
		cancelUC,
		completeUC,
		deleteUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	visitHandler := handlers.NewVisitHandler(db, store, uploadUC, cfg.PrescriptionMaxBytes)
	prescriptionHandler := handlers.NewPrescriptionHandler(db, generateUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	maintenanceHandler := handlers.NewMaintenanceHandler(db, expireUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		// Register usa auth opcional: só admin autenticado escolhe o
		// papel do novo usuário.
		api.POST("/auth/register", middleware.OptionalAuthMiddleware(cfg), authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// USERS
			secured.GET("/users", userHandler.List)
			secured.GET("/users/doctors", userHandler.ListDoctors)
			secured.GET("/users/:id", userHandler.Get)
			secured.PATCH("/users/:id", userHandler.Update)
			secured.POST("/users/:id/photo", photoHandler.Upload)
			secured.GET("/users/:id/photo", photoHandler.Download)
			secured.GET("/users/:id/history", appointmentHandler.History)

			// AVAILABILITY
			secured.GET("/availability", availabilityHandler.Get)

			// APPOINTMENTS
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.POST("/appointments/:id/prescription", prescriptionHandler.Generate)

			// VISITS
			secured.GET("/visits", visitHandler.List)
			secured.GET("/visits/:id", visitHandler.Get)
			secured.PATCH("/visits/:id", visitHandler.Update)
			secured.DELETE("/visits/:id", visitHandler.Delete)
			secured.POST("/visits/:id/file", visitHandler.UploadFile)
			secured.POST("/visits/:id/attachment", visitHandler.UploadAttachment)
			secured.GET("/visits/:id/prescription", visitHandler.DownloadPrescription)

			// ADMIN
			secured.GET("/audit-logs", auditLogsHandler.List)
			secured.POST("/maintenance/expire", maintenanceHandler.ExpireAppointments)
		}
	}

	return Deps{Expire: expireUC}
}
