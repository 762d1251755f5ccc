package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cromados/barberia/internal/audit"
	"github.com/cromados/barberia/internal/config"
	"github.com/cromados/barberia/internal/handlers"
	"github.com/cromados/barberia/internal/infra/cache"
	"github.com/cromados/barberia/internal/infra/hold"
	infraRepo "github.com/cromados/barberia/internal/infra/repository"
	"github.com/cromados/barberia/internal/middleware"
	"github.com/cromados/barberia/internal/payments"
	"github.com/cromados/barberia/internal/storage"
	ucAgenda "github.com/cromados/barberia/internal/usecase/agenda"
	ucAuth "github.com/cromados/barberia/internal/usecase/auth"
	ucAvailability "github.com/cromados/barberia/internal/usecase/availability"
	ucCheckout "github.com/cromados/barberia/internal/usecase/checkout"
	ucPayment "github.com/cromados/barberia/internal/usecase/payment"
	ucPayout "github.com/cromados/barberia/internal/usecase/payout"
	ucReservation "github.com/cromados/barberia/internal/usecase/reservation"
)

// Wired expone los singletons que además de la API usan el bot de Telegram
// y el barrido de turnos vencidos.
type Wired struct {
	Slots    *cache.AvailabilitySource
	Checkout *ucCheckout.CreateCheckout
	Webhook  *ucPayment.ProcessWebhook
	Reaper   *ucReservation.ExpirePending
}

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
	mp *payments.Client,
	store *storage.S3Store,
) *Wired {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)
	agendaRepo := infraRepo.NewAgendaGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	holdStore := hold.NewStore(rdb)

	availabilityUC := ucAvailability.NewGetDayAvailability(reservationRepo, log)
	slots := cache.NewAvailabilitySource(rdb, availabilityUC, log)

	// ======================================================
	// 🧠 USE CASES — RESERVAS
	// ======================================================
	var checkoutUC *ucCheckout.CreateCheckout
	var webhookUC *ucPayment.ProcessWebhook
	if mp != nil {
		checkoutUC = ucCheckout.NewCreateCheckout(reservationRepo, holdStore, mp, log)
		webhookUC = ucPayment.NewProcessWebhook(
			reservationRepo, mp, holdStore, slots, auditDispatcher, log,
		)
	}

	cancelUC := ucReservation.NewCancelBooking(reservationRepo, slots, auditDispatcher)
	listByDateUC := ucReservation.NewListBookingsByDate(reservationRepo)
	listByMonthUC := ucReservation.NewListBookingsByMonth(reservationRepo)
	blockUC := ucReservation.NewBlockSlot(reservationRepo, slots, auditDispatcher)
	unblockUC := ucReservation.NewUnblockSlot(reservationRepo, slots, auditDispatcher)
	reaperUC := ucReservation.NewExpirePending(reservationRepo, log)
	payoutUC := ucPayout.NewCalculate(reservationRepo, log)

	// ======================================================
	// 🧠 USE CASES — AGENDA
	// ======================================================
	listScheduleUC := ucAgenda.NewListSchedule(agendaRepo)
	updateWeeklyUC := ucAgenda.NewUpdateWeekly(agendaRepo, auditDispatcher)
	deleteWeeklyUC := ucAgenda.NewDeleteWeekly(agendaRepo, auditDispatcher)
	addDayUC := ucAgenda.NewAddExceptionalDay(agendaRepo, auditDispatcher)
	deleteDayUC := ucAgenda.NewDeleteExceptionalDay(agendaRepo, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	registerUC := ucAuth.NewRegisterAdmin(infraRepo.NewAuthGormRepository(db))

	authHandler := handlers.NewAuthHandler(db, cfg, registerUC)
	publicHandler := handlers.NewPublicHandler(db, slots)
	catalogHandler := handlers.NewCatalogHandler(db, auditDispatcher)
	mediaHandler := handlers.NewMediaHandler(db, store)
	payoutHandler := handlers.NewPayoutHandler(payoutUC)

	bookingAdminHandler := handlers.NewBookingAdminHandler(
		listByDateUC,
		listByMonthUC,
		cancelUC,
		blockUC,
		unblockUC,
	)

	scheduleAdminHandler := handlers.NewScheduleAdminHandler(
		listScheduleUC,
		updateWeeklyUC,
		deleteWeeklyUC,
		addDayUC,
		deleteDayUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/csrf", middleware.IssueCSRFToken)

		public := api.Group("/")
		public.Use(middleware.CSRFMiddleware())
		{
			public.GET("/branches", publicHandler.ListBranches)
			public.GET("/barbers", publicHandler.ListBarbers)
			public.GET("/services", publicHandler.ListServices)

			public.GET("/barbers/:barber_id/weekly-schedule", publicHandler.WeeklySchedule)
			public.GET("/barbers/:barber_id/availability", publicHandler.Availability)
			public.GET("/calendar", publicHandler.CalendarDays)

			if mp != nil {
				paymentHandler := handlers.NewPaymentHandler(checkoutUC, webhookUC, mp, log)
				public.POST("/checkout", paymentHandler.CreateCheckout)

				// El webhook queda fuera del grupo CSRF: lo llama la
				// pasarela, autenticada por firma HMAC.
				api.POST("/payments/webhook", paymentHandler.Webhook)
			}
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// Solo funciona mientras no exista ningún admin: da de alta la
		// primera cuenta en un deploy nuevo y después queda cerrado.
		api.POST("/auth/register", authHandler.Register)

		// ------------------------------
		// 🔐 API PRIVADA (PANEL)
		// ------------------------------
		secured := api.Group("/admin")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.Me)

			// ------------------------------
			// CATÁLOGO
			// ------------------------------
			secured.POST("/branches", catalogHandler.CreateBranch)
			secured.PATCH("/branches/:id", catalogHandler.UpdateBranch)
			secured.POST("/branches/:id/photo", mediaHandler.UploadBranchPhoto)

			secured.POST("/barbers", catalogHandler.CreateBarber)
			secured.PATCH("/barbers/:id", catalogHandler.UpdateBarber)
			secured.POST("/barbers/:barber_id/photo", mediaHandler.UploadBarberPhoto)

			secured.POST("/services", catalogHandler.CreateService)
			secured.PATCH("/services/:id", catalogHandler.UpdateService)

			// ------------------------------
			// TURNOS
			// ------------------------------
			secured.GET("/bookings", bookingAdminHandler.ListByDate)
			secured.GET("/bookings/month", bookingAdminHandler.ListByMonth)
			secured.PATCH("/bookings/:id/cancel", bookingAdminHandler.Cancel)

			secured.POST("/blocks", bookingAdminHandler.BlockSlot)
			secured.DELETE("/blocks", bookingAdminHandler.UnblockSlot)

			// ------------------------------
			// LIQUIDACIONES
			// ------------------------------
			secured.GET("/payouts", payoutHandler.Calculate)

			// ------------------------------
			// AGENDA
			// ------------------------------
			secured.GET("/barbers/:barber_id/schedule", scheduleAdminHandler.GetSchedule)
			secured.PUT("/barbers/:barber_id/schedule/weekly", scheduleAdminHandler.UpdateWeekly)
			secured.DELETE("/barbers/:barber_id/schedule/weekly/:weekday", scheduleAdminHandler.DeleteWeekly)

			secured.POST("/barbers/:barber_id/schedule/exceptional", scheduleAdminHandler.AddExceptionalDay)
			secured.DELETE("/barbers/:barber_id/schedule/exceptional/:id", scheduleAdminHandler.DeleteExceptionalDay)
		}
	}

	return &Wired{
		Slots:    slots,
		Checkout: checkoutUC,
		Webhook:  webhookUC,
		Reaper:   reaperUC,
	}
}
