package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockSlotHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/block_slot"
	createBookingHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/get_booking"
	getWeekSlotsHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/get_week_slots"
	listBlockedSlotsHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/list_blocked_slots"
	listBookingsHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/list_bookings"
	resendCodeHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/resend_code"
	unblockSlotHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/unblock_slot"
	updateBookingStatusHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/update_booking_status"
	verifyCodeHandler "github.com/m04kA/SMC-InspectionBooking/internal/api/handlers/verify_code"
	"github.com/m04kA/SMC-InspectionBooking/internal/api/middleware"
	"github.com/m04kA/SMC-InspectionBooking/internal/config"
	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/internal/infra/cache/cooldown"
	blockedSlotRepo "github.com/m04kA/SMC-InspectionBooking/internal/infra/storage/blockedslot"
	bookingRepo "github.com/m04kA/SMC-InspectionBooking/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-InspectionBooking/internal/infra/storage/customer"
	"github.com/m04kA/SMC-InspectionBooking/internal/integrations/eventbus"
	"github.com/m04kA/SMC-InspectionBooking/internal/integrations/mailer"
	"github.com/m04kA/SMC-InspectionBooking/internal/integrations/sms"
	blockedSlotsService "github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots"
	bookingsService "github.com/m04kA/SMC-InspectionBooking/internal/service/bookings"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/reservation"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/verification"
	createBookingUC "github.com/m04kA/SMC-InspectionBooking/internal/usecase/create_booking"
	getWeekSlotsUC "github.com/m04kA/SMC-InspectionBooking/internal/usecase/get_week_slots"
	"github.com/m04kA/SMC-InspectionBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionBooking/pkg/logger"
	"github.com/m04kA/SMC-InspectionBooking/pkg/metrics"
	"github.com/m04kA/SMC-InspectionBooking/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-InspectionBooking...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	rules := domain.NewCalendarRules(cfg.Booking.CapacityPerSlot, loc)
	log.Info("Calendar: timezone=%s, capacity_per_slot=%d", loc, rules.CapacityPerSlot)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB, loc)
	blockedSlotRepository := blockedSlotRepo.NewRepository(wrappedDB, loc)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграционных клиентов
	mailClient := mailer.NewClient(
		cfg.Mailer.URL,
		cfg.Mailer.APIKey,
		cfg.Mailer.From,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	smsClient := sms.NewClient(
		cfg.SMS.URL,
		cfg.SMS.APIKey,
		cfg.SMS.Sender,
		time.Duration(cfg.SMS.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Mailer=%s timeout=%ds, SMS=%s timeout=%ds)",
		cfg.Mailer.URL, cfg.Mailer.Timeout, cfg.SMS.URL, cfg.SMS.Timeout)

	// Уведомление администрации: событие в RabbitMQ или письмо на admin_email
	var adminNotifier verification.AdminNotifier = mailer.NewAdminNotifier(mailClient, cfg.Booking.AdminEmail)
	if cfg.RabbitMQ.Enabled {
		publisher, err := eventbus.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		adminNotifier = publisher
		log.Info("Admin notifications published to exchange %s", cfg.RabbitMQ.Exchange)
	}

	// Пауза повторной отправки кода (Redis); без Redis пауза не действует
	var resendCooldown verification.ResendCooldown
	if cfg.Redis.Enabled {
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cooldown.NewClient(pingCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancelPing()
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		resendCooldown = cooldown.NewStore(redisClient)
		log.Info("Resend cooldown enabled (redis=%s, cooldown=%ds)", cfg.Redis.Addr, cfg.Booking.ResendCooldownSeconds)
	}

	// Инициализируем сервисы
	validator := reservation.NewValidator(
		bookingRepository,
		blockedSlotRepository,
		rules,
		metricsCollector,
		log,
	)
	verificationSvc := verification.NewService(
		bookingRepository,
		txMgr,
		mailClient,
		smsClient,
		adminNotifier,
		verification.RandomCodeGenerator{},
		verification.NewBcryptHasher(cfg.Booking.BcryptCost),
		resendCooldown,
		verification.Config{
			CodeTTL:        cfg.Booking.CodeTTL(),
			ResendCooldown: cfg.Booking.ResendCooldown(),
		},
		metricsCollector,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		log,
	)
	blockedSlotSvc := blockedSlotsService.NewService(
		blockedSlotRepository,
		rules,
		log,
	)

	// Инициализируем use cases
	getWeekSlotsUseCase := getWeekSlotsUC.NewUseCase(
		bookingRepository,
		blockedSlotRepository,
		rules,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		validator,
		verificationSvc,
		txMgr,
		rules,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getWeekSlots := getWeekSlotsHandler.NewHandler(getWeekSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	verifyCode := verifyCodeHandler.NewHandler(verificationSvc, log)
	resendCode := resendCodeHandler.NewHandler(verificationSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	blockSlot := blockSlotHandler.NewHandler(blockedSlotSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(blockedSlotSvc, log)
	listBlockedSlots := listBlockedSlotsHandler.NewHandler(blockedSlotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Сетка слотов на неделю
	api.HandleFunc("/slots/week", getWeekSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Состояние бронирования
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// --- Подтверждение (ограничение частоты по IP) ---
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
	verificationRoutes := api.PathPrefix("/bookings/{bookingId}").Subrouter()
	verificationRoutes.Use(limiter.Middleware)

	verificationRoutes.HandleFunc("/verify", verifyCode.Handle).Methods(http.MethodPost)
	verificationRoutes.HandleFunc("/resend", resendCode.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-Admin-Token или Authorization: Bearer)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))
	if cfg.Admin.Token == "" {
		log.Warn("Admin token is not configured, admin routes are disabled")
	}

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Блокировки слотов ---
	admin.HandleFunc("/blocked-slots", listBlockedSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-slots", blockSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-slots/{blockedSlotId}", unblockSlot.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
