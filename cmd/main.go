package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	applyStandardHoursHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/apply_standard_hours"
	blockAvailabilityHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/block_availability"
	copyWeekHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/copy_week"
	createBookingHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/create_booking"
	exportArtistBookingsHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/export_artist_bookings"
	getArtistBookingsHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/get_artist_bookings"
	getArtistSettingsHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/get_artist_settings"
	getArtistStatsHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/get_artist_stats"
	getAvailabilityHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/get_customer_bookings"
	setAvailabilityWindowHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/set_availability_window"
	updateArtistSettingsHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/update_artist_settings"
	updateBookingStatusHandler "github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-ArtistScheduling/internal/config"
	"github.com/m04kA/SMC-ArtistScheduling/internal/infra/cache/slots"
	artistRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/artist"
	availabilityRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/booking"
	availabilityService "github.com/m04kA/SMC-ArtistScheduling/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ArtistScheduling/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-ArtistScheduling/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-ArtistScheduling/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ArtistScheduling/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/logger"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/metrics"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/txmanager"
)

// poolStatsInterval период сбора метрик connection pool
const poolStatsInterval = 15 * time.Second

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-ArtistScheduling...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены). nil коллектор ничего не пишет.
	var metricsCollector *metrics.Metrics
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
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.NewDB(db, metricsCollector)

	var poolStats *dbmetrics.StatsCollector
	if cfg.Metrics.Enabled {
		poolStats = dbmetrics.NewStatsCollector(db, metricsCollector, cfg.Database.DBName, poolStatsInterval)
		poolStats.Start()
		log.Info("Database pool metrics collection started")
	}

	txMgr := txmanager.New(wrappedDB, log)

	// Кэш слотов
	var slotCache slots.Cache = slots.Noop{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		redisCtx, redisCancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(redisCtx).Err(); err != nil {
			// Кэш не обязателен: ошибки чтения логируются, слоты считаются по БД
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to redis at %s (slots ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotsTTL)
		}
		redisCancel()

		slotCache = slots.NewRedisCache(redisClient, cfg.Redis.SlotsTTLDuration())
	} else {
		log.Info("Redis disabled, slot cache is off")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	artistRepository := artistRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(
		artistRepository,
		settingsService.Defaults{
			SlotGranularityMinutes:  cfg.Scheduling.SlotGranularityMinutes,
			DefaultDurationMinutes:  cfg.Scheduling.DefaultDurationMinutes,
			BufferMinutes:           cfg.Scheduling.BufferMinutes,
			AdvanceBookingDays:      cfg.Scheduling.AdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Scheduling.MinBookingNoticeMinutes,
		},
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		artistRepository,
		slotCache,
		txMgr,
		metricsCollector,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		artistRepository,
		slotCache,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		artistRepository,
		settingsSvc,
		availabilityRepository,
		bookingRepository,
		slotCache,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		artistRepository,
		settingsSvc,
		availabilityRepository,
		bookingRepository,
		slotCache,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getArtistBookings := getArtistBookingsHandler.NewHandler(bookingSvc, log)
	exportArtistBookings := exportArtistBookingsHandler.NewHandler(bookingSvc, log)
	getArtistStats := getArtistStatsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	setAvailabilityWindow := setAvailabilityWindowHandler.NewHandler(availabilitySvc, log)
	copyWeek := copyWeekHandler.NewHandler(availabilitySvc, log)
	applyStandardHours := applyStandardHoursHandler.NewHandler(availabilitySvc, log)
	blockAvailability := blockAvailabilityHandler.NewHandler(availabilitySvc, log)
	getArtistSettings := getArtistSettingsHandler.NewHandler(settingsSvc, log)
	updateArtistSettings := updateArtistSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.Server.RequestTimeout > 0 {
		api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты артиста на дату
	api.HandleFunc("/artists/{artistId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Окна доступности за диапазон дат
	api.HandleFunc("/artists/{artistId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Настройки артиста
	api.HandleFunc("/artists/{artistId}/settings", getArtistSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	var createHandler http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		createHandler = limiter.Middleware(createHandler)
		log.Info("Booking rate limit enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	protected.Handle("/bookings", createHandler).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет артиста ---
	protected.HandleFunc("/artists/{artistId}/bookings", getArtistBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/artists/{artistId}/bookings/export", exportArtistBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/artists/{artistId}/bookings/stats", getArtistStats.Handle).Methods(http.MethodGet)

	// Управление доступностью
	protected.HandleFunc("/artists/{artistId}/availability/copy-week", copyWeek.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/artists/{artistId}/availability/standard-hours", applyStandardHours.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/artists/{artistId}/availability/block", blockAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/artists/{artistId}/availability/{date}", setAvailabilityWindow.Handle).Methods(http.MethodPut)

	// Настройки
	protected.HandleFunc("/artists/{artistId}/settings", updateArtistSettings.Handle).Methods(http.MethodPut)

	// CORS и восстановление после panic
	handler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.UserIDHeader, middleware.RequestIDHeader}),
		gorillaHandlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)(r)
	handler = gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(true))(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	if poolStats != nil {
		poolStats.Stop()
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
