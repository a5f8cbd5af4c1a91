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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/cancel_booking"
	checkConflictHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/check_conflict"
	createBookingHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/create_booking"
	createEquipmentHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/create_equipment"
	deleteEquipmentHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/delete_equipment"
	getAvailabilityHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/get_booking"
	getEquipmentHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/get_equipment"
	getEquipmentBookingsHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/get_equipment_bookings"
	getUserBookingsHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/get_user_bookings"
	listEquipmentHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/list_equipment"
	updateEquipmentStatusHandler "github.com/m04kA/gym-booking-service/internal/api/handlers/update_equipment_status"
	"github.com/m04kA/gym-booking-service/internal/api/middleware"
	"github.com/m04kA/gym-booking-service/internal/config"
	"github.com/m04kA/gym-booking-service/internal/infra/locker"
	bookingRepo "github.com/m04kA/gym-booking-service/internal/infra/storage/booking"
	equipmentRepo "github.com/m04kA/gym-booking-service/internal/infra/storage/equipment"
	bookingsService "github.com/m04kA/gym-booking-service/internal/service/bookings"
	"github.com/m04kA/gym-booking-service/internal/service/scheduling"
	checkConflictUC "github.com/m04kA/gym-booking-service/internal/usecase/check_conflict"
	createBookingUC "github.com/m04kA/gym-booking-service/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/gym-booking-service/internal/usecase/get_availability"
	updateEquipmentStatusUC "github.com/m04kA/gym-booking-service/internal/usecase/update_equipment_status"
	"github.com/m04kA/gym-booking-service/pkg/dbmetrics"
	"github.com/m04kA/gym-booking-service/pkg/logger"
	"github.com/m04kA/gym-booking-service/pkg/metrics"
	"github.com/m04kA/gym-booking-service/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting gym-booking-service...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid schedule timezone: %v", err)
	}

	// Инициализируем метрики (если включены). nil *metrics.Metrics безопасен для всех вызовов
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

	// Блокировка оборудования: Redis для нескольких инстансов, иначе в памяти процесса
	var equipmentLocker locker.Locker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		equipmentLocker = locker.NewRedisLocker(
			redisClient,
			time.Duration(cfg.Redis.LockTTL)*time.Second,
			time.Duration(cfg.Redis.LockWaitMs)*time.Millisecond,
			log,
		)
		log.Info("Redis equipment lock enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTL)
	} else {
		equipmentLocker = locker.NewMemoryLocker()
		log.Info("In-process equipment lock enabled")
	}

	// Инициализируем репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	equipmentRepository := equipmentRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Движок бронирования
	engine := scheduling.NewEngine(
		scheduling.WithLocation(location),
		scheduling.WithMaxRecurrenceDays(cfg.Schedule.MaxRecurrenceDays),
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		equipmentRepository,
		location,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		equipmentRepository,
		engine,
		equipmentLocker,
		txMgr,
		metricsCollector,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		equipmentRepository,
		getAvailabilityUC.Schedule{
			OpenHour:    cfg.Schedule.OpenHour,
			CloseHour:   cfg.Schedule.CloseHour,
			SlotMinutes: cfg.Schedule.SlotMinutes,
			Location:    location,
		},
		log,
	)

	checkConflictUseCase := checkConflictUC.NewUseCase(
		bookingRepository,
		equipmentRepository,
		location,
		log,
	)

	updateEquipmentStatusUseCase := updateEquipmentStatusUC.NewUseCase(
		bookingRepository,
		equipmentRepository,
		equipmentLocker,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, location, log)
	checkConflict := checkConflictHandler.NewHandler(checkConflictUseCase, location, log)
	updateEquipmentStatus := updateEquipmentStatusHandler.NewHandler(updateEquipmentStatusUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getEquipmentBookings := getEquipmentBookingsHandler.NewHandler(bookingSvc, location, log)
	listEquipment := listEquipmentHandler.NewHandler(bookingSvc, log)
	getEquipment := getEquipmentHandler.NewHandler(bookingSvc, log)
	createEquipment := createEquipmentHandler.NewHandler(bookingSvc, log)
	deleteEquipment := deleteEquipmentHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог оборудования
	api.HandleFunc("/equipment", listEquipment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{equipmentId}", getEquipment.Handle).Methods(http.MethodGet)

	// Сетка доступности на день
	api.HandleFunc("/equipment/{equipmentId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Проверка интервала на конфликты (живая подсказка в форме бронирования)
	api.HandleFunc("/equipment/{equipmentId}/conflicts", checkConflict.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Оборудование (для персонала) ---
	protected.HandleFunc("/equipment/{equipmentId}/bookings", getEquipmentBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/equipment/{equipmentId}/status", updateEquipmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/equipment", createEquipment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/equipment/{equipmentId}", deleteEquipment.Handle).Methods(http.MethodDelete)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
