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

	addTimeOffHandler "github.com/NikoCousin/book-am/internal/api/handlers/add_time_off"
	createBookingHandler "github.com/NikoCousin/book-am/internal/api/handlers/create_booking"
	deleteTimeOffHandler "github.com/NikoCousin/book-am/internal/api/handlers/delete_time_off"
	getAvailabilityHandler "github.com/NikoCousin/book-am/internal/api/handlers/get_availability"
	getBookingHandler "github.com/NikoCousin/book-am/internal/api/handlers/get_booking"
	getBusinessHandler "github.com/NikoCousin/book-am/internal/api/handlers/get_business"
	getBusinessBookingsHandler "github.com/NikoCousin/book-am/internal/api/handlers/get_business_bookings"
	getStaffHandler "github.com/NikoCousin/book-am/internal/api/handlers/get_staff"
	rescheduleBookingHandler "github.com/NikoCousin/book-am/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/NikoCousin/book-am/internal/api/handlers/update_booking_status"
	updateStaffScheduleHandler "github.com/NikoCousin/book-am/internal/api/handlers/update_staff_schedule"
	"github.com/NikoCousin/book-am/internal/api/middleware"
	"github.com/NikoCousin/book-am/internal/config"
	bookingRepo "github.com/NikoCousin/book-am/internal/infra/storage/booking"
	businessRepo "github.com/NikoCousin/book-am/internal/infra/storage/business"
	customerRepo "github.com/NikoCousin/book-am/internal/infra/storage/customer"
	staffRepo "github.com/NikoCousin/book-am/internal/infra/storage/staff"
	bookingsService "github.com/NikoCousin/book-am/internal/service/bookings"
	staffService "github.com/NikoCousin/book-am/internal/service/staff"
	createBookingUC "github.com/NikoCousin/book-am/internal/usecase/create_booking"
	getAvailabilityUC "github.com/NikoCousin/book-am/internal/usecase/get_availability"
	rescheduleBookingUC "github.com/NikoCousin/book-am/internal/usecase/reschedule_booking"
	"github.com/NikoCousin/book-am/pkg/dbmetrics"
	"github.com/NikoCousin/book-am/pkg/logger"
	"github.com/NikoCousin/book-am/pkg/metrics"
	"github.com/NikoCousin/book-am/pkg/simpletxmanager"
	"github.com/NikoCousin/book-am/pkg/txmanager"
)

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

	log.Info("Starting book-am...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		businessRepository *businessRepo.Repository
		staffRepository    *staffRepo.Repository
		customerRepository *customerRepo.Repository
	)

	// Интерфейс transaction manager, общий для usecases и сервисов
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		businessRepository = businessRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		businessRepository = businessRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &getAvailabilityUC.RealTimeProvider{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	staffSvc := staffService.NewService(staffRepository, txMgr, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUsecase(
		bookingRepository,
		businessRepository,
		staffRepository,
		timeProvider,
		log,
		cfg.Booking.SlotIntervalMinutes,
	)

	createBookingUseCase := createBookingUC.NewUsecase(
		bookingRepository,
		businessRepository,
		staffRepository,
		customerRepository,
		txMgr,
		timeProvider,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUsecase(
		bookingRepository,
		businessRepository,
		txMgr,
		timeProvider,
		log,
	)

	// Инициализируем handlers
	getBusiness := getBusinessHandler.NewHandler(businessRepository, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getStaff := getStaffHandler.NewHandler(staffSvc, log)
	updateStaffSchedule := updateStaffScheduleHandler.NewHandler(staffSvc, log)
	addTimeOff := addTimeOffHandler.NewHandler(staffSvc, log)
	deleteTimeOff := deleteTimeOffHandler.NewHandler(staffSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница бронирования, без аутентификации)
	// ============================================================

	// Публичная карточка бизнеса с услугами
	api.HandleFunc("/businesses/{slug}", getBusiness.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/businesses/{businessId:[0-9]+}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования клиентом
	api.HandleFunc("/businesses/{businessId:[0-9]+}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (дашборд владельца, требуют X-Business-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Мастера: расписания и отгулы ---
	protected.HandleFunc("/staff", getStaff.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}/schedule", updateStaffSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{staffId}/time-off", addTimeOff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/time-off/{timeOffId}", deleteTimeOff.Handle).Methods(http.MethodDelete)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
