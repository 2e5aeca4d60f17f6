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

	bookPlaceHandler "github.com/candilib/DTE-BookingService/internal/api/handlers/book_place"
	cancelReservationHandler "github.com/candilib/DTE-BookingService/internal/api/handlers/cancel_reservation"
	findCentreDatesHandler "github.com/candilib/DTE-BookingService/internal/api/handlers/find_centre_dates"
	getAvailableDatesHandler "github.com/candilib/DTE-BookingService/internal/api/handlers/get_available_dates"
	getBookingConfigHandler "github.com/candilib/DTE-BookingService/internal/api/handlers/get_booking_config"
	getReservationHandler "github.com/candilib/DTE-BookingService/internal/api/handlers/get_reservation"
	hasAvailablePlacesHandler "github.com/candilib/DTE-BookingService/internal/api/handlers/has_available_places"
	"github.com/candilib/DTE-BookingService/internal/api/middleware"
	"github.com/candilib/DTE-BookingService/internal/config"
	candidatRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/candidat"
	centreRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/centre"
	placeRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/place"
	"github.com/candilib/DTE-BookingService/internal/integrations/mailer"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
	reservationsService "github.com/candilib/DTE-BookingService/internal/service/reservations"
	bookPlaceUC "github.com/candilib/DTE-BookingService/internal/usecase/book_place"
	cancelReservationUC "github.com/candilib/DTE-BookingService/internal/usecase/cancel_reservation"
	getAvailableDatesUC "github.com/candilib/DTE-BookingService/internal/usecase/get_available_dates"
	"github.com/candilib/DTE-BookingService/pkg/dbmetrics"
	"github.com/candilib/DTE-BookingService/pkg/logger"
	"github.com/candilib/DTE-BookingService/pkg/metrics"
	"github.com/candilib/DTE-BookingService/pkg/simpletxmanager"
	"github.com/candilib/DTE-BookingService/pkg/txmanager"
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

	log.Info("Starting DTE-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Бизнес-константы бронирования передаются явно в конструкторы
	rules := eligibility.Rules{
		DelayToBook:      cfg.Booking.DelayToBook,
		TimeoutToRetry:   cfg.Booking.TimeoutToRetry,
		DaysForbidCancel: cfg.Booking.DaysForbidCancel,
	}
	log.Info("Booking rules: delay_to_book=%d, timeout_to_retry=%d, days_forbid_cancel=%d",
		rules.DelayToBook, rules.TimeoutToRetry, rules.DaysForbidCancel)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Подключаемся к почтовой очереди (если уведомления включены)
	var notifierClient *mailer.Client
	if cfg.Notifier.Enabled {
		notifierClient, err = mailer.NewClient(cfg.Notifier.URL, cfg.Notifier.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to notification broker: %v", err)
		}
		defer notifierClient.Close()
		log.Info("Notification broker connected (exchange=%s)", cfg.Notifier.Exchange)
	} else {
		log.Warn("Notifications disabled, cancellation emails will not be sent")
	}

	var notifier cancelReservationUC.Notifier
	if notifierClient != nil {
		notifier = notifierClient
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		placeRepository    *placeRepo.Repository
		candidatRepository *candidatRepo.Repository
		centreRepository   *centreRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		placeRepository = placeRepo.NewRepository(wrappedDB)
		candidatRepository = candidatRepo.NewRepository(wrappedDB)
		centreRepository = centreRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		placeRepository = placeRepo.NewRepository(db)
		candidatRepository = candidatRepo.NewRepository(db)
		centreRepository = centreRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(placeRepository, rules, log)

	// Инициализируем use cases
	bookPlaceUseCase := bookPlaceUC.NewUseCase(
		placeRepository,
		candidatRepository,
		centreRepository,
		rules,
		txMgr,
		log,
	)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		placeRepository,
		candidatRepository,
		rules,
		txMgr,
		notifier,
		log,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		placeRepository,
		centreRepository,
		rules,
		log,
	)

	// Инициализируем handlers
	bookPlace := bookPlaceHandler.NewHandler(bookPlaceUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	findCentreDates := findCentreDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	hasAvailablePlaces := hasAvailablePlacesHandler.NewHandler(getAvailableDatesUseCase, log)
	getBookingConfig := getBookingConfigHandler.NewHandler(rules)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Публичные константы бронирования
	api.HandleFunc("/config", getBookingConfig.Handle).Methods(http.MethodGet)

	// Поиск дат по названию центра (до маршрута с {centreId})
	api.HandleFunc("/centres/dates", findCentreDates.Handle).Methods(http.MethodGet)

	// Доступные даты центра
	api.HandleFunc("/centres/{centreId}/dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// Свободные слоты центра на конкретный день
	api.HandleFunc("/centres/{centreId}/dates/{date}", hasAvailablePlaces.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронь кандидата ---
	// Бронирование места
	protected.HandleFunc("/candidats/{candidatId}/reservation", bookPlace.Handle).Methods(http.MethodPost)

	// Текущая бронь
	protected.HandleFunc("/candidats/{candidatId}/reservation", getReservation.Handle).Methods(http.MethodGet)

	// Отмена брони
	protected.HandleFunc("/candidats/{candidatId}/reservation", cancelReservation.Handle).Methods(http.MethodDelete)

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
