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
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/velmor/VCS-ConsultationService/internal/api/handlers/create_booking"
	createPromoCodeHandler "github.com/velmor/VCS-ConsultationService/internal/api/handlers/create_promocode"
	deletePromoCodeHandler "github.com/velmor/VCS-ConsultationService/internal/api/handlers/delete_promocode"
	getAvailabilityHandler "github.com/velmor/VCS-ConsultationService/internal/api/handlers/get_availability"
	getPromoCodeHandler "github.com/velmor/VCS-ConsultationService/internal/api/handlers/get_promocode"
	getPromoCodesHandler "github.com/velmor/VCS-ConsultationService/internal/api/handlers/get_promocodes"
	updatePromoCodeHandler "github.com/velmor/VCS-ConsultationService/internal/api/handlers/update_promocode"
	validatePromoHandler "github.com/velmor/VCS-ConsultationService/internal/api/handlers/validate_promo"
	"github.com/velmor/VCS-ConsultationService/internal/api/middleware"
	"github.com/velmor/VCS-ConsultationService/internal/config"
	promoRepo "github.com/velmor/VCS-ConsultationService/internal/infra/storage/promocode"
	fieldServiceClient "github.com/velmor/VCS-ConsultationService/internal/integrations/fieldservice"
	messagingClient "github.com/velmor/VCS-ConsultationService/internal/integrations/messaging"
	paymentsClient "github.com/velmor/VCS-ConsultationService/internal/integrations/payments"
	"github.com/velmor/VCS-ConsultationService/internal/notifier"
	promoCodesService "github.com/velmor/VCS-ConsultationService/internal/service/promocodes"
	createBookingUC "github.com/velmor/VCS-ConsultationService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/velmor/VCS-ConsultationService/internal/usecase/get_availability"
	validatePromoUC "github.com/velmor/VCS-ConsultationService/internal/usecase/validate_promo"
	"github.com/velmor/VCS-ConsultationService/pkg/dbmetrics"
	"github.com/velmor/VCS-ConsultationService/pkg/logger"
	"github.com/velmor/VCS-ConsultationService/pkg/metrics"
	"github.com/velmor/VCS-ConsultationService/pkg/simpletxmanager"
	"github.com/velmor/VCS-ConsultationService/pkg/txmanager"
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

	log.Info("Starting VCS-ConsultationService...")
	log.Info("Configuration loaded from config.toml")

	// Доменные параметры из конфигурации
	hours, err := cfg.BusinessHours()
	if err != nil {
		log.Fatal("Invalid business hours configuration: %v", err)
	}
	mappings := cfg.ServiceTypeMappings()
	log.Info("Loaded %d service type mappings, business hours %s-%s",
		len(mappings), cfg.Hours.Open, cfg.Hours.Close)

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

	// Инициализируем интеграционных клиентов
	fieldService := fieldServiceClient.NewClient(
		cfg.FieldService.URL,
		cfg.FieldService.APIKey,
		time.Duration(cfg.FieldService.Timeout)*time.Second,
		log,
	)
	payments := paymentsClient.NewClient(
		cfg.Payments.URL,
		cfg.Payments.APIKey,
		time.Duration(cfg.Payments.Timeout)*time.Second,
		log,
	)
	messaging := messagingClient.NewClient(
		cfg.Messaging.URL,
		cfg.Messaging.APIKey,
		time.Duration(cfg.Messaging.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (FieldService=%s, Payments=%s, Messaging=%s)",
		cfg.FieldService.URL, cfg.Payments.URL, cfg.Messaging.URL)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var promoRepository *promoRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		promoRepository = promoRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		promoRepository = promoRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Очередь уведомлений
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	notificationEnqueuer := notifier.NewEnqueuer(asynqClient, log)
	notificationWorker := notifier.NewWorker(redisOpt, messaging, log)

	go func() {
		if err := notificationWorker.Run(); err != nil {
			log.Fatal("Notification worker failed: %v", err)
		}
	}()
	log.Info("Notification queue initialized (redis=%s)", cfg.Redis.Addr)

	// Инициализируем сервисы
	promoSvc := promoCodesService.NewService(promoRepository, txMgr, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		mappings,
		hours,
		cfg.Booking.MinBookingNoticeMinutes,
		fieldService,
		log,
	)

	validatePromoUseCase := validatePromoUC.NewUseCase(promoRepository, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		mappings,
		hours,
		getAvailabilityUseCase,
		validatePromoUseCase,
		promoRepository,
		fieldService,
		payments,
		notificationEnqueuer,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, cfg.Booking.DefaultRangeDays, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	validatePromo := validatePromoHandler.NewHandler(validatePromoUseCase, log)
	createPromoCode := createPromoCodeHandler.NewHandler(promoSvc, log)
	getPromoCodes := getPromoCodesHandler.NewHandler(promoSvc, log)
	getPromoCode := getPromoCodeHandler.NewHandler(promoSvc, log)
	updatePromoCode := updatePromoCodeHandler.NewHandler(promoSvc, log)
	deletePromoCode := deletePromoCodeHandler.NewHandler(promoSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты для бронирования
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Проверка промокода
	api.HandleFunc("/promocodes/validate", validatePromo.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Администрирование промокодов ---
	protected.HandleFunc("/promocodes", createPromoCode.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/promocodes", getPromoCodes.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/promocodes/{code}", getPromoCode.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/promocodes/{code}", updatePromoCode.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/promocodes/{code}", deletePromoCode.Handle).Methods(http.MethodDelete)

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

	// Останавливаем воркер и клиент очереди
	notificationWorker.Shutdown()
	if err := notificationEnqueuer.Close(); err != nil {
		log.Error("Failed to close notification queue client: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
