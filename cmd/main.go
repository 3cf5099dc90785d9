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

	acceptRequestHandler "github.com/m04kA/PBR-SchedulingService/internal/api/handlers/accept_request"
	cancelRequestHandler "github.com/m04kA/PBR-SchedulingService/internal/api/handlers/cancel_request"
	checkConflictHandler "github.com/m04kA/PBR-SchedulingService/internal/api/handlers/check_conflict"
	createRequestHandler "github.com/m04kA/PBR-SchedulingService/internal/api/handlers/create_request"
	getDailyAvailabilityHandler "github.com/m04kA/PBR-SchedulingService/internal/api/handlers/get_daily_availability"
	getPackageRequestsHandler "github.com/m04kA/PBR-SchedulingService/internal/api/handlers/get_package_requests"
	getRequestHandler "github.com/m04kA/PBR-SchedulingService/internal/api/handlers/get_request"
	rejectRequestHandler "github.com/m04kA/PBR-SchedulingService/internal/api/handlers/reject_request"
	setExtensionHandler "github.com/m04kA/PBR-SchedulingService/internal/api/handlers/set_extension"
	"github.com/m04kA/PBR-SchedulingService/internal/api/middleware"
	"github.com/m04kA/PBR-SchedulingService/internal/config"
	availabilityCache "github.com/m04kA/PBR-SchedulingService/internal/infra/cache/availability"
	confirmedRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/confirmed"
	packagesRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/packages"
	requestRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/request"
	notifyServiceClient "github.com/m04kA/PBR-SchedulingService/internal/integrations/notifyservice"
	paymentServiceClient "github.com/m04kA/PBR-SchedulingService/internal/integrations/paymentservice"
	requestsService "github.com/m04kA/PBR-SchedulingService/internal/service/requests"
	acceptRequestUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/accept_request"
	checkConflictUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/check_conflict"
	getDailyAvailabilityUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/get_daily_availability"
	rejectRequestUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/reject_request"
	setExtensionUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/set_extension"
	"github.com/m04kA/PBR-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/PBR-SchedulingService/pkg/logger"
	"github.com/m04kA/PBR-SchedulingService/pkg/metrics"
	"github.com/m04kA/PBR-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/PBR-SchedulingService/pkg/txmanager"
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

	log.Info("Starting PBR-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Правила планирования (буферы, потолок продления, рабочие часы)
	rules, err := cfg.Scheduling.Rules()
	if err != nil {
		log.Fatal("Invalid scheduling configuration: %v", err)
	}
	log.Info("Scheduling rules: buffer=%dm, ceiling=%dh, base=%dh",
		rules.BufferMinutes, rules.ExtensionCeilingHours, rules.DefaultBaseDurationHours)

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

	// Инициализируем redis-кеш отчёта доступности (если включен)
	var (
		dayCache      *availabilityCache.Cache
		availCacheUC  getDailyAvailabilityUC.AvailabilityCache
		acceptCacheUC acceptRequestUC.AvailabilityCache
		extCacheUC    setExtensionUC.AvailabilityCache
	)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Address, err)
		}
		defer rdb.Close()

		dayCache = availabilityCache.New(rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		availCacheUC, acceptCacheUC, extCacheUC = dayCache, dayCache, dayCache
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.TTLSeconds)
	}

	// Инициализируем интеграционных клиентов
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyService=%s timeout=%ds, PaymentService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout, cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		requestRepository   *requestRepo.Repository
		confirmedRepository *confirmedRepo.Repository
		packageRepository   *packagesRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		requestRepository = requestRepo.NewRepository(wrappedDB)
		confirmedRepository = confirmedRepo.NewRepository(wrappedDB)
		packageRepository = packagesRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		requestRepository = requestRepo.NewRepository(db)
		confirmedRepository = confirmedRepo.NewRepository(db)
		packageRepository = packagesRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	requestsSvc := requestsService.NewService(
		requestRepository,
		packageRepository,
		log,
	)

	// Инициализируем use cases
	checkConflictUseCase := checkConflictUC.NewUseCase(
		requestRepository,
		packageRepository,
		rules,
		log,
	)
	getDailyAvailabilityUseCase := getDailyAvailabilityUC.NewUseCase(
		requestRepository,
		packageRepository,
		availCacheUC,
		rules,
		log,
	)
	acceptRequestUseCase := acceptRequestUC.NewUseCase(
		requestRepository,
		confirmedRepository,
		txMgr,
		acceptCacheUC,
		notifyClient,
		log,
	)
	rejectRequestUseCase := rejectRequestUC.NewUseCase(
		requestRepository,
		confirmedRepository,
		txMgr,
		notifyClient,
		log,
	)
	setExtensionUseCase := setExtensionUC.NewUseCase(
		requestRepository,
		confirmedRepository,
		packageRepository,
		txMgr,
		extCacheUC,
		paymentClient,
		notifyClient,
		rules,
		log,
	)

	// Инициализируем handlers
	checkConflict := checkConflictHandler.NewHandler(checkConflictUseCase, log)
	getDailyAvailability := getDailyAvailabilityHandler.NewHandler(getDailyAvailabilityUseCase, log)
	acceptRequest := acceptRequestHandler.NewHandler(acceptRequestUseCase, log)
	rejectRequest := rejectRequestHandler.NewHandler(rejectRequestUseCase, log)
	setExtension := setExtensionHandler.NewHandler(setExtensionUseCase, log)
	createRequest := createRequestHandler.NewHandler(requestsSvc, log)
	getRequest := getRequestHandler.NewHandler(requestsSvc, log)
	getPackageRequests := getPackageRequestsHandler.NewHandler(requestsSvc, log)
	cancelRequest := cancelRequestHandler.NewHandler(requestsSvc, log)

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

	// Дневной отчёт доступности пакетов
	api.HandleFunc("/availability", getDailyAvailability.Handle).Methods(http.MethodGet)

	// Консультативная проверка конфликта новой заявки
	api.HandleFunc("/conflicts/check", checkConflict.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки клиентов ---
	// Создание заявки
	protected.HandleFunc("/requests", createRequest.Handle).Methods(http.MethodPost)

	// Получение заявки по ID
	protected.HandleFunc("/requests/{requestId}", getRequest.Handle).Methods(http.MethodGet)

	// Отмена заявки её автором
	protected.HandleFunc("/requests/{requestId}/cancel", cancelRequest.Handle).Methods(http.MethodPost)

	// --- Решения менеджера ---
	managed := protected.PathPrefix("").Subrouter()
	managed.Use(middleware.ManagerOnly)

	// Принятие заявки с каскадным отклонением конкурентов
	managed.HandleFunc("/requests/{requestId}/accept", acceptRequest.Handle).Methods(http.MethodPost)

	// Отклонение заявки
	managed.HandleFunc("/requests/{requestId}/reject", rejectRequest.Handle).Methods(http.MethodPost)

	// Изменение продления подтверждённого бронирования
	managed.HandleFunc("/bookings/{bookingId}/extension", setExtension.Handle).Methods(http.MethodPatch)

	// Список заявок пакета
	managed.HandleFunc("/packages/{packageId}/requests", getPackageRequests.Handle).Methods(http.MethodGet)

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

	log.Info("Server stopped")
}
