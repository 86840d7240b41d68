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

	advanceStateHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/advance_reservation_state"
	cancelReservationHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/cancel_reservation"
	createBlockerHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/create_blocker"
	createReservationHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/create_reservation"
	deleteBlockerHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/delete_blocker"
	getCompanyReservationsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_company_reservations"
	getDayScheduleHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_day_schedule"
	getReservationHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_user_reservations"
	listBlockersHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_blockers"
	updateReservationHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/config"
	blockerRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/blocker"
	outboxRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/outbox"
	reservationRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/reservation"
	calendarServiceClient "github.com/m04kA/SMC-CarWashService/internal/integrations/calendarservice"
	notifyServiceClient "github.com/m04kA/SMC-CarWashService/internal/integrations/notifyservice"
	tenantServiceClient "github.com/m04kA/SMC-CarWashService/internal/integrations/tenantservice"
	blockersService "github.com/m04kA/SMC-CarWashService/internal/service/blockers"
	reservationsService "github.com/m04kA/SMC-CarWashService/internal/service/reservations"
	createBlockerUC "github.com/m04kA/SMC-CarWashService/internal/usecase/create_blocker"
	createReservationUC "github.com/m04kA/SMC-CarWashService/internal/usecase/create_reservation"
	getDayScheduleUC "github.com/m04kA/SMC-CarWashService/internal/usecase/get_day_schedule"
	updateReservationUC "github.com/m04kA/SMC-CarWashService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-CarWashService/internal/worker"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
	"github.com/m04kA/SMC-CarWashService/pkg/metrics"
	"github.com/m04kA/SMC-CarWashService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CarWashService/pkg/txmanager"
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

	log.Info("Starting SMC-CarWashService...")
	log.Info("Configuration loaded from config.toml")

	// Снимок конфигурации движка бронирования
	engineConfig, err := config.NewEngineConfigProvider(cfg)
	if err != nil {
		log.Fatal("Failed to build engine config: %v", err)
	}

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
	tenantClient := tenantServiceClient.NewClient(
		cfg.TenantService.URL,
		time.Duration(cfg.TenantService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	calendarClient := calendarServiceClient.NewClient(
		cfg.CalendarService.URL,
		time.Duration(cfg.CalendarService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (TenantService=%s, NotifyService=%s, CalendarService=%s)",
		cfg.TenantService.URL, cfg.NotifyService.URL, cfg.CalendarService.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		blockerRepository     *blockerRepo.Repository
		outboxRepository      *outboxRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		blockerRepository = blockerRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		blockerRepository = blockerRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		outboxRepository,
		txMgr,
		log,
	)
	blockerSvc := blockersService.NewService(blockerRepository, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		blockerRepository,
		tenantClient,
		engineConfig,
		txMgr,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		blockerRepository,
		tenantClient,
		engineConfig,
		txMgr,
		log,
	)
	createBlockerUseCase := createBlockerUC.NewUseCase(
		blockerRepository,
		reservationRepository,
		outboxRepository,
		txMgr,
		log,
	)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		reservationRepository,
		blockerRepository,
		engineConfig,
		log,
	)

	// Запускаем диспетчер outbox событий
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	var dispatcherMetrics worker.Metrics = noopMetrics{}
	if cfg.Metrics.Enabled {
		dispatcherMetrics = metricsCollector
	}

	dispatcher := worker.NewOutboxDispatcher(
		outboxRepository,
		notifyClient,
		calendarClient,
		txMgr,
		dispatcherMetrics,
		worker.Config{
			PollInterval: time.Duration(cfg.Worker.PollIntervalSeconds) * time.Second,
			BatchSize:    cfg.Worker.BatchSize,
			MaxAttempts:  cfg.Worker.MaxAttempts,
			BaseDelay:    time.Duration(cfg.Worker.BaseDelaySeconds) * time.Second,
		},
		log,
	)
	go dispatcher.Run(workerCtx)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	advanceState := advanceStateHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getCompanyReservations := getCompanyReservationsHandler.NewHandler(reservationSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	createBlocker := createBlockerHandler.NewHandler(createBlockerUseCase, log)
	listBlockers := listBlockersHandler.NewHandler(blockerSvc, log)
	deleteBlocker := deleteBlockerHandler.NewHandler(blockerSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
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

	// Занятость слотов на день
	api.HandleFunc("/schedule/{date}", getDaySchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/state", advanceState.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{companyId}/reservations", getCompanyReservations.Handle).Methods(http.MethodGet)

	// --- Блокировки (для сотрудников) ---
	protected.HandleFunc("/blockers", createBlocker.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blockers", listBlockers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/blockers/{blockerId}", deleteBlocker.Handle).Methods(http.MethodDelete)

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

	// Останавливаем воркер и сбор метрик connection pool
	stopWorker()
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

// noopMetrics заглушка счетчиков, когда метрики выключены
type noopMetrics struct{}

func (noopMetrics) IncOutboxEvent(eventType, result string) {}
