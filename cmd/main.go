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

	cancelAppointmentHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/create_appointment"
	createShiftHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/create_shift"
	deleteShiftHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/delete_shift"
	getAppointmentHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_appointment"
	getBookableSlotsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_bookable_slots"
	getPolicyConfigHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_policy_config"
	getStaffShiftsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_staff_shifts"
	materializeShiftsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/materialize_shifts"
	putShiftTemplateHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/put_shift_template"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/reschedule_appointment"
	updatePolicyConfigHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/update_policy_config"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/appointment"
	policyRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/policy"
	shiftRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/shift"
	studioServiceClient "github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	appointmentsService "github.com/m04kA/SMC-StudioBookingService/internal/service/appointments"
	policyConfigService "github.com/m04kA/SMC-StudioBookingService/internal/service/policyconfig"
	shiftsService "github.com/m04kA/SMC-StudioBookingService/internal/service/shifts"
	createAppointmentUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/create_appointment"
	getBookableSlotsUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/get_bookable_slots"
	materializeShiftsUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/materialize_shifts"
	rescheduleAppointmentUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-StudioBookingService/pkg/db"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/logger"
	"github.com/m04kA/SMC-StudioBookingService/pkg/metrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-StudioBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-StudioBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	// Настраиваем connection pool
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := sqlDB.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.MigrationsPath != "" {
		if err := db.Migrate(cfg.Database.MigrationsPath, cfg.Database.DSN()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Инициализируем интеграционного клиента
	studioClient := studioServiceClient.NewClient(
		cfg.StudioService.URL,
		time.Duration(cfg.StudioService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (StudioService=%s timeout=%ds)",
		cfg.StudioService.URL, cfg.StudioService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		policyRepository      *policyRepo.Repository
		shiftRepository       *shiftRepo.Repository
		appointmentRepository *appointmentRepo.Repository
	)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(sqlDB, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		policyRepository = policyRepo.NewRepository(wrappedDB)
		shiftRepository = shiftRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		policyRepository = policyRepo.NewRepository(sqlDB)
		shiftRepository = shiftRepo.NewRepository(sqlDB)
		appointmentRepository = appointmentRepo.NewRepository(sqlDB)
		txMgr = simpletxmanager.NewTransactionManager(sqlDB)
	}

	// Инициализируем сервисы
	policySvc := policyConfigService.NewService(
		policyRepository,
		studioClient,
		log,
	)
	shiftsSvc := shiftsService.NewService(
		shiftRepository,
		studioClient,
		txMgr,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		policySvc,
		studioClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		shiftRepository,
		policySvc,
		studioClient,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		shiftRepository,
		policySvc,
		studioClient,
		txMgr,
		log,
	)
	getBookableSlotsUseCase := getBookableSlotsUC.NewUseCase(
		appointmentRepository,
		shiftRepository,
		policySvc,
		studioClient,
		log,
	)
	materializeShiftsUseCase := materializeShiftsUC.NewUseCase(
		shiftRepository,
		studioClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getPolicyConfig := getPolicyConfigHandler.NewHandler(policySvc, log)
	updatePolicyConfig := updatePolicyConfigHandler.NewHandler(policySvc, log)
	getBookableSlots := getBookableSlotsHandler.NewHandler(getBookableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getStaffShifts := getStaffShiftsHandler.NewHandler(shiftsSvc, log)
	createShift := createShiftHandler.NewHandler(shiftsSvc, log)
	deleteShift := deleteShiftHandler.NewHandler(shiftsSvc, log)
	putShiftTemplate := putShiftTemplateHandler.NewHandler(shiftsSvc, log)
	materializeShifts := materializeShiftsHandler.NewHandler(materializeShiftsUseCase, log)

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

	// Политика бронирования студии
	api.HandleFunc("/studios/{studioId}/policy",
		getPolicyConfig.Handle).Methods(http.MethodGet)

	// Доступные слоты для бронирования
	api.HandleFunc("/studios/{studioId}/locations/{locationId}/staff/{staffId}/bookable-slots",
		getBookableSlots.Handle).Methods(http.MethodGet)

	// Смены сотрудника за период
	api.HandleFunc("/studios/{studioId}/staff/{staffId}/shifts",
		getStaffShifts.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Перенос бронирования
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// --- Управление студией (для менеджеров) ---
	// Обновление политики бронирования
	protected.HandleFunc("/studios/{studioId}/policy", updatePolicyConfig.Handle).Methods(http.MethodPut)

	// Создание разовой смены
	protected.HandleFunc("/studios/{studioId}/shifts", createShift.Handle).Methods(http.MethodPost)

	// Удаление смены
	protected.HandleFunc("/shifts/{shiftId}", deleteShift.Handle).Methods(http.MethodDelete)

	// Замена недельного шаблона сотрудника
	protected.HandleFunc("/studios/{studioId}/staff/{staffId}/shift-template",
		putShiftTemplate.Handle).Methods(http.MethodPut)

	// Материализация шаблона в смены
	protected.HandleFunc("/studios/{studioId}/staff/{staffId}/shift-template/materialize",
		materializeShifts.Handle).Methods(http.MethodPost)

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
