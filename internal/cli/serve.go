package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	healthHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/health"
	"github.com/m04kA/SMC-VenueBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	memoryStore "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking/memory"
	redisStore "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking/redis"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/events"
	userServiceClient "github.com/m04kA/SMC-VenueBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return serve(ctx, cfg, log, migrateUp)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"

	return cmd
}

// serve поднимает зависимости, HTTP сервер и ждёт отмены ctx
func serve(ctx context.Context, cfg *config.Config, log *logger.Logger, migrateUp bool) error {
	log.Info("Starting SMC-VenueBookingService %s (storage=%s, catalog=%s)...",
		Version, cfg.Storage.Driver, cfg.Catalog.Source)

	c := components{
		storageDriver: cfg.Storage.Driver,
		metricsPath:   cfg.Metrics.Path,
		checks:        make(map[string]healthHandler.Pinger),
	}

	// Инициализируем метрики (если включены)
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		c.metrics = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных (если нужна)
	var wrappedDB *dbmetrics.DB
	if cfg.NeedsDatabase() {
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if migrateUp {
			if err := runMigrations(ctx, db, log); err != nil {
				return err
			}
		}

		wrappedDB = dbmetrics.WrapWithDefault(db, c.metrics, stopMetricsCh)
		c.checks["postgres"] = wrappedDB
	}

	// Каталог площадок
	catalog, err := buildCatalog(ctx, cfg, wrappedDB, log)
	if err != nil {
		return err
	}
	c.catalog = catalog

	// Хранилище бронирований
	store, closeStore, err := buildStore(ctx, cfg, wrappedDB, c.checks, log)
	if err != nil {
		return err
	}
	defer closeStore()
	c.store = store

	// Интеграции
	if cfg.UserService.URL != "" {
		c.resolver = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	} else {
		log.Info("UserService url is not set, requester name and role are taken from gateway headers")
	}

	if cfg.Events.Enabled {
		publisher, err := events.NewRabbitPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			// события не влияют на бронирования, сервис стартует без них
			log.Warn("Booking events are disabled: %v", err)
		} else {
			defer publisher.Close()
			dispatcher := events.NewDispatcher(
				publisher,
				cfg.Events.QueueSize,
				time.Duration(cfg.Events.PublishTimeout)*time.Second,
				log,
			)
			defer dispatcher.Close()
			c.notifier = events.NewNotifier(dispatcher)
			log.Info("Booking events are published to exchange %q (queue=%d)", cfg.Events.Exchange, cfg.Events.QueueSize)
		}
	}

	router := newRouter(c, log)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидаем сигнал завершения
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// buildCatalog каталог из файла в памяти или из БД (с загрузкой файла при seed_on_start)
func buildCatalog(ctx context.Context, cfg *config.Config, db *dbmetrics.DB, log *logger.Logger) (venueCatalog, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		venues, err := loadCatalogFile(cfg.Catalog.File)
		if err != nil {
			return nil, err
		}
		catalog, err := venueRepo.NewCatalog(venues)
		if err != nil {
			return nil, err
		}
		log.Info("Catalog loaded from %s: %d venues", cfg.Catalog.File, len(venues))
		return catalog, nil

	case config.CatalogSourceDatabase:
		repo := venueRepo.NewRepository(db)
		if cfg.Catalog.SeedOnStart && cfg.Catalog.File != "" {
			venues, err := loadCatalogFile(cfg.Catalog.File)
			if err != nil {
				return nil, err
			}
			if err := repo.Seed(ctx, venues); err != nil {
				return nil, fmt.Errorf("failed to seed catalog: %w", err)
			}
			log.Info("Catalog seeded from %s: %d venues", cfg.Catalog.File, len(venues))
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("%w: unknown catalog source %q", config.ErrInvalidConfig, cfg.Catalog.Source)
	}
}

// buildStore хранилище бронирований по storage.driver. closeFn освобождает ресурсы хранилища
func buildStore(
	ctx context.Context,
	cfg *config.Config,
	db *dbmetrics.DB,
	checks map[string]healthHandler.Pinger,
	log *logger.Logger,
) (store bookingStore, closeFn func(), err error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		log.Info("Bookings are stored in PostgreSQL")
		return bookingRepo.NewRepository(db), func() {}, nil

	case config.StorageDriverMemory:
		log.Warn("Bookings are stored in memory and will be lost on restart")
		return memoryStore.NewStore(), func() {}, nil

	case config.StorageDriverRedis:
		client, err := openRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		checks["redis"] = redisPinger{client: client}
		log.Info("Bookings are stored in Redis (addr=%s, prefix=%q)", cfg.Redis.Addr, cfg.Redis.KeyPrefix)
		return redisStore.NewStore(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.Storage.Driver)
	}
}

var (
	_ bookingStore = (*bookingRepo.Repository)(nil)
	_ bookingStore = (*memoryStore.Store)(nil)
	_ bookingStore = (*redisStore.Store)(nil)
	_ venueCatalog = (*venueRepo.Catalog)(nil)
	_ venueCatalog = (*venueRepo.Repository)(nil)
)
