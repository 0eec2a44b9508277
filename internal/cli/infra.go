package cli

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-VenueBookingService/internal/config"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/migrations"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

const pingTimeout = 5 * time.Second

// bookingStore хранилище бронирований (postgres, memory, redis)
type bookingStore interface {
	TryInsert(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	Get(ctx context.Context, cell domain.VenueCell) (*domain.Booking, error)
	Remove(ctx context.Context, cell domain.VenueCell, requesterID int64, isPrivileged bool) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// venueCatalog каталог площадок (venue.Catalog, venue.Repository)
type venueCatalog interface {
	CellExists(ctx context.Context, venueID string, day domain.DayName, slot types.TimeSlot) (bool, error)
	ListCellsForDay(ctx context.Context, day domain.DayName) ([]domain.CatalogCell, error)
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	GetVenue(ctx context.Context, venueID string) (*domain.Venue, error)
}

// loadConfig читает конфигурацию и создает логгер
func loadConfig(path string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}

// openDatabase подключается к PostgreSQL и настраивает пул соединений
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database (host=%s, port=%d, db=%s): %w",
			cfg.Host, cfg.Port, cfg.DBName, err)
	}

	return db, nil
}

// openRedis подключается к Redis и проверяет соединение
func openRedis(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// redisPinger адаптер redis клиента для /health
type redisPinger struct {
	client goredis.UniversalClient
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// runMigrations применяет миграции и пишет в лог их список
func runMigrations(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	applied, err := migrations.Up(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if len(applied) == 0 {
		log.Info("Database schema is up to date")
		return nil
	}
	for _, name := range applied {
		log.Info("Migration applied: %s", name)
	}
	return nil
}

// loadCatalogFile читает каталог площадок из TOML файла
func loadCatalogFile(path string) ([]domain.Venue, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: catalog file is not set", config.ErrInvalidConfig)
	}

	venues, err := venueRepo.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog file %s: %w", path, err)
	}
	return venues, nil
}
