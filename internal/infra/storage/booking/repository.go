package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
)

// pgUniqueViolation код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// cellConflictTarget уникальный ключ ячейки (venue_id, booking_date, day_name, time_slot)
const cellConflictTarget = "ON CONFLICT (venue_id, booking_date, day_name, time_slot) DO NOTHING"

var bookingColumns = []string{
	"id",
	"venue_id",
	"booking_date",
	"day_name",
	"time_slot",
	"user_id",
	"booked_by_name",
	"purpose",
	"created_at",
}

// Repository хранилище бронирований в PostgreSQL.
// Взаимоисключение по ячейке обеспечивается уникальным индексом bookings_cell_key:
// вставка и проверка занятости выполняются одним INSERT ... ON CONFLICT DO NOTHING.
type Repository struct {
	db        Database
	txManager *txmanager.TransactionManager
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db Database) *Repository {
	return &Repository{
		db:        db,
		txManager: txmanager.NewTransactionManager(db),
	}
}

// TryInsert создает бронирование, только если ячейка свободна.
// Если ячейка занята, возвращает ErrSlotAlreadyBooked.
// Два одновременных запроса на одну ячейку не могут оба завершиться успешно:
// второй INSERT ждёт фиксации первого на уникальном индексе и получает конфликт.
func (r *Repository) TryInsert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := *booking
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.Cell = domain.NewVenueCell(booking.Cell.VenueID, booking.Cell.Date, booking.Cell.DayName, booking.Cell.TimeSlot)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"venue_id",
			"booking_date",
			"day_name",
			"time_slot",
			"user_id",
			"booked_by_name",
			"purpose",
		).
		Values(
			created.ID,
			created.Cell.VenueID,
			created.Cell.Date,
			created.Cell.DayName,
			created.Cell.TimeSlot,
			created.UserID,
			created.BookedByName,
			created.Purpose,
		).
		Suffix(cellConflictTarget + " RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TryInsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)

	// ON CONFLICT DO NOTHING не возвращает строку - ячейка уже занята
	if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
		return nil, ErrSlotAlreadyBooked
	}
	if err != nil {
		return nil, fmt.Errorf("%w: TryInsert - execute insert: %v", ErrExecQuery, err)
	}

	created.CreatedAt = createdAt.UTC()

	return &created, nil
}

// Get получает активное бронирование ячейки
// Внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) Get(ctx context.Context, cell domain.VenueCell) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(cellCondition(cell))

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Remove удаляет активное бронирование ячейки.
// Строка блокируется, проверяется владелец, затем удаляется именно эта строка (по id),
// поэтому отмена не может задеть бронирование, созданное в ячейке позже.
func (r *Repository) Remove(ctx context.Context, cell domain.VenueCell, requesterID int64, isPrivileged bool) (*domain.Booking, error) {
	var removed *domain.Booking

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := r.Get(txCtx, cell)
		if err != nil {
			return err
		}

		if !current.CanBeCancelledBy(requesterID, isPrivileged) {
			return ErrNotBookingOwner
		}

		if err := r.deleteByID(txCtx, current.ID); err != nil {
			return err
		}

		removed = current
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrTransaction) {
			return nil, fmt.Errorf("%w: Remove - %v", ErrExecQuery, err)
		}
		return nil, err
	}

	return removed, nil
}

// List получает бронирования по фильтру, отсортированные по дате, площадке и слоту
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("booking_date ASC", "venue_id ASC", "time_slot ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": domain.NormalizeDate(*filter.Date)})
	}
	if filter.VenueID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"venue_id": *filter.VenueID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func (r *Repository) deleteByID(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Remove - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Remove - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Remove - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func cellCondition(cell domain.VenueCell) squirrel.Eq {
	return squirrel.Eq{
		"venue_id":     cell.VenueID,
		"booking_date": domain.NormalizeDate(cell.Date),
		"day_name":     cell.DayName,
		"time_slot":    cell.TimeSlot,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в порядке bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking   domain.Booking
		date      time.Time
		createdAt time.Time
	)

	err := row.Scan(
		&booking.ID,
		&booking.Cell.VenueID,
		&date,
		&booking.Cell.DayName,
		&booking.Cell.TimeSlot,
		&booking.UserID,
		&booking.BookedByName,
		&booking.Purpose,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Cell.Date = domain.NormalizeDate(date)
	booking.CreatedAt = createdAt.UTC()

	return &booking, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
