package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Repository каталог площадок в PostgreSQL (таблицы venues, venue_time_slots).
// Сервис только читает каталог, запись выполняет команда seed-catalog.
type Repository struct {
	db        Database
	txManager *txmanager.TransactionManager
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db Database) *Repository {
	return &Repository{
		db:        db,
		txManager: txmanager.NewTransactionManager(db),
	}
}

// CellExists проверяет, что площадка определяет слот в этот день
func (r *Repository) CellExists(ctx context.Context, venueID string, day domain.DayName, slot types.TimeSlot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("venue_time_slots").
		Where(squirrel.Eq{
			"venue_id":  venueID,
			"day_name":  day,
			"time_slot": slot,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CellExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CellExists - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ListCellsForDay возвращает ячейки каталога для дня в порядке каталога
func (r *Repository) ListCellsForDay(ctx context.Context, day domain.DayName) ([]domain.CatalogCell, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"v.id",
		"v.name",
		"v.category",
		"v.capacity",
		"s.day_name",
		"s.time_slot",
	).
		From("venue_time_slots s").
		Join("venues v ON v.id = s.venue_id").
		Where(squirrel.Eq{"s.day_name": day}).
		OrderBy("v.position ASC", "v.id ASC", "s.position ASC", "s.time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCellsForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCellsForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cells := make([]domain.CatalogCell, 0)
	for rows.Next() {
		var cell domain.CatalogCell
		if err := rows.Scan(
			&cell.VenueID,
			&cell.VenueName,
			&cell.Category,
			&cell.Capacity,
			&cell.DayName,
			&cell.TimeSlot,
		); err != nil {
			return nil, fmt.Errorf("%w: ListCellsForDay - scan row: %v", ErrScanRow, err)
		}
		cells = append(cells, cell)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCellsForDay - rows error: %v", ErrScanRow, err)
	}

	return cells, nil
}

// ListVenues возвращает все площадки вместе со слотами
func (r *Repository) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	var venues []domain.Venue

	err := r.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		venues, err = r.selectVenues(txCtx, nil)
		if err != nil {
			return err
		}
		return r.attachSlots(txCtx, venues)
	})
	if err != nil {
		return nil, err
	}

	return venues, nil
}

// GetVenue возвращает площадку по ID
func (r *Repository) GetVenue(ctx context.Context, venueID string) (*domain.Venue, error) {
	var venues []domain.Venue

	err := r.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		venues, err = r.selectVenues(txCtx, squirrel.Eq{"id": venueID})
		if err != nil {
			return err
		}
		if len(venues) == 0 {
			return ErrVenueNotFound
		}
		return r.attachSlots(txCtx, venues)
	})
	if err != nil {
		return nil, err
	}

	return &venues[0], nil
}

// Seed заменяет каталог: площадки вставляются или обновляются, их слоты перезаписываются.
// Площадки, отсутствующие в списке, не удаляются.
func (r *Repository) Seed(ctx context.Context, venues []domain.Venue) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		for i, v := range venues {
			query, args, err := psqlbuilder.Insert("venues").
				Columns("id", "name", "category", "capacity", "position").
				Values(v.ID, v.Name, v.Category, v.Capacity, i).
				Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category, capacity = EXCLUDED.capacity, position = EXCLUDED.position").
				ToSql()
			if err != nil {
				return fmt.Errorf("%w: Seed - build upsert query: %v", ErrBuildQuery, err)
			}
			if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
				return fmt.Errorf("%w: Seed - upsert venue %q: %v", ErrExecQuery, v.ID, err)
			}

			query, args, err = psqlbuilder.Delete("venue_time_slots").
				Where(squirrel.Eq{"venue_id": v.ID}).
				ToSql()
			if err != nil {
				return fmt.Errorf("%w: Seed - build delete query: %v", ErrBuildQuery, err)
			}
			if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
				return fmt.Errorf("%w: Seed - delete slots of %q: %v", ErrExecQuery, v.ID, err)
			}

			if len(v.Slots) == 0 {
				continue
			}

			insert := psqlbuilder.Insert("venue_time_slots").
				Columns("venue_id", "day_name", "time_slot", "position")
			for pos, s := range v.Slots {
				insert = insert.Values(v.ID, s.DayName, s.TimeSlot, pos)
			}
			query, args, err = insert.ToSql()
			if err != nil {
				return fmt.Errorf("%w: Seed - build slots insert: %v", ErrBuildQuery, err)
			}
			if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
				return fmt.Errorf("%w: Seed - insert slots of %q: %v", ErrExecQuery, v.ID, err)
			}
		}

		return nil
	})
}

func (r *Repository) selectVenues(ctx context.Context, where squirrel.Sqlizer) ([]domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "name", "category", "capacity").
		From("venues").
		OrderBy("position ASC", "id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: selectVenues - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: selectVenues - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]domain.Venue, 0)
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Category, &v.Capacity); err != nil {
			return nil, fmt.Errorf("%w: selectVenues - scan row: %v", ErrScanRow, err)
		}
		venues = append(venues, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: selectVenues - rows error: %v", ErrScanRow, err)
	}

	return venues, nil
}

// attachSlots загружает слоты для переданных площадок одним запросом
func (r *Repository) attachSlots(ctx context.Context, venues []domain.Venue) error {
	if len(venues) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]string, 0, len(venues))
	index := make(map[string]int, len(venues))
	for i, v := range venues {
		ids = append(ids, v.ID)
		index[v.ID] = i
	}

	query, args, err := psqlbuilder.Select("venue_id", "day_name", "time_slot").
		From("venue_time_slots").
		Where(squirrel.Eq{"venue_id": ids}).
		OrderBy("venue_id ASC", "position ASC", "time_slot ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			venueID string
			slot    domain.VenueSlot
		)
		if err := rows.Scan(&venueID, &slot.DayName, &slot.TimeSlot); err != nil {
			return fmt.Errorf("%w: attachSlots - scan row: %v", ErrScanRow, err)
		}
		if i, ok := index[venueID]; ok {
			venues[i].Slots = append(venues[i].Slots, slot)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachSlots - rows error: %v", ErrScanRow, err)
	}

	return nil
}
