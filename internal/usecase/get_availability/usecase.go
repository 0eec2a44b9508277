package get_availability

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
)

// UseCase use case для получения сетки доступности площадок
type UseCase struct {
	store   BookingStore
	catalog VenueCatalog
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store BookingStore, catalog VenueCatalog, logger Logger) *UseCase {
	return &UseCase{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// Cells возвращает ленивую последовательность ячеек каталога для дня с их статусом.
// Статус каждой ячейки читается из хранилища в момент, когда до неё дошла итерация.
// Последовательность можно обходить повторно, каждый обход читает актуальное состояние.
// При ошибке выдаётся одна пара с ненулевой ошибкой, после чего обход завершается.
func (uc *UseCase) Cells(ctx context.Context, req *Request) iter.Seq2[domain.CellAvailability, error] {
	return func(yield func(domain.CellAvailability, error) bool) {
		day, err := resolveRequest(req)
		if err != nil {
			yield(domain.CellAvailability{}, err)
			return
		}

		cells, err := uc.catalog.ListCellsForDay(ctx, day)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to list catalog cells for %s: %v", day, err)
			yield(domain.CellAvailability{}, fmt.Errorf("%w: failed to list catalog cells: %v", ErrInternal, err))
			return
		}

		for _, cell := range cells {
			if req.VenueID != "" && cell.VenueID != req.VenueID {
				continue
			}
			if err := ctx.Err(); err != nil {
				yield(domain.CellAvailability{}, err)
				return
			}

			booking, err := uc.store.Get(ctx, cell.On(req.Date))
			if err != nil {
				if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
					uc.logger.Error("GetAvailability: store error for %s: %v", cell.On(req.Date), err)
					yield(domain.CellAvailability{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err))
					return
				}
				booking = nil
			}

			if !yield(domain.NewCellAvailability(cell, req.Date, booking), nil) {
				return
			}
		}
	}
}

// Execute собирает сетку доступности целиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	day, err := resolveRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailability: date=%s, day=%s", req.Date.Format(domain.DateFormat), day)

	resp := &Response{
		Date:    domain.NormalizeDate(req.Date),
		DayName: day,
		Cells:   make([]domain.CellAvailability, 0),
	}

	for cell, err := range uc.Cells(ctx, req) {
		if err != nil {
			return nil, err
		}
		if cell.IsFree() {
			resp.Free++
		} else {
			resp.Booked++
		}
		resp.Cells = append(resp.Cells, cell)
	}

	uc.logger.Info("GetAvailability: %d cells, %d free, %d booked", len(resp.Cells), resp.Free, resp.Booked)
	return resp, nil
}

// resolveRequest проверяет дату и определяет день расписания
func resolveRequest(req *Request) (domain.DayName, error) {
	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DayName == "" {
		return domain.DayNameOf(req.Date), nil
	}

	if err := req.DayName.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return req.DayName, nil
}
