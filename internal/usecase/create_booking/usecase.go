package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
)

// UseCase use case для создания бронирования
type UseCase struct {
	store     BookingStore
	catalog   VenueCatalog
	publisher EventPublisher
	outcomes  OutcomeRecorder
	logger    Logger
}

// NewUseCase создает новый экземпляр use case.
// publisher и outcomes могут быть nil
func NewUseCase(
	store BookingStore,
	catalog VenueCatalog,
	publisher EventPublisher,
	outcomes OutcomeRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:     store,
		catalog:   catalog,
		publisher: publisher,
		outcomes:  outcomes,
		logger:    logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка выполняются хранилищем одной атомарной операцией,
// поэтому из нескольких одновременных запросов на одну ячейку успешен ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	cell := req.Cell()
	uc.logger.Info("CreateBooking: user=%d, %s", req.Requester.UserID, cell)

	// 1. Валидация входных данных
	purpose, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.observe(domain.OutcomeInvalidInput)
		return nil, err
	}

	// 2. Ячейка должна существовать в каталоге
	exists, err := uc.catalog.CellExists(ctx, cell.VenueID, cell.DayName, cell.TimeSlot)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check catalog for %s: %v", cell, err)
		return nil, fmt.Errorf("%w: failed to check catalog: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("CreateBooking: %s is not in the catalog", cell)
		uc.observe(domain.OutcomeUnknownVenueCell)
		return nil, ErrUnknownVenueCell
	}

	// 3. Атомарно занимаем ячейку
	created, err := uc.store.TryInsert(ctx, &domain.Booking{
		Cell:         cell,
		UserID:       req.Requester.UserID,
		BookedByName: displayName(req.Requester.Name),
		Purpose:      purpose,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
			uc.logger.Warn("CreateBooking: %s is already booked", cell)
			uc.observe(domain.OutcomeAlreadyBooked)
			return nil, ErrAlreadyBooked
		}
		uc.logger.Error("CreateBooking: failed to insert booking for %s: %v", cell, err)
		uc.observe(domain.OutcomeStoreUnavailable)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	uc.observe(domain.OutcomeAdmitted)
	uc.logger.Info("CreateBooking: successfully created booking id=%s for %s", created.ID, cell)

	// 4. Событие не влияет на результат операции
	if uc.publisher != nil {
		if err := uc.publisher.BookingCreated(ctx, created); err != nil {
			uc.logger.Warn("CreateBooking: failed to publish booking.created id=%s: %v", created.ID, err)
		}
	}

	return newResponse(created), nil
}

func (uc *UseCase) observe(outcome string) {
	if uc.outcomes != nil {
		uc.outcomes.ObserveBookingOutcome(domain.OperationCreate, outcome)
	}
}
