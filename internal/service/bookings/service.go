package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: отмена и чтение
type Service struct {
	store     BookingStore
	publisher EventPublisher
	outcomes  OutcomeRecorder
	logger    Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// publisher и outcomes могут быть nil
func NewService(
	store BookingStore,
	publisher EventPublisher,
	outcomes OutcomeRecorder,
	logger Logger,
) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		outcomes:  outcomes,
		logger:    logger,
	}
}

// Cancel отменяет активное бронирование ячейки.
// Отменить может владелец бронирования или администратор.
// При отказе бронирование остаётся активным.
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) error {
	cell := req.Cell()
	s.logger.Info("Cancel: user=%d, %s", req.Requester.UserID, cell)

	if req.Requester.UserID <= 0 {
		s.observe(domain.OutcomeInvalidInput)
		return fmt.Errorf("%w: requester id must be positive", ErrInvalidInput)
	}
	if err := cell.Validate(); err != nil {
		s.logger.Warn("Cancel: validation failed: %v", err)
		s.observe(domain.OutcomeInvalidInput)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	removed, err := s.store.Remove(ctx, cell, req.Requester.UserID, req.Requester.IsPrivileged())
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Cancel: no active booking for %s", cell)
			s.observe(domain.OutcomeNoActiveBooking)
			return ErrNoActiveBooking
		case errors.Is(err, bookingRepo.ErrNotBookingOwner):
			s.logger.Warn("Cancel: user=%d is not the owner of the booking for %s", req.Requester.UserID, cell)
			s.observe(domain.OutcomeNotBookingOwner)
			return ErrNotBookingOwner
		}
		s.logger.Error("Cancel: store error for %s: %v", cell, err)
		s.observe(domain.OutcomeStoreUnavailable)
		return fmt.Errorf("%w: Cancel - store error: %v", ErrStoreUnavailable, err)
	}

	s.observe(domain.OutcomeCancelled)
	s.logger.Info("Cancel: successfully cancelled booking id=%s by user=%d", removed.ID, req.Requester.UserID)

	if s.publisher != nil {
		if err := s.publisher.BookingCancelled(ctx, removed, req.Requester.UserID); err != nil {
			s.logger.Warn("Cancel: failed to publish booking.cancelled id=%s: %v", removed.ID, err)
		}
	}

	return nil
}

// GetByCell получает активное бронирование ячейки
func (s *Service) GetByCell(ctx context.Context, req *models.GetBookingRequest) (*models.BookingResponse, error) {
	cell := req.Cell()

	if err := cell.Validate(); err != nil {
		s.logger.Warn("GetByCell: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := s.store.Get(ctx, cell)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrNoActiveBooking
		}
		s.logger.Error("GetByCell: store error for %s: %v", cell, err)
		return nil, fmt.Errorf("%w: GetByCell - store error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetBookings получает список бронирований по дате и/или площадке
func (s *Service) GetBookings(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	filter := domain.BookingsFilter{
		Date:    req.Date,
		VenueID: req.VenueID,
	}

	bookings, err := s.store.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetBookings: store error: %v", err)
		return nil, fmt.Errorf("%w: GetBookings - store error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("GetBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetUserBookings получает активные бронирования пользователя.
// Доступно самому пользователю и администраторам
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d by user=%d", req.UserID, req.Requester.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	if req.UserID != req.Requester.UserID && !req.Requester.IsPrivileged() {
		s.logger.Warn("GetUserBookings: access denied for user=%d to bookings of user=%d", req.Requester.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	userID := req.UserID
	bookings, err := s.store.List(ctx, domain.BookingsFilter{UserID: &userID})
	if err != nil {
		s.logger.Error("GetUserBookings: store error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - store error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

func (s *Service) observe(outcome string) {
	if s.outcomes != nil {
		s.outcomes.ObserveBookingOutcome(domain.OperationCancel, outcome)
	}
}
