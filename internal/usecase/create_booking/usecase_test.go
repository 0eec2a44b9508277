package create_booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking/memory"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

type catalogMock struct {
	mock.Mock
}

func (m *catalogMock) CellExists(ctx context.Context, venueID string, day domain.DayName, slot types.TimeSlot) (bool, error) {
	args := m.Called(ctx, venueID, day, slot)
	return args.Bool(0), args.Error(1)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) BookingCreated(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type failingStore struct{}

func (failingStore) TryInsert(context.Context, *domain.Booking) (*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func allCellsExist() *catalogMock {
	c := &catalogMock{}
	c.On("CellExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	return c
}

func lab206Request(userID int64, purpose string) *Request {
	return &Request{
		VenueID:   "Lab 206",
		Date:      monday,
		DayName:   domain.Monday,
		TimeSlot:  "09:00-10:00",
		Purpose:   purpose,
		Requester: domain.Requester{UserID: userID, Name: "User"},
	}
}

func TestExecute_Lab206Scenario(t *testing.T) {
	pub := &publisherMock{}
	pub.On("BookingCreated", mock.Anything, mock.Anything).Return(nil)
	uc := NewUseCase(memory.NewStore(), allCellsExist(), pub, nil, logger.Discard())
	ctx := context.Background()

	resp, err := uc.Execute(ctx, lab206Request(1, "Club meeting"))
	require.NoError(t, err)
	assert.Equal(t, "Lab 206", resp.VenueID)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, "Club meeting", resp.Purpose)
	assert.False(t, resp.CreatedAt.IsZero())

	_, err = uc.Execute(ctx, lab206Request(2, "Workshop prep"))
	assert.ErrorIs(t, err, ErrAlreadyBooked)

	other := lab206Request(2, "Workshop prep")
	other.TimeSlot = "10:00-11:00"
	_, err = uc.Execute(ctx, other)
	assert.NoError(t, err)

	pub.AssertNumberOfCalls(t, "BookingCreated", 2)
}

func TestExecute_RepeatedRequestIsRejected(t *testing.T) {
	uc := NewUseCase(memory.NewStore(), allCellsExist(), nil, nil, logger.Discard())

	_, err := uc.Execute(context.Background(), lab206Request(1, "Club meeting"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), lab206Request(1, "Club meeting"))
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestExecute_PurposeBounds(t *testing.T) {
	tests := []struct {
		name    string
		purpose string
		wantErr bool
	}{
		{name: "too short", purpose: "Hi", wantErr: true},
		{name: "min length", purpose: "Hello"},
		{name: "trimmed to min", purpose: "   Hello   "},
		{name: "trimmed below min", purpose: "  Hi   ", wantErr: true},
		{name: "max length", purpose: strings.Repeat("a", 100)},
		{name: "too long", purpose: strings.Repeat("a", 101), wantErr: true},
		{name: "multibyte max", purpose: strings.Repeat("я", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(memory.NewStore(), allCellsExist(), nil, nil, logger.Discard())

			resp, err := uc.Execute(context.Background(), lab206Request(1, tt.purpose))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPurpose)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.purpose), resp.Purpose)
		})
	}
}

func TestExecute_InvalidCell(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "empty venue", mutate: func(r *Request) { r.VenueID = "" }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad day", mutate: func(r *Request) { r.DayName = "someday" }},
		{name: "bad slot", mutate: func(r *Request) { r.TimeSlot = "10:00-09:00" }},
		{name: "anonymous requester", mutate: func(r *Request) { r.Requester.UserID = 0 }},
		{name: "long venue", mutate: func(r *Request) { r.VenueID = strings.Repeat("v", 150) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &catalogMock{}
			uc := NewUseCase(memory.NewStore(), catalog, nil, nil, logger.Discard())

			req := lab206Request(1, "Club meeting")
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.NotErrorIs(t, err, ErrInvalidPurpose)
			catalog.AssertNotCalled(t, "CellExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_UnknownVenueCell(t *testing.T) {
	catalog := &catalogMock{}
	catalog.On("CellExists", mock.Anything, "Lab 206", domain.Monday, types.TimeSlot("09:00-10:00")).Return(false, nil)
	uc := NewUseCase(memory.NewStore(), catalog, nil, nil, logger.Discard())

	_, err := uc.Execute(context.Background(), lab206Request(1, "Club meeting"))
	assert.ErrorIs(t, err, ErrUnknownVenueCell)
}

func TestExecute_CatalogFailure(t *testing.T) {
	catalog := &catalogMock{}
	catalog.On("CellExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("db down"))
	uc := NewUseCase(memory.NewStore(), catalog, nil, nil, logger.Discard())

	_, err := uc.Execute(context.Background(), lab206Request(1, "Club meeting"))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	uc := NewUseCase(failingStore{}, allCellsExist(), nil, nil, logger.Discard())

	_, err := uc.Execute(context.Background(), lab206Request(1, "Club meeting"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExecute_PublishFailureDoesNotFailBooking(t *testing.T) {
	pub := &publisherMock{}
	pub.On("BookingCreated", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	uc := NewUseCase(memory.NewStore(), allCellsExist(), pub, nil, logger.Discard())

	_, err := uc.Execute(context.Background(), lab206Request(1, "Club meeting"))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentRequests(t *testing.T) {
	uc := NewUseCase(memory.NewStore(), allCellsExist(), nil, nil, logger.Discard())

	const requests = 50
	var (
		wg       sync.WaitGroup
		admitted atomic.Int32
		rejected atomic.Int32
	)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), lab206Request(userID, "Concurrent request"))
			switch {
			case err == nil:
				admitted.Add(1)
			case errors.Is(err, ErrAlreadyBooked):
				rejected.Add(1)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load())
	assert.Equal(t, int32(requests-1), rejected.Load())
}
