package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/venues/models"
)

// Service сервис чтения каталога площадок
type Service struct {
	catalog VenueCatalog
	logger  Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(catalog VenueCatalog, logger Logger) *Service {
	return &Service{
		catalog: catalog,
		logger:  logger,
	}
}

// List возвращает все площадки каталога
func (s *Service) List(ctx context.Context) (*models.VenueListResponse, error) {
	venues, err := s.catalog.ListVenues(ctx)
	if err != nil {
		s.logger.Error("List: catalog error: %v", err)
		return nil, fmt.Errorf("%w: List - catalog error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d venues", len(venues))
	return models.FromDomainVenueList(venues), nil
}

// GetByID возвращает площадку по ID
func (s *Service) GetByID(ctx context.Context, venueID string) (*models.VenueResponse, error) {
	if strings.TrimSpace(venueID) == "" {
		return nil, fmt.Errorf("%w: venue id is required", ErrInvalidInput)
	}

	venue, err := s.catalog.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetByID: venue %q not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetByID: catalog error for venue %q: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetByID - catalog error: %v", ErrInternal, err)
	}

	return models.FromDomainVenue(venue), nil
}
