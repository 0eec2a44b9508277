package get_availability

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Request модель запроса сетки доступности
type Request struct {
	Date    time.Time      // Дата (без времени)
	DayName domain.DayName // День расписания; пустой - день недели даты
	VenueID string         // Фильтр по площадке (опционально)
}

// Response сетка доступности на дату
type Response struct {
	Date    time.Time
	DayName domain.DayName
	Cells   []domain.CellAvailability
	Free    int // Количество свободных ячеек
	Booked  int // Количество занятых ячеек
}
