package venue

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка отсутствует в каталоге
	ErrVenueNotFound = errors.New("venue.repository: venue not found")

	// ErrInvalidCatalog возвращается при некорректных данных каталога (seed-файл, дубликаты)
	ErrInvalidCatalog = errors.New("venue.repository: invalid catalog")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("venue.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("venue.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("venue.repository: failed to scan row")
)
