package booking

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

// Database соединение, умеющее выполнять запросы и открывать транзакции (*dbmetrics.DB)
type Database interface {
	DBExecutor
	TxBeginner
}
