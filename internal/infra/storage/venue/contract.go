package venue

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// Database соединение с поддержкой транзакций (*dbmetrics.DB)
type Database interface {
	DBExecutor
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
