// Package store loads business snapshots and keeps the last response of each
// voice session.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"voice-assistant/internal/common/database"
	"voice-assistant/internal/common/errors"
	"voice-assistant/internal/common/logger"
	"voice-assistant/internal/common/metrics"
	"voice-assistant/internal/models"
)

// SnapshotLoader returns the records a command is answered against.
type SnapshotLoader interface {
	Load(ctx context.Context) (*models.Snapshot, error)
}

const (
	customersQuery = `SELECT id, name, COALESCE(total_debt, 0)
		FROM customers
		ORDER BY created_at, id`

	productsQuery = `SELECT id, name, COALESCE(price, 0), COALESCE(purchase_price, 0),
			COALESCE(quantity, 0), COALESCE(low_stock_threshold, 0)
		FROM products
		ORDER BY created_at, id`

	paymentsQuery = `SELECT id, customer_id, COALESCE(amount, 0), due_date, status
		FROM payments
		ORDER BY created_at, id`
)

// PostgresSnapshotLoader reads customers, products and payments from the
// shop database.
type PostgresSnapshotLoader struct {
	db      *database.PostgresClient
	timeout time.Duration
	logger  logger.Logger
}

func NewPostgresSnapshotLoader(db *database.PostgresClient, timeout time.Duration, log logger.Logger) *PostgresSnapshotLoader {
	return &PostgresSnapshotLoader{
		db:      db,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "snapshot-loader"}),
	}
}

func (l *PostgresSnapshotLoader) Load(ctx context.Context) (*models.Snapshot, error) {
	start := time.Now()
	defer func() {
		metrics.SnapshotLoadDuration.WithLabelValues("postgres").Observe(time.Since(start).Seconds())
	}()

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	snapshot := &models.Snapshot{}

	err := l.db.QueryEach(ctx, customersQuery, func(rows *sql.Rows) error {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.TotalDebt); err != nil {
			return err
		}
		snapshot.Customers = append(snapshot.Customers, c)
		return nil
	})
	if err != nil {
		return nil, l.loadError(ctx, "customers", err)
	}

	err = l.db.QueryEach(ctx, productsQuery, func(rows *sql.Rows) error {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.PurchasePrice, &p.Quantity, &p.LowStockThreshold); err != nil {
			return err
		}
		snapshot.Products = append(snapshot.Products, p)
		return nil
	})
	if err != nil {
		return nil, l.loadError(ctx, "products", err)
	}

	err = l.db.QueryEach(ctx, paymentsQuery, func(rows *sql.Rows) error {
		var (
			p       models.Payment
			dueDate sql.NullTime
			status  string
		)
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &dueDate, &status); err != nil {
			return err
		}
		if dueDate.Valid {
			p.DueDate = models.Date{Time: dueDate.Time}
		}
		p.Status = models.PaymentStatus(status)
		snapshot.Payments = append(snapshot.Payments, p)
		return nil
	})
	if err != nil {
		return nil, l.loadError(ctx, "payments", err)
	}

	l.logger.Debug("snapshot loaded", map[string]interface{}{
		"customers":  len(snapshot.Customers),
		"products":   len(snapshot.Products),
		"payments":   len(snapshot.Payments),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return snapshot, nil
}

func (l *PostgresSnapshotLoader) loadError(ctx context.Context, table string, err error) error {
	l.logger.Error("snapshot query failed", map[string]interface{}{
		"table": table,
		"error": err.Error(),
	})
	if ctx.Err() == context.DeadlineExceeded {
		return errors.NewQueryTimeoutError(table)
	}
	return errors.NewSnapshotLoadFailedError(table, err)
}

// FileSnapshotLoader reads a snapshot from a JSON file on every Load.
type FileSnapshotLoader struct {
	path string
}

func NewFileSnapshotLoader(path string) *FileSnapshotLoader {
	return &FileSnapshotLoader{path: path}
}

func (l *FileSnapshotLoader) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.NewSnapshotLoadFailedError(l.path, err)
	}
	return DecodeSnapshot(data)
}

// DecodeSnapshot parses the JSON form of a snapshot.
func DecodeSnapshot(data []byte) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.NewInvalidCommandInputError(fmt.Sprintf("invalid snapshot: %v", err))
	}
	return &snapshot, nil
}

// StaticSnapshotLoader always returns the same snapshot.
type StaticSnapshotLoader struct {
	Snapshot *models.Snapshot
}

func (l StaticSnapshotLoader) Load(context.Context) (*models.Snapshot, error) {
	if l.Snapshot == nil {
		return &models.Snapshot{}, nil
	}
	return l.Snapshot, nil
}
