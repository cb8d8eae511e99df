package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"voice-assistant/internal/common/database"
	"voice-assistant/internal/common/errors"
	"voice-assistant/internal/common/logger"
	"voice-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestLoader(t *testing.T) (*PostgresSnapshotLoader, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	loader := NewPostgresSnapshotLoader(database.NewPostgresFromDB(db), time.Second, logger.NewTestLogger(t))
	return loader, mock
}

func testResponse(sessionID string) *models.StoredResponse {
	return &models.StoredResponse{
		SessionID: sessionID,
		Locale:    "es",
		Command:   "¿Cuánto debe Ana?",
		Intent:    "customer_debt",
		Response:  "Ana te debe $100",
		Speech:    "Ana te debe cien pesos",
		CreatedAt: time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC),
	}
}

// ==========================
// Snapshot Loader Tests
// ==========================

func TestPostgresSnapshotLoader_Load(t *testing.T) {
	loader, mock := createTestLoader(t)

	mock.ExpectQuery("FROM customers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_debt"}).
			AddRow("c1", "Juan Pérez", 500.0).
			AddRow("c2", "Ana", 0.0))
	mock.ExpectQuery("FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "purchase_price", "quantity", "low_stock_threshold"}).
			AddRow("p1", "Silla", 50.0, 30.0, 2, 5))
	mock.ExpectQuery("FROM payments").
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "amount", "due_date", "status"}).
			AddRow("pay1", "c1", 200.0, time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC), "overdue").
			AddRow("pay2", "c1", 300.0, nil, "pending"))

	snapshot, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Customers, 2)
	assert.Equal(t, models.Customer{ID: "c1", Name: "Juan Pérez", TotalDebt: 500}, snapshot.Customers[0])

	require.Len(t, snapshot.Products, 1)
	assert.True(t, snapshot.Products[0].IsLowStock())

	require.Len(t, snapshot.Payments, 2)
	assert.Equal(t, models.PaymentStatusOverdue, snapshot.Payments[0].Status)
	assert.Equal(t, time.September, snapshot.Payments[0].DueDate.Month())
	assert.True(t, snapshot.Payments[1].DueDate.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotLoader_QueryError(t *testing.T) {
	loader, mock := createTestLoader(t)

	mock.ExpectQuery("FROM customers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_debt"}))
	mock.ExpectQuery("FROM products").WillReturnError(sql.ErrConnDone)

	_, err := loader.Load(context.Background())
	require.Error(t, err)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSnapshotLoadFailed, stdErr.Code)
	assert.Equal(t, "products", stdErr.Metadata["table"])
	assert.True(t, stdErr.Retryable)
}

func TestPostgresSnapshotLoader_EmptyTables(t *testing.T) {
	loader, mock := createTestLoader(t)

	mock.ExpectQuery("FROM customers").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_debt"}))
	mock.ExpectQuery("FROM products").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "purchase_price", "quantity", "low_stock_threshold"}))
	mock.ExpectQuery("FROM payments").WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "amount", "due_date", "status"}))

	snapshot, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Customers)
	assert.Empty(t, snapshot.Products)
	assert.Empty(t, snapshot.Payments)
}

func TestFileSnapshotLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"customers": [{"id": "c1", "name": "Ana", "totalDebt": 0}],
		"products": [],
		"payments": [{"id": "pay1", "customerId": "c1", "amount": 100, "dueDate": "2024-05-01", "status": "overdue"}]
	}`), 0o600))

	snapshot, err := NewFileSnapshotLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", snapshot.Customers[0].Name)
	assert.Equal(t, models.NewDate(2024, time.May, 1), snapshot.Payments[0].DueDate)

	_, err = NewFileSnapshotLoader(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeSnapshotLoadFailed))

	_, err = DecodeSnapshot([]byte("{not json"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidCommandInput))
}

func TestStaticSnapshotLoader(t *testing.T) {
	snapshot, err := StaticSnapshotLoader{}.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snapshot)
}

// ==========================
// Response Store Tests
// ==========================

func TestRedisResponseStore_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer client.Close()

	store := NewRedisResponseStore(client, 30*time.Minute)
	ctx := context.Background()

	_, found, err := store.Last(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, testResponse("s1")))

	got, found, err := store.Last(ctx, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, testResponse("s1"), got)
	assert.Equal(t, 30*time.Minute, mr.TTL(responseKey("s1")))
}

func TestRedisResponseStore_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer client.Close()

	store := NewRedisResponseStore(client, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testResponse("s1")))

	mr.FastForward(2 * time.Minute)

	_, found, err := store.Last(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisResponseStore_WithMock(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisResponseStore(database.NewRedisFromClient(rdb), time.Minute)
	ctx := context.Background()

	resp := testResponse("s1")
	data, err := msgpack.Marshal(resp)
	require.NoError(t, err)

	mock.ExpectSet(responseKey("s1"), data, time.Minute).SetVal("OK")
	mock.ExpectGet(responseKey("s2")).SetErr(assert.AnError)
	mock.ExpectGet(responseKey("s3")).SetVal("not msgpack")

	require.NoError(t, store.Save(ctx, resp))

	_, _, err = store.Last(ctx, "s2")
	assert.True(t, errors.HasCode(err, errors.ErrCodeResponseStoreFailed))

	_, _, err = store.Last(ctx, "s3")
	assert.True(t, errors.HasCode(err, errors.ErrCodeResponseStoreFailed))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisResponseStore_SaveError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisResponseStore(database.NewRedisFromClient(rdb), time.Minute)

	resp := testResponse("s1")
	data, err := msgpack.Marshal(resp)
	require.NoError(t, err)
	mock.ExpectSet(responseKey("s1"), data, time.Minute).SetErr(assert.AnError)

	err = store.Save(context.Background(), resp)
	assert.True(t, errors.HasCode(err, errors.ErrCodeResponseStoreFailed))
}

func TestMemoryResponseStore(t *testing.T) {
	store := NewMemoryResponseStore(2, time.Hour)
	ctx := context.Background()

	_, found, err := store.Last(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, testResponse("s1")))
	require.NoError(t, store.Save(ctx, testResponse("s2")))
	require.NoError(t, store.Save(ctx, testResponse("s3")))

	_, found, _ = store.Last(ctx, "s1")
	assert.False(t, found, "oldest session is evicted")

	got, found, err := store.Last(ctx, "s3")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ana te debe $100", got.Response)
	assert.Equal(t, 2, store.Len())
}

func TestMemoryResponseStore_ReturnsCopy(t *testing.T) {
	store := NewMemoryResponseStore(4, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testResponse("s1")))

	got, _, _ := store.Last(ctx, "s1")
	got.Response = "changed"

	again, _, _ := store.Last(ctx, "s1")
	assert.Equal(t, "Ana te debe $100", again.Response)
}
