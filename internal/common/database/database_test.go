package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-assistant/internal/common/config"
)

func TestPostgresClient_QueryEach(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM customers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("c1", "Juan Pérez").
			AddRow("c2", "Ana"))

	client := NewPostgresFromDB(db)
	var names []string
	err = client.QueryEach(context.Background(), "SELECT id, name FROM customers", func(rows *sql.Rows) error {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Juan Pérez", "Ana"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_QueryEachError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

	err = NewPostgresFromDB(db).QueryEach(context.Background(), "SELECT 1", func(*sql.Rows) error { return nil })
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestNewPostgres_DoesNotDial(t *testing.T) {
	client, err := NewPostgres(config.PostgresConfig{
		Host: "localhost", Port: 5432, Database: "shop", User: "shop", SSLMode: "disable",
		MaxConnections: 4, MaxIdle: 1,
	})
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestRedisClient_Bytes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer client.Close()
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))

	_, found, err := client.GetBytes(ctx, Key("session", "missing"))
	require.NoError(t, err)
	assert.False(t, found)

	key := Key("session", "s1")
	require.NoError(t, client.SetBytes(ctx, key, []byte("hola"), time.Minute))

	data, found, err := client.GetBytes(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("hola"), data)
	assert.Equal(t, time.Minute, mr.TTL(key))

	require.NoError(t, client.Del(ctx, key))
	assert.False(t, mr.Exists(key))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "voice-assistant:session:abc", Key("session", "abc"))
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}
