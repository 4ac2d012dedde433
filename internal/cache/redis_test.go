package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_GetHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, time.Hour)

	mock.ExpectGet("legalyze:v1:abc").SetVal(`{"id":"1"}`)

	val, ok := c.Get(context.Background(), "legalyze:v1:abc")
	assert.True(t, ok)
	assert.Equal(t, `{"id":"1"}`, string(val))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, time.Hour)

	mock.ExpectGet("legalyze:v1:abc").RedisNil()
	_, ok := c.Get(context.Background(), "legalyze:v1:abc")
	assert.False(t, ok)

	mock.ExpectGet("legalyze:v1:def").SetErr(errors.New("connection refused"))
	_, ok = c.Get(context.Background(), "legalyze:v1:def")
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_SetDefaultTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, time.Hour)

	mock.ExpectSet("legalyze:v1:abc", []byte("v"), time.Hour).SetVal("OK")
	require.NoError(t, c.Set(context.Background(), "legalyze:v1:abc", []byte("v"), 0))

	mock.ExpectSet("legalyze:v1:abc", []byte("v"), time.Minute).SetErr(errors.New("readonly"))
	err := c.Set(context.Background(), "legalyze:v1:abc", []byte("v"), time.Minute)
	assert.ErrorContains(t, err, "readonly")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, time.Hour)

	mock.ExpectDel("legalyze:v1:abc").SetVal(1)
	assert.NoError(t, c.Delete(context.Background(), "legalyze:v1:abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_ClearScansPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, time.Hour)

	mock.ExpectScan(0, "legalyze:v1:*", 100).SetVal([]string{"legalyze:v1:a", "legalyze:v1:b"}, 7)
	mock.ExpectDel("legalyze:v1:a", "legalyze:v1:b").SetVal(2)
	mock.ExpectScan(7, "legalyze:v1:*", 100).SetVal([]string{}, 0)

	require.NoError(t, c.Clear(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_ClearScanError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, time.Hour)

	mock.ExpectScan(0, "legalyze:v1:*", 100).SetErr(errors.New("timeout"))
	assert.ErrorContains(t, c.Clear(context.Background()), "redis scan")
}
