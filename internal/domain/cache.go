package domain

import (
	"context"
	"strconv"
)

// Ключи кеша — единое место, чтобы не расползались по коду.
// Списки и сводка версионируются общим счётчиком: загрузка/удаление делает
// INCR, старые ключи отмирают по TTL.
func CacheKeyCatalogVer() string         { return "catalog:ver" }
func CacheKeyFilesList(ver int64) string { return "files:list:" + strconv.FormatInt(ver, 10) }
func CacheKeyStats(ver int64) string     { return "files:stats:" + strconv.FormatInt(ver, 10) }

// Простой k/v интерфейс. Реализация — Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Ping(context.Context) error
	Close()
}
