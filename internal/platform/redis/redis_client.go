// Package redis はイベントキャッシュが使うRedisクライアントを生成します。
package redis

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

// 接続先の環境変数キー。REDIS_ADDRが優先され、
// 無ければREDIS_HOST/REDIS_PORTから組み立てます。
const (
	EnvKeyAddr = "REDIS_ADDR"
	EnvKeyHost = "REDIS_HOST"
	EnvKeyPort = "REDIS_PORT"
)

// Addr は環境変数から接続先アドレスを解決します。
func Addr() string {
	if addr := os.Getenv(EnvKeyAddr); addr != "" {
		return addr
	}
	host := os.Getenv(EnvKeyHost)
	port := os.Getenv(EnvKeyPort)
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	return host + ":" + port
}

// NewRedisClient は疎通確認済みのRedisクライアントを返します。
// キャッシュは任意の依存なので、失敗はエラーとして返し呼び出し元に
// キャッシュ無し運転を選ばせます。
func NewRedisClient() (*redis.Client, error) {
	addr := Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
