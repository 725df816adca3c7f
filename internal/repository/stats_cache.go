package repository

import (
	"context"
	"time"
)

// 集計結果のキャッシュ。値はJSON文字列をそのまま持つ。
type StatsCache interface {
	// 見つからなければ ok=false（エラーではない）
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
