package config

import (
	"context"
	"dating-chat-api/config/common"
	"dating-chat-api/config/logger"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns nil when REDIS_ADDR is unset; the service then runs as a
// single instance with the in-process change feed.
func NewRedis(cfg *common.Config, log *logger.AppLogger) *redis.Client {
	addr, password, db := cfg.GetRedisConfig()
	if addr == "" {
		log.Http.Warning.Warn().Msg("REDIS_ADDR not set, realtime events stay inside this process")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Http.Error.Error().Err(err).Str("addr", addr).Msg("failed to connect to redis")
		panic("failed to connect redis")
	}

	log.Http.Info.Info().Str("addr", addr).Msg("connected to redis")
	return rdb
}
