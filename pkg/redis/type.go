package redis

import (
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config holds Redis configuration.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// DefaultConnectTimeout bounds the initial ping on connect.
const DefaultConnectTimeout = 5 * time.Second

// redisImpl implements IRedis using go-redis.
type redisImpl struct {
	client *goredis.Client
}
