package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"gramhealth-go/pkg/log"
)

var RDB *redis.Client

// InitRedis connects to Redis and pings it once.
func InitRedis(addr, password string, db int) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", err)
	}
	log.Info("Redis client connected successfully")
}
