package db

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis builds the shared client from REDIS_ADDR/REDIS_PWD/REDIS_DB.
// A failed ping is logged, not fatal: the cache layer degrades to
// pass-through when Redis is unreachable.
func InitRedis() {
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PWD"),
		DB:       redisDB,
	})
	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("Error connecting to Redis: %s", err)
	} else {
		log.Println("Successfully connected to Redis")
	}
}
