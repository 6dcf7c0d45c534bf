package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisConn *redis.Client

// NewRedis returns a client connected to an in-process miniredis server.
// The server and client are singletons shared across scenarios.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		miniRedis, err := miniredis.Run()
		if err != nil {
			panic(err)
		}

		redisConn = redis.NewClient(&redis.Options{
			Addr: miniRedis.Addr(),
		})
	})

	return redisConn
}

// ClearRedis flushes every key, giving each scenario a cold cache.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}
