package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis configuration
type Config struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// NewRedisClient creates a new Redis client
func NewRedisClient(cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConn,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// Close gracefully closes the Redis client
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// GetClientStats returns Redis client statistics
func GetClientStats(client *redis.Client) map[string]interface{} {
	stats := client.PoolStats()
	return map[string]interface{}{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// SetHashJSON stores value as JSON in field of the hash at key and resets the
// key's expiry. Both commands run in one transaction.
func SetHashJSON(ctx context.Context, client *redis.Client, key, field string, value interface{}, expiry time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	pipe := client.TxPipeline()
	pipe.HSet(ctx, key, field, data)
	if expiry > 0 {
		pipe.Expire(ctx, key, expiry)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// GetHashJSON decodes field of the hash at key into dest. It reports false
// when the key or field is missing.
func GetHashJSON(ctx context.Context, client *redis.Client, key, field string, dest interface{}) (bool, error) {
	data, err := client.HGet(ctx, key, field).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

// ErrStale is returned by SetHashJSONAt when the generation moved before the
// write could commit.
var ErrStale = errors.New("cache generation changed")

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, client getter, key string) (int64, error) {
	gen, err := client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Generation returns the counter at key, 0 when it was never bumped
func Generation(ctx context.Context, client *redis.Client, key string) (int64, error) {
	return generation(ctx, client, key)
}

// SetHashJSONAt behaves like SetHashJSON but only commits while the counter
// at genKey still equals gen. The check and the write run under WATCH, so a
// concurrent Bump makes it return ErrStale.
func SetHashJSONAt(ctx context.Context, client *redis.Client, genKey string, gen int64, key, field string, value interface{}, expiry time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	err = client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, field, data)
			if expiry > 0 {
				pipe.Expire(ctx, key, expiry)
			}
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// Bump increments every generation counter and deletes keys in one
// transaction.
func Bump(ctx context.Context, client *redis.Client, genKeys []string, keys ...string) error {
	if len(genKeys) == 0 && len(keys) == 0 {
		return nil
	}
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, g := range genKeys {
			pipe.Incr(ctx, g)
		}
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
		return nil
	})
	return err
}
