package subscribers

import (
	"context"
	"strconv"

	"github.com/Domenick1991/staybooking/config"
	"github.com/redis/go-redis/v9"
)

const subscribersKey = "notifications:subscribers"

// RedisStore keeps chat ids in a Redis set so they survive restarts and
// are shared between the app and the worker.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	return NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}))
}

func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Add reports true only if chatID was not subscribed yet.
func (s *RedisStore) Add(ctx context.Context, chatID int64) (bool, error) {
	added, err := s.client.SAdd(ctx, subscribersKey, chatID).Result()
	if err != nil {
		return false, err
	}
	return added == 1, nil
}

// Remove reports true only if chatID was subscribed.
func (s *RedisStore) Remove(ctx context.Context, chatID int64) (bool, error) {
	removed, err := s.client.SRem(ctx, subscribersKey, chatID).Result()
	if err != nil {
		return false, err
	}
	return removed == 1, nil
}

func (s *RedisStore) List(ctx context.Context) ([]int64, error) {
	members, err := s.client.SMembers(ctx, subscribersKey).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
