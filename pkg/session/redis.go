package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/umputun/mealfinder/pkg/domain"
)

const (
	redisKeyPrefix   = "mealfinder:session:"
	redisMaxAttempts = 10
)

// RedisStore keeps sessions as JSON values with a sliding TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redis by URL and checks the connection
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Get returns the session, or a new empty one if the key is missing
func (r *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewSession(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return decodeSession(id, data)
}

// Update applies fn in an optimistic transaction, retrying when the key changes underneath
func (r *RedisStore) Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	key := redisKeyPrefix + id
	var res *domain.Session

	txf := func(tx *redis.Tx) error {
		sess := domain.NewSession(id)
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("get session: %w", err)
		default:
			if sess, err = decodeSession(id, data); err != nil {
				return err
			}
		}

		if err := fn(sess); err != nil {
			return err
		}

		encoded, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			return nil
		})
		res = sess
		return err
	}

	for range redisMaxAttempts {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue // key changed, try again
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	}
	return nil, fmt.Errorf("update session %s: too many concurrent changes", id)
}

// Close closes the redis client
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func decodeSession(id string, data []byte) (*domain.Session, error) {
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	sess.ID = id
	return &sess, nil
}
