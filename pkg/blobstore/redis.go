package blobstore

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/go-redis/redis"
)

// RedisStore keeps blobs as redis strings under a key prefix.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore wraps client and waits for it to answer a ping.
// Retries back off exponentially until maxWait or ctx is done.
func NewRedisStore(ctx context.Context, client redis.UniversalClient,
	prefix string, maxWait time.Duration) (*RedisStore, error) {
	pingBackoff := backoff.NewExponentialBackOff()
	pingBackoff.MaxElapsedTime = maxWait

	err := backoff.Retry(func() error {
		return client.Ping().Err()
	}, backoff.WithContext(pingBackoff, ctx))
	if err != nil {
		return nil, err
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
	}, nil
}

func (rs *RedisStore) key(name string) string {
	return rs.prefix + name
}

func (rs *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := rs.client.Get(rs.key(name)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return data, nil
}

func (rs *RedisStore) Put(ctx context.Context, name string, data []byte) error {
	return rs.client.Set(rs.key(name), data, 0).Err()
}

func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
