package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"registrar/pkg/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "registrar:wizard:"

// RedisOptions configures the connection of the redis session store.
type RedisOptions struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TTL          time.Duration
}

// Redis stores sessions as plain string keys with an expiry.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*Redis)(nil)

// NewRedis connects to redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("could not parse redis url: %w", err)
	}
	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.DialTimeout > 0 {
		redisOpts.DialTimeout = opts.DialTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		redisOpts.WriteTimeout = opts.WriteTimeout
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("could not ping redis: %w", err)
	}

	return &Redis{client: client, ttl: opts.TTL}, nil
}

func key(userID domain.UserID) string {
	return keyPrefix + userID.String()
}

func (r *Redis) CurrentRequest(ctx context.Context, userID domain.UserID) (domain.DomainRequestID, error) {
	val, err := r.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.DomainRequestID{}, ErrNoSession
	}
	if err != nil {
		return domain.DomainRequestID{}, fmt.Errorf("could not read wizard session: %w", err)
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return domain.DomainRequestID{}, ErrNoSession
	}

	return domain.DomainRequestID(id), nil
}

func (r *Redis) SetCurrentRequest(ctx context.Context, userID domain.UserID, id domain.DomainRequestID) error {
	if err := r.client.Set(ctx, key(userID), id.String(), r.ttl).Err(); err != nil {
		return fmt.Errorf("could not write wizard session: %w", err)
	}

	return nil
}

func (r *Redis) Clear(ctx context.Context, userID domain.UserID) error {
	if err := r.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("could not clear wizard session: %w", err)
	}

	return nil
}

// Close closes the redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
