package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	vinKeyPrefix      = "vin:"
	vinReservationTTL = 24 * time.Hour
)

// RedisAdapter holds VIN reservations so two concurrent sale requests for the
// same vehicle cannot both pass the duplicate check before either inserts.
// Reservations expire on their own in case a release is ever lost.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) ReserveVIN(ctx context.Context, vin string) (bool, error) {
	return r.client.SetNX(ctx, vinKeyPrefix+vin, 1, vinReservationTTL).Result()
}

func (r *RedisAdapter) ReleaseVIN(ctx context.Context, vin string) error {
	return r.client.Del(ctx, vinKeyPrefix+vin).Err()
}
