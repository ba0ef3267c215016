package storage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func getRedisAdapter(t *testing.T) *RedisAdapter {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return NewRedisAdapter(client)
}

func TestReserveVIN(t *testing.T) {
	adapter := getRedisAdapter(t)
	ctx := context.Background()

	vin := "TESTVIN0000000010"
	adapter.ReleaseVIN(ctx, vin)

	ok, err := adapter.ReserveVIN(ctx, vin)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = adapter.ReserveVIN(ctx, vin)
	require.NoError(t, err)
	require.False(t, ok, "second reservation for the same VIN must fail")

	require.NoError(t, adapter.ReleaseVIN(ctx, vin))

	ok, err = adapter.ReserveVIN(ctx, vin)
	require.NoError(t, err)
	require.True(t, ok, "released VIN can be reserved again")

	adapter.ReleaseVIN(ctx, vin)
}
