package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
	"github.com/pbarbosa/vehicle-sales/internal/metrics"
	"github.com/pbarbosa/vehicle-sales/internal/port"
)

// Mock VehicleInventory
type mockInventory struct {
	mu             sync.Mutex
	available      []domain.Vehicle
	byID           map[string]domain.Vehicle
	failFetch      bool
	fetchAllCalls  int
	fetchByIDCalls int
}

func (m *mockInventory) FetchAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fetchAllCalls++
	if m.failFetch {
		return nil, errors.New("upstream down")
	}
	out := make([]domain.Vehicle, len(m.available))
	copy(out, m.available)
	return out, nil
}

func (m *mockInventory) FetchByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fetchByIDCalls++
	if m.failFetch {
		return nil, errors.New("upstream down")
	}
	v, ok := m.byID[id]
	if !ok {
		return nil, port.ErrVehicleNotFound
	}
	return &v, nil
}

func (m *mockInventory) setAvailable(vehicles []domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.available = vehicles
}

func (m *mockInventory) setFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failFetch = fail
}

func (m *mockInventory) calls() (all, byID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchAllCalls, m.fetchByIDCalls
}

func testVehicle(id, vin, price string) domain.Vehicle {
	return domain.Vehicle{
		ID:     id,
		Make:   "Toyota",
		Model:  "Corolla",
		Year:   2022,
		VIN:    vin,
		Price:  price,
		Color:  "black",
		Status: domain.VehicleStatusAvailable,
	}
}

func newTestCache(inv port.VehicleInventory, ttl time.Duration) *VehicleCache {
	return NewVehicleCache(inv, ttl, zap.NewNop(), metrics.New(prometheus.NewRegistry()))
}

func TestGetAllAvailable_SingleFetchWithinTTL(t *testing.T) {
	inv := &mockInventory{available: []domain.Vehicle{testVehicle("V1", "1HGBH41JXMN109186", "18000.00")}}
	c := newTestCache(inv, time.Minute)

	first, err := c.GetAllAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := c.GetAllAvailable(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)

	all, _ := inv.calls()
	require.Equal(t, 1, all, "second read within TTL must not hit upstream")
}

func TestGetAllAvailable_RefreshAfterClear(t *testing.T) {
	inv := &mockInventory{available: []domain.Vehicle{testVehicle("V1", "1HGBH41JXMN109186", "18000.00")}}
	c := newTestCache(inv, time.Hour)

	_, err := c.GetAllAvailable(context.Background())
	require.NoError(t, err)

	c.Clear()

	_, err = c.GetAllAvailable(context.Background())
	require.NoError(t, err)

	all, _ := inv.calls()
	require.Equal(t, 2, all, "clear must force a new fetch regardless of TTL")
}

func TestRefresh_StaleOnFailure(t *testing.T) {
	v1 := testVehicle("V1", "1HGBH41JXMN109186", "18000.00")
	inv := &mockInventory{available: []domain.Vehicle{v1}}
	// Tiny TTL so every read is a refresh attempt.
	c := newTestCache(inv, time.Nanosecond)

	_, err := c.GetAllAvailable(context.Background())
	require.NoError(t, err)

	inv.setFail(true)

	require.NoError(t, c.Refresh(context.Background()), "failure with a warm cache must be swallowed")

	vehicles, err := c.GetAllAvailable(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Vehicle{v1}, vehicles, "stale entries must be served unchanged")
}

func TestRefresh_EmptyCacheFailurePropagates(t *testing.T) {
	inv := &mockInventory{failFetch: true}
	c := newTestCache(inv, time.Minute)

	require.Error(t, c.Refresh(context.Background()))

	_, err := c.GetAllAvailable(context.Background())
	require.Error(t, err, "nothing cached, so the caller sees the upstream error")
}

func TestGetByID_NeverCached(t *testing.T) {
	v := testVehicle("V1", "1HGBH41JXMN109186", "18000.00")
	inv := &mockInventory{
		available: []domain.Vehicle{v},
		byID:      map[string]domain.Vehicle{"V1": v},
	}
	c := newTestCache(inv, time.Hour)

	// Warm the listing cache first; point lookups must still go upstream.
	_, err := c.GetAllAvailable(context.Background())
	require.NoError(t, err)

	got, err := c.GetByID(context.Background(), "V1")
	require.NoError(t, err)
	require.Equal(t, domain.VehicleStatusAvailable, got.Status)

	// Upstream flips the vehicle to sold; the next lookup must see it.
	sold := v
	sold.Status = domain.VehicleStatusSold
	inv.mu.Lock()
	inv.byID["V1"] = sold
	inv.mu.Unlock()

	got, err = c.GetByID(context.Background(), "V1")
	require.NoError(t, err)
	require.Equal(t, domain.VehicleStatusSold, got.Status)

	_, byID := inv.calls()
	require.Equal(t, 2, byID)
}

func TestGetByID_NotFound(t *testing.T) {
	inv := &mockInventory{byID: map[string]domain.Vehicle{}}
	c := newTestCache(inv, time.Minute)

	_, err := c.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, port.ErrVehicleNotFound)
}
