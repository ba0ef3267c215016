package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
)

type staticCatalog struct {
	vehicles []domain.Vehicle
	err      error
}

func (c *staticCatalog) GetAllAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]domain.Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out, nil
}

func (c *staticCatalog) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return nil, errors.New("not used")
}

func TestListAvailable_KeepsUpstreamOrder(t *testing.T) {
	catalog := &staticCatalog{vehicles: []domain.Vehicle{
		{ID: "V1", Price: "50000.00"},
		{ID: "V2", Price: "30000.00"},
		{ID: "V3", Price: "40000.00"},
	}}
	svc := NewVehicleService(catalog)

	vehicles, err := svc.ListAvailable(context.Background(), SortNone)
	require.NoError(t, err)
	require.Equal(t, []string{"V1", "V2", "V3"}, vehicleIDs(vehicles))
}

func TestListAvailable_SortsByPrice(t *testing.T) {
	catalog := &staticCatalog{vehicles: []domain.Vehicle{
		{ID: "V1", Price: "50000.00"},
		{ID: "V2", Price: "30000.00"},
		{ID: "V3", Price: "40000.00"},
	}}
	svc := NewVehicleService(catalog)

	asc, err := svc.ListAvailable(context.Background(), SortPriceAsc)
	require.NoError(t, err)
	require.Equal(t, []string{"V2", "V3", "V1"}, vehicleIDs(asc))

	desc, err := svc.ListAvailable(context.Background(), SortPriceDesc)
	require.NoError(t, err)
	require.Equal(t, []string{"V1", "V3", "V2"}, vehicleIDs(desc))
}

func TestListAvailable_NumericNotLexicalSort(t *testing.T) {
	// "900.00" sorts before "18000.00" numerically, after it lexically.
	catalog := &staticCatalog{vehicles: []domain.Vehicle{
		{ID: "V1", Price: "18000.00"},
		{ID: "V2", Price: "900.00"},
	}}
	svc := NewVehicleService(catalog)

	asc, err := svc.ListAvailable(context.Background(), SortPriceAsc)
	require.NoError(t, err)
	require.Equal(t, []string{"V2", "V1"}, vehicleIDs(asc))
}

func TestListAvailable_PropagatesCatalogError(t *testing.T) {
	catalog := &staticCatalog{err: errors.New("upstream down")}
	svc := NewVehicleService(catalog)

	_, err := svc.ListAvailable(context.Background(), SortNone)
	require.Error(t, err)
}

func vehicleIDs(vehicles []domain.Vehicle) []string {
	ids := make([]string, len(vehicles))
	for i, v := range vehicles {
		ids[i] = v.ID
	}
	return ids
}
