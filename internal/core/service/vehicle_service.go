package service

import (
	"context"
	"sort"
	"strconv"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
	"github.com/pbarbosa/vehicle-sales/internal/port"
)

// VehicleService is the read-only browse facade over the availability cache.
type VehicleService struct {
	catalog port.VehicleCatalog
}

func NewVehicleService(catalog port.VehicleCatalog) *VehicleService {
	return &VehicleService{catalog: catalog}
}

// ListAvailable returns the available vehicles, optionally ordered by price.
func (s *VehicleService) ListAvailable(ctx context.Context, order SortOrder) ([]domain.Vehicle, error) {
	vehicles, err := s.catalog.GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}

	if order != SortNone {
		sort.SliceStable(vehicles, func(i, j int) bool {
			pi, _ := strconv.ParseFloat(vehicles[i].Price, 64)
			pj, _ := strconv.ParseFloat(vehicles[j].Price, 64)
			if order == SortPriceDesc {
				return pi > pj
			}
			return pi < pj
		})
	}

	return vehicles, nil
}
