package port

import (
	"context"
	"errors"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleInventory is the upstream inventory service.
type VehicleInventory interface {
	// FetchAvailable returns every vehicle currently for sale, upstream order.
	FetchAvailable(ctx context.Context) ([]domain.Vehicle, error)

	// FetchByID returns a single vehicle, or ErrVehicleNotFound.
	FetchByID(ctx context.Context, id string) (*domain.Vehicle, error)
}

// VehicleCatalog is what the services read vehicles through. The availability
// cache implements it; listings may be served stale, point lookups never are.
type VehicleCatalog interface {
	GetAllAvailable(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
}

// SaleLock reserves a VIN for the duration of a sale so two concurrent
// requests cannot both pass the duplicate check.
type SaleLock interface {
	// ReserveVIN marks the VIN as sold-in-progress, returns false if taken.
	ReserveVIN(ctx context.Context, vin string) (bool, error)

	// ReleaseVIN frees the reservation (insert failure or cancellation).
	ReleaseVIN(ctx context.Context, vin string) error
}

// WebhookNotifier tells the inventory service about a vehicle status change.
// Delivery is best-effort: implementations log failures and never return them.
type WebhookNotifier interface {
	Notify(ctx context.Context, vehicleID string, status domain.VehicleStatus)
}
