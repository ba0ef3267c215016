package port

import (
	"context"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
)

type SaleRepository interface {
	// CreateSale persists a new sale record.
	CreateSale(ctx context.Context, sale domain.Sale) error

	// FindByID returns the sale with the given id, or nil if absent.
	FindByID(ctx context.Context, id string) (*domain.Sale, error)

	// FindActiveByVIN returns a pending or completed sale for the VIN, or nil.
	// Canceled sales do not count: the vehicle can be sold again.
	FindActiveByVIN(ctx context.Context, vin string) (*domain.Sale, error)

	// FindByCPF returns every sale for the normalized CPF, any status.
	FindByCPF(ctx context.Context, cpf string) ([]domain.Sale, error)

	// UpdateStatus transitions the sale to the given status.
	UpdateStatus(ctx context.Context, id string, status domain.SaleStatus) error

	// ListCompleted returns all completed sales.
	ListCompleted(ctx context.Context) ([]domain.Sale, error)
}
