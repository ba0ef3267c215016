package storage

import (
	"context"
	"sync"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
)

// MemoryAdapter is an in-memory SaleRepository for tests and local runs. It
// honors the same contract as the MySQL adapter, including nil for no row.
type MemoryAdapter struct {
	mu    sync.RWMutex
	sales map[string]domain.Sale
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{sales: make(map[string]domain.Sale)}
}

func (m *MemoryAdapter) CreateSale(ctx context.Context, sale domain.Sale) error {
	if !domain.ValidSaleStatus(sale.Status) {
		return ErrUnknownStatus
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale
	return nil
}

func (m *MemoryAdapter) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sale, ok := m.sales[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

func (m *MemoryAdapter) FindActiveByVIN(ctx context.Context, vin string) (*domain.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sale := range m.sales {
		if sale.VIN == vin && sale.Status != domain.SaleStatusCanceled {
			s := sale
			return &s, nil
		}
	}
	return nil, nil
}

func (m *MemoryAdapter) FindByCPF(ctx context.Context, cpf string) ([]domain.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Sale
	for _, sale := range m.sales {
		if sale.CustomerCPF.Value() == cpf {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (m *MemoryAdapter) UpdateStatus(ctx context.Context, id string, status domain.SaleStatus) error {
	if !domain.ValidSaleStatus(status) {
		return ErrUnknownStatus
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sale, ok := m.sales[id]
	if !ok {
		return ErrSaleMissing
	}
	sale.Status = status
	m.sales[id] = sale
	return nil
}

func (m *MemoryAdapter) ListCompleted(ctx context.Context) ([]domain.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Sale
	for _, sale := range m.sales {
		if sale.Status == domain.SaleStatusCompleted {
			out = append(out, sale)
		}
	}
	return out, nil
}

// Count reports how many sales are stored, any status. Test helper.
func (m *MemoryAdapter) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sales)
}
