package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
	"github.com/pbarbosa/vehicle-sales/internal/metrics"
	"github.com/pbarbosa/vehicle-sales/internal/port"
)

var (
	ErrInvalidCPF             = errors.New("invalid customer cpf")
	ErrInvalidPrice           = errors.New("invalid sale price")
	ErrVehicleNotFound        = errors.New("vehicle not found")
	ErrVehicleUnavailable     = errors.New("vehicle not available for sale")
	ErrDuplicateSale          = errors.New("vehicle already has an active sale")
	ErrSaleNotFound           = errors.New("sale not found")
	ErrInvalidStateTransition = errors.New("sale is not pending")
	ErrInvalidOutcome         = errors.New("unknown payment outcome")
)

// SortOrder selects optional price ordering on listings.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "asc"
	SortPriceDesc SortOrder = "desc"
)

type CreateSaleInput struct {
	VehicleID    string
	CustomerName string
	CustomerCPF  string
	SalePrice    string
}

// SaleService drives the sale state machine: pending on creation, then
// exactly one transition to completed or canceled via ProcessPayment.
type SaleService struct {
	repo     port.SaleRepository
	catalog  port.VehicleCatalog
	notifier port.WebhookNotifier
	lock     port.SaleLock
	log      *zap.Logger
	metrics  *metrics.Metrics
}

// NewSaleService wires the orchestrator. lock may be nil, in which case
// duplicate prevention relies on the repository existence check alone.
func NewSaleService(repo port.SaleRepository, catalog port.VehicleCatalog, notifier port.WebhookNotifier, lock port.SaleLock, log *zap.Logger, m *metrics.Metrics) *SaleService {
	return &SaleService{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		lock:     lock,
		log:      log,
		metrics:  m,
	}
}

// CreateSale validates the customer and vehicle, guards against a second sale
// of the same VIN and persists the sale in pending state. The inventory
// service is only notified later, when the payment is approved.
func (s *SaleService) CreateSale(ctx context.Context, in CreateSaleInput) (*domain.Sale, error) {
	cpf, err := domain.NewCPF(in.CustomerCPF)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCPF, err)
	}

	if !validPrice(in.SalePrice) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, in.SalePrice)
	}

	vehicle, err := s.catalog.GetByID(ctx, in.VehicleID)
	if err != nil {
		if errors.Is(err, port.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("vehicle lookup %s: %w", in.VehicleID, err)
	}

	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, ErrVehicleUnavailable
	}

	existing, err := s.repo.FindActiveByVIN(ctx, vehicle.VIN)
	if err != nil {
		return nil, fmt.Errorf("duplicate check vin %s: %w", vehicle.VIN, err)
	}
	if existing != nil {
		return nil, ErrDuplicateSale
	}

	if s.lock != nil {
		ok, err := s.lock.ReserveVIN(ctx, vehicle.VIN)
		if err != nil {
			return nil, fmt.Errorf("reserve vin %s: %w", vehicle.VIN, err)
		}
		if !ok {
			return nil, ErrDuplicateSale
		}
	}

	sale := domain.Sale{
		ID:           uuid.NewString(),
		VehicleID:    vehicle.ID,
		CustomerName: in.CustomerName,
		CustomerCPF:  cpf,
		Make:         vehicle.Make,
		Model:        vehicle.Model,
		Year:         vehicle.Year,
		VIN:          vehicle.VIN,
		Color:        vehicle.Color,
		Price:        in.SalePrice,
		SaleDate:     time.Now(),
		Status:       domain.SaleStatusPending,
	}

	if err := s.repo.CreateSale(ctx, sale); err != nil {
		s.releaseVIN(ctx, vehicle.VIN)
		return nil, err
	}

	s.metrics.SalesCreated.Inc()
	s.log.Info("sale created",
		zap.String("saleId", sale.ID),
		zap.String("vehicleId", sale.VehicleID),
		zap.String("vin", sale.VIN),
	)

	return &sale, nil
}

// ProcessPayment moves a pending sale to its terminal state. A repeated
// webhook for the same sale fails with ErrInvalidStateTransition.
func (s *SaleService) ProcessPayment(ctx context.Context, saleID string, outcome domain.PaymentOutcome) error {
	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("find sale %s: %w", saleID, err)
	}
	if sale == nil {
		return ErrSaleNotFound
	}

	if sale.Status != domain.SaleStatusPending {
		return ErrInvalidStateTransition
	}

	switch outcome {
	case domain.PaymentApproved:
		if err := s.repo.UpdateStatus(ctx, sale.ID, domain.SaleStatusCompleted); err != nil {
			return fmt.Errorf("complete sale %s: %w", sale.ID, err)
		}
		s.metrics.SalesCompleted.Inc()
		s.log.Info("sale completed", zap.String("saleId", sale.ID))

		// Best-effort: the sale record is the source of truth, the
		// notification is advisory.
		s.notifier.Notify(ctx, sale.VehicleID, domain.VehicleStatusSold)
		return nil

	case domain.PaymentRejected:
		if err := s.repo.UpdateStatus(ctx, sale.ID, domain.SaleStatusCanceled); err != nil {
			return fmt.Errorf("cancel sale %s: %w", sale.ID, err)
		}
		s.metrics.SalesCanceled.Inc()
		s.log.Info("sale canceled", zap.String("saleId", sale.ID))

		s.releaseVIN(ctx, sale.VIN)
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}
}

// SoldVehicles returns completed sales, optionally ordered by price.
func (s *SaleService) SoldVehicles(ctx context.Context, order SortOrder) ([]domain.Sale, error) {
	sales, err := s.repo.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	sortSalesByPrice(sales, order)
	return sales, nil
}

// SalesByCPF returns every sale for the customer, any status. The input is
// validated the same way as at creation; no match is an empty slice.
func (s *SaleService) SalesByCPF(ctx context.Context, rawCPF string) ([]domain.Sale, error) {
	cpf, err := domain.NewCPF(rawCPF)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCPF, err)
	}
	return s.repo.FindByCPF(ctx, cpf.Value())
}

func (s *SaleService) releaseVIN(ctx context.Context, vin string) {
	if s.lock == nil {
		return
	}
	if err := s.lock.ReleaseVIN(ctx, vin); err != nil {
		s.log.Error("failed to release vin reservation", zap.String("vin", vin), zap.Error(err))
	}
}

// validPrice accepts a positive decimal string with at most two fraction digits.
func validPrice(price string) bool {
	whole, frac, hasFrac := strings.Cut(price, ".")
	if hasFrac && len(frac) > 2 {
		return false
	}
	v, err := strconv.ParseFloat(price, 64)
	if err != nil || v <= 0 {
		return false
	}
	return whole != ""
}

func sortSalesByPrice(sales []domain.Sale, order SortOrder) {
	if order == SortNone {
		return
	}
	sort.SliceStable(sales, func(i, j int) bool {
		pi, _ := strconv.ParseFloat(sales[i].Price, 64)
		pj, _ := strconv.ParseFloat(sales[j].Price, 64)
		if order == SortPriceDesc {
			return pi > pj
		}
		return pi < pj
	})
}
