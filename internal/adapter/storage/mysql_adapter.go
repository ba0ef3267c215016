package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
)

var (
	ErrUnknownStatus = errors.New("unknown sale status")
	ErrSaleMissing   = errors.New("sale not found")
)

type MySQLAdapter struct {
	db *sql.DB
}

// NewMySQLAdapter creates the sales table if it does not exist yet.
func NewMySQLAdapter(db *sql.DB) (*MySQLAdapter, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sales (
			id VARCHAR(36) PRIMARY KEY,
			vehicle_id VARCHAR(64) NOT NULL,
			customer_name VARCHAR(255) NOT NULL,
			customer_cpf VARCHAR(11) NOT NULL,
			make VARCHAR(64) NOT NULL,
			model VARCHAR(64) NOT NULL,
			year INT NOT NULL,
			vin VARCHAR(17) NOT NULL,
			color VARCHAR(32) NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			sale_date TIMESTAMP NOT NULL,
			status VARCHAR(20) NOT NULL,
			INDEX idx_sales_vin (vin),
			INDEX idx_sales_cpf (customer_cpf)
		)`)
	if err != nil {
		return nil, fmt.Errorf("create sales table: %w", err)
	}
	return &MySQLAdapter{db: db}, nil
}

func (m *MySQLAdapter) CreateSale(ctx context.Context, sale domain.Sale) error {
	if !domain.ValidSaleStatus(sale.Status) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, sale.Status)
	}

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO sales (id, vehicle_id, customer_name, customer_cpf, make, model, year, vin, color, price, sale_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID, sale.VehicleID, sale.CustomerName, sale.CustomerCPF.Value(),
		sale.Make, sale.Model, sale.Year, sale.VIN, sale.Color, sale.Price,
		sale.SaleDate, string(sale.Status),
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	return m.querySale(ctx, `WHERE id = ?`, id)
}

func (m *MySQLAdapter) FindActiveByVIN(ctx context.Context, vin string) (*domain.Sale, error) {
	return m.querySale(ctx, `WHERE vin = ? AND status != 'canceled'`, vin)
}

func (m *MySQLAdapter) FindByCPF(ctx context.Context, cpf string) ([]domain.Sale, error) {
	return m.querySales(ctx, `WHERE customer_cpf = ?`, cpf)
}

func (m *MySQLAdapter) UpdateStatus(ctx context.Context, id string, status domain.SaleStatus) error {
	if !domain.ValidSaleStatus(status) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	result, err := m.db.ExecContext(ctx,
		`UPDATE sales SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrSaleMissing
	}
	return nil
}

func (m *MySQLAdapter) ListCompleted(ctx context.Context) ([]domain.Sale, error) {
	return m.querySales(ctx, `WHERE status = 'completed'`)
}

const saleColumns = `SELECT id, vehicle_id, customer_name, customer_cpf, make, model, year, vin, color, price, sale_date, status FROM sales `

func (m *MySQLAdapter) querySale(ctx context.Context, where string, args ...any) (*domain.Sale, error) {
	row := m.db.QueryRowContext(ctx, saleColumns+where, args...)

	sale, err := scanSale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query sale: %w", err)
	}
	return sale, nil
}

func (m *MySQLAdapter) querySales(ctx context.Context, where string, args ...any) ([]domain.Sale, error) {
	rows, err := m.db.QueryContext(ctx, saleColumns+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, *sale)
	}
	return sales, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	var (
		sale   domain.Sale
		cpf    string
		status string
	)
	err := row.Scan(&sale.ID, &sale.VehicleID, &sale.CustomerName, &cpf,
		&sale.Make, &sale.Model, &sale.Year, &sale.VIN, &sale.Color,
		&sale.Price, &sale.SaleDate, &status)
	if err != nil {
		return nil, err
	}

	if !domain.ValidSaleStatus(domain.SaleStatus(status)) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	sale.Status = domain.SaleStatus(status)

	sale.CustomerCPF, err = domain.NewCPF(cpf)
	if err != nil {
		return nil, fmt.Errorf("stored cpf: %w", err)
	}

	return &sale, nil
}
