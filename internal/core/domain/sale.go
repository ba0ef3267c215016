package domain

import "time"

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCanceled  SaleStatus = "canceled"
)

// ValidSaleStatus reports whether s is one of the three known states. Storage
// adapters reject anything else instead of propagating unknown values.
func ValidSaleStatus(s SaleStatus) bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCanceled:
		return true
	}
	return false
}

type PaymentOutcome string

const (
	PaymentApproved PaymentOutcome = "approved"
	PaymentRejected PaymentOutcome = "rejected"
)

// Sale denormalizes the vehicle fields at sale time so the record stays
// historically accurate even if the upstream vehicle later changes.
type Sale struct {
	ID           string     `json:"id"`
	VehicleID    string     `json:"vehicleId"`
	CustomerName string     `json:"customerName"`
	CustomerCPF  CPF        `json:"customerCpf"`
	Make         string     `json:"make"`
	Model        string     `json:"model"`
	Year         int        `json:"year"`
	VIN          string     `json:"vin"`
	Color        string     `json:"color"`
	Price        string     `json:"price"`
	SaleDate     time.Time  `json:"saleDate"`
	Status       SaleStatus `json:"status"`
}
