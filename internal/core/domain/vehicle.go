package domain

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusSold      VehicleStatus = "sold"
)

// Vehicle is the upstream inventory service's record. The inventory service is
// authoritative; this system only holds read-through copies.
type Vehicle struct {
	ID     string        `json:"id"`
	Make   string        `json:"make"`
	Model  string        `json:"model"`
	Year   int           `json:"year"`
	VIN    string        `json:"vin"`
	Price  string        `json:"price"`
	Color  string        `json:"color"`
	Status VehicleStatus `json:"status"`
}
