package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
	"github.com/pbarbosa/vehicle-sales/internal/core/service"
)

type HTTPHandler struct {
	sales    *service.SaleService
	vehicles *service.VehicleService
}

type CreateSaleRequest struct {
	VehicleID    string `json:"vehicleId"`
	CustomerName string `json:"customerName"`
	CustomerCPF  string `json:"customerCpf"`
	SalePrice    string `json:"salePrice"`
}

type PaymentWebhookRequest struct {
	SaleID  string `json:"saleId"`
	Outcome string `json:"outcome"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(sales *service.SaleService, vehicles *service.VehicleService) *HTTPHandler {
	return &HTTPHandler{sales: sales, vehicles: vehicles}
}

// Register wires the API routes onto mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/sales", h.Sales)
	mux.HandleFunc("/api/vehicles", h.ListVehicles)
	mux.HandleFunc("/api/vehicles/sold", h.ListSold)
	mux.HandleFunc("/api/payments/webhook", h.PaymentWebhook)
}

// Sales dispatches POST (create sale) and GET (query by cpf).
func (h *HTTPHandler) Sales(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createSale(w, r)
	case http.MethodGet:
		h.salesByCPF(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *HTTPHandler) createSale(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.VehicleID == "" || req.CustomerName == "" || req.CustomerCPF == "" || req.SalePrice == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing required fields"})
		return
	}

	sale, err := h.sales.CreateSale(r.Context(), service.CreateSaleInput{
		VehicleID:    req.VehicleID,
		CustomerName: req.CustomerName,
		CustomerCPF:  req.CustomerCPF,
		SalePrice:    req.SalePrice,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sale)
}

func (h *HTTPHandler) salesByCPF(w http.ResponseWriter, r *http.Request) {
	cpf := r.URL.Query().Get("cpf")
	if cpf == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing cpf parameter"})
		return
	}

	sales, err := h.sales.SalesByCPF(r.Context(), cpf)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sales == nil {
		sales = []domain.Sale{}
	}

	writeJSON(w, http.StatusOK, sales)
}

func (h *HTTPHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	order, ok := sortOrder(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "sort must be asc or desc"})
		return
	}

	vehicles, err := h.vehicles.ListAvailable(r.Context(), order)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "vehicle inventory unavailable"})
		return
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}

	writeJSON(w, http.StatusOK, vehicles)
}

func (h *HTTPHandler) ListSold(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	order, ok := sortOrder(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "sort must be asc or desc"})
		return
	}

	sales, err := h.sales.SoldVehicles(r.Context(), order)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}
	if sales == nil {
		sales = []domain.Sale{}
	}

	writeJSON(w, http.StatusOK, sales)
}

func (h *HTTPHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PaymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.SaleID == "" || req.Outcome == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing required fields"})
		return
	}

	err := h.sales.ProcessPayment(r.Context(), req.SaleID, domain.PaymentOutcome(req.Outcome))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func sortOrder(r *http.Request) (service.SortOrder, bool) {
	switch r.URL.Query().Get("sort") {
	case "":
		return service.SortNone, true
	case "asc":
		return service.SortPriceAsc, true
	case "desc":
		return service.SortPriceDesc, true
	}
	return service.SortNone, false
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrInvalidCPF):
		status = http.StatusBadRequest
		message = "invalid cpf"
	case errors.Is(err, service.ErrInvalidPrice):
		status = http.StatusBadRequest
		message = "invalid sale price"
	case errors.Is(err, service.ErrInvalidOutcome):
		status = http.StatusBadRequest
		message = "outcome must be approved or rejected"
	case errors.Is(err, service.ErrVehicleNotFound):
		status = http.StatusNotFound
		message = "vehicle not found"
	case errors.Is(err, service.ErrSaleNotFound):
		status = http.StatusNotFound
		message = "sale not found"
	case errors.Is(err, service.ErrVehicleUnavailable):
		status = http.StatusGone
		message = "vehicle already sold"
	case errors.Is(err, service.ErrDuplicateSale):
		status = http.StatusConflict
		message = "vehicle already has an active sale"
	case errors.Is(err, service.ErrInvalidStateTransition):
		status = http.StatusConflict
		message = "sale already processed"
	}

	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
