package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
	"github.com/pbarbosa/vehicle-sales/internal/port"
)

const defaultTimeout = 5 * time.Second

// Client talks to the upstream vehicle inventory service.
type Client struct {
	baseURL string
	http    *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    resty.New().SetTimeout(timeout),
	}
}

// FetchAvailable lists every vehicle upstream still has for sale.
func (c *Client) FetchAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("isSold", "false").
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch vehicles: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch vehicles: status %d", resp.StatusCode())
	}

	var vehicles []domain.Vehicle
	if err := json.Unmarshal(resp.Body(), &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return vehicles, nil
}

// FetchByID looks a single vehicle up. A 404 maps to port.ErrVehicleNotFound;
// any other non-200 is a hard error.
func (c *Client) FetchByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.baseURL + "/" + id)
	if err != nil {
		return nil, fmt.Errorf("fetch vehicle %s: %w", id, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		var vehicle domain.Vehicle
		if err := json.Unmarshal(resp.Body(), &vehicle); err != nil {
			return nil, fmt.Errorf("decode vehicle %s: %w", id, err)
		}
		return &vehicle, nil
	case http.StatusNotFound:
		return nil, port.ErrVehicleNotFound
	default:
		return nil, fmt.Errorf("fetch vehicle %s: status %d", id, resp.StatusCode())
	}
}
