package inventory

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
	"github.com/pbarbosa/vehicle-sales/internal/metrics"
)

type webhookPayload struct {
	VehicleID string `json:"vehicleId"`
	Status    string `json:"status"`
}

// Webhook pushes vehicle status changes to the inventory service. Delivery is
// best-effort: every failure is logged and swallowed, the sale record already
// persisted is the source of truth.
type Webhook struct {
	url     string
	http    *resty.Client
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewWebhook(url string, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *Webhook {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Webhook{
		url:     url,
		http:    resty.New().SetTimeout(timeout),
		log:     log,
		metrics: m,
	}
}

func (w *Webhook) Notify(ctx context.Context, vehicleID string, status domain.VehicleStatus) {
	resp, err := w.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(webhookPayload{VehicleID: vehicleID, Status: string(status)}).
		Post(w.url)
	if err != nil {
		w.metrics.WebhookFailures.Inc()
		w.log.Error("webhook delivery failed",
			zap.String("vehicleId", vehicleID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		w.metrics.WebhookFailures.Inc()
		w.log.Error("webhook rejected",
			zap.String("vehicleId", vehicleID),
			zap.String("status", string(status)),
			zap.Int("code", resp.StatusCode()),
		)
		return
	}

	w.log.Info("webhook delivered",
		zap.String("vehicleId", vehicleID),
		zap.String("status", string(status)),
	)
}
