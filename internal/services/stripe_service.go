package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/grocery/internal/config"
)

var stripeHTTPClient = &http.Client{Timeout: 15 * time.Second}

// StripeService creates hosted checkout sessions with Stripe and classifies
// incoming webhook events. It never computes or verifies prices; the caller's
// amount is trusted and forwarded in minor currency units.
type StripeService struct {
	secretKey  string
	baseURL    string
	successURL string
	cancelURL  string
}

// NewStripeService constructs a StripeService from configuration.
func NewStripeService(cfg *config.Config) *StripeService {
	return &StripeService{
		secretKey:  cfg.StripeSecretKey,
		baseURL:    strings.TrimRight(cfg.StripeBaseURL, "/"),
		successURL: cfg.CheckoutSuccessURL,
		cancelURL:  cfg.CheckoutCancelURL,
	}
}

// CheckoutItem describes one cart line for the session description.
type CheckoutItem struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// CheckoutRequest is the payload for a hosted checkout session. Amount is in
// minor currency units (cents).
type CheckoutRequest struct {
	Items    []CheckoutItem `json:"items"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	UserID   string         `json:"user_id"`
	Locale   string         `json:"locale"`
}

// CheckoutSession is the hosted payment page handed back to the client.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
	Status    string `json:"status"`
}

type stripeSessionResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession creates a Stripe checkout session and returns the
// redirect URL.
func (s *StripeService) CreateCheckoutSession(req CheckoutRequest) (*CheckoutSession, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", s.successURL)
	form.Set("cancel_url", s.cancelURL)
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][product_data][name]", "Grocery Order")
	form.Set("line_items[0][price_data][product_data][description]", describeItems(req.Items))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.Amount, 10))
	form.Set("line_items[0][quantity]", "1")
	if req.UserID != "" {
		form.Set("metadata[user_id]", req.UserID)
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("stripe request build: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := stripeHTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("stripe request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var parsed stripeSessionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("stripe response unmarshal: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("stripe checkout session: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("stripe checkout session: status %d", resp.StatusCode)
	}

	status := parsed.Status
	if status == "" {
		status = "open"
	}

	return &CheckoutSession{
		SessionID: parsed.ID,
		URL:       parsed.URL,
		Status:    status,
	}, nil
}

// WebhookEvent is the inbound processor event shape.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID               string `json:"id"`
			Amount           int64  `json:"amount"`
			Currency         string `json:"currency"`
			LastPaymentError *struct {
				Message string `json:"message"`
			} `json:"last_payment_error"`
		} `json:"object"`
	} `json:"data"`
}

// WebhookResult is the classification of one event. Order state is not
// touched here.
type WebhookResult struct {
	Type            string `json:"type"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
	Amount          int64  `json:"amount,omitempty"`
	Currency        string `json:"currency,omitempty"`
	Error           string `json:"error,omitempty"`
	EventType       string `json:"event_type,omitempty"`
}

// HandleWebhookEvent classifies a processor event without acting on it.
func (s *StripeService) HandleWebhookEvent(event WebhookEvent) WebhookResult {
	switch event.Type {
	case "payment_intent.succeeded":
		return WebhookResult{
			Type:            "payment_succeeded",
			PaymentIntentID: event.Data.Object.ID,
			Amount:          event.Data.Object.Amount,
			Currency:        event.Data.Object.Currency,
		}
	case "payment_intent.payment_failed":
		result := WebhookResult{
			Type:            "payment_failed",
			PaymentIntentID: event.Data.Object.ID,
		}
		if event.Data.Object.LastPaymentError != nil {
			result.Error = event.Data.Object.LastPaymentError.Message
		}
		return result
	default:
		return WebhookResult{Type: "unhandled", EventType: event.Type}
	}
}

func describeItems(items []CheckoutItem) string {
	if len(items) == 0 {
		return "Grocery order"
	}
	if len(items) == 1 {
		return items[0].ProductName
	}
	return fmt.Sprintf("%s and %d more items", items[0].ProductName, len(items)-1)
}
