package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/grocery/internal/config"
)

func newStripeService(baseURL string) *StripeService {
	return NewStripeService(&config.Config{
		StripeSecretKey:    "sk_test_123",
		StripeBaseURL:      baseURL,
		CheckoutSuccessURL: "https://shop.example.com/success",
		CheckoutCancelURL:  "https://shop.example.com/cancel",
	})
}

func TestCreateCheckoutSession_Success(t *testing.T) {
	var gotAuth string
	var gotForm map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_abc","url":"https://checkout.stripe.com/pay/cs_test_abc"}`))
	}))
	defer ts.Close()

	svc := newStripeService(ts.URL)
	session, err := svc.CreateCheckoutSession(CheckoutRequest{
		Items: []CheckoutItem{
			{ProductName: "Organic Bananas", Quantity: 2, Price: 3.25},
			{ProductName: "Almond Milk", Quantity: 1, Price: 6.00},
		},
		Amount:   1250,
		Currency: "usd",
		UserID:   "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_abc", session.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_abc", session.URL)
	assert.Equal(t, "open", session.Status)

	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "1250", gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "usd", gotForm["line_items[0][price_data][currency]"])
	assert.Equal(t, "Organic Bananas and 1 more items",
		gotForm["line_items[0][price_data][product_data][description]"])
	assert.Equal(t, "user-1", gotForm["metadata[user_id]"])
	assert.Equal(t, "https://shop.example.com/success", gotForm["success_url"])
}

func TestCreateCheckoutSession_DefaultsCurrency(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		w.Write([]byte(`{"id":"cs_1","url":"https://checkout.stripe.com/pay/cs_1","status":"open"}`))
	}))
	defer ts.Close()

	_, err := newStripeService(ts.URL).CreateCheckoutSession(CheckoutRequest{Amount: 500})
	require.NoError(t, err)
}

func TestCreateCheckoutSession_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer ts.Close()

	_, err := newStripeService(ts.URL).CreateCheckoutSession(CheckoutRequest{Amount: 500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestHandleWebhookEvent_Classification(t *testing.T) {
	svc := newStripeService("https://api.stripe.com")

	event := WebhookEvent{Type: "payment_intent.succeeded"}
	event.Data.Object.ID = "pi_1"
	event.Data.Object.Amount = 1250
	event.Data.Object.Currency = "usd"

	result := svc.HandleWebhookEvent(event)
	assert.Equal(t, "payment_succeeded", result.Type)
	assert.Equal(t, "pi_1", result.PaymentIntentID)
	assert.Equal(t, int64(1250), result.Amount)

	failed := WebhookEvent{Type: "payment_intent.payment_failed"}
	failed.Data.Object.ID = "pi_2"
	failed.Data.Object.LastPaymentError = &struct {
		Message string `json:"message"`
	}{Message: "insufficient funds"}

	result = svc.HandleWebhookEvent(failed)
	assert.Equal(t, "payment_failed", result.Type)
	assert.Equal(t, "insufficient funds", result.Error)

	result = svc.HandleWebhookEvent(WebhookEvent{Type: "charge.refunded"})
	assert.Equal(t, "unhandled", result.Type)
	assert.Equal(t, "charge.refunded", result.EventType)
}

func TestDescribeItems(t *testing.T) {
	assert.Equal(t, "Grocery order", describeItems(nil))
	assert.Equal(t, "Organic Bananas", describeItems([]CheckoutItem{{ProductName: "Organic Bananas"}}))
	assert.Equal(t, "Organic Bananas and 2 more items", describeItems([]CheckoutItem{
		{ProductName: "Organic Bananas"}, {ProductName: "Almond Milk"}, {ProductName: "Rye Bread"},
	}))
}
