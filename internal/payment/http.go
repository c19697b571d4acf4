package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPGateway talks to the gateway's JSON endpoints:
//
//	POST {base}/payment_intents          {amount, currency} -> {clientSecret}
//	POST {base}/payment_intents/confirm  {clientSecret, card, billingName}
//	     -> {brand, last4} or non-2xx with {error}
type HTTPGateway struct {
	baseURL string
	secret  string
	client  *http.Client
}

func NewHTTPGateway(baseURL, secret string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		secret:  secret,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *HTTPGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (Intent, error) {
	payload := map[string]interface{}{
		"amount":   amountCents,
		"currency": currency,
	}
	var out Intent
	if err := g.post(ctx, "/payment_intents", payload, &out); err != nil {
		return Intent{}, err
	}
	if out.ClientSecret == "" {
		return Intent{}, fmt.Errorf("gateway returned empty client secret")
	}
	return out, nil
}

func (g *HTTPGateway) Confirm(ctx context.Context, clientSecret string, card Card, billingName string) (CardInfo, error) {
	payload := map[string]interface{}{
		"clientSecret": clientSecret,
		"card":         card,
		"billingName":  billingName,
	}
	var out CardInfo
	if err := g.post(ctx, "/payment_intents/confirm", payload, &out); err != nil {
		return CardInfo{}, err
	}
	return out, nil
}

func (g *HTTPGateway) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.secret != "" {
		req.Header.Set("Authorization", "Bearer "+g.secret)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Error != "" {
			return &GatewayError{Message: errBody.Error}
		}
		return &GatewayError{Message: fmt.Sprintf("gateway returned status %d", resp.StatusCode)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
