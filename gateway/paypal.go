package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"membership/config"
)

// IPNVerifier authenticates an asynchronous payment notification with the
// originating provider before it may be trusted.
type IPNVerifier interface {
	Verify(ctx context.Context, notification url.Values) error
}

// PaypalIPNVerifier validates an IPN message by echoing it back to the
// configured PayPal endpoint (sandbox or production) and checking for the
// VERIFIED acknowledgement.
type PaypalIPNVerifier struct {
	client *http.Client
}

// NewPaypalIPNVerifier returns a verifier with a bounded request timeout.
func NewPaypalIPNVerifier() *PaypalIPNVerifier {
	return &PaypalIPNVerifier{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify posts the notification back with cmd=_notify-validate. Anything
// other than a VERIFIED response is a failure.
func (v *PaypalIPNVerifier) Verify(ctx context.Context, notification url.Values) error {
	serverURL := config.AppConfig.PaypalServerURL
	if serverURL == "" {
		return fmt.Errorf("paypal server url is not configured")
	}

	form := url.Values{}
	for key, values := range notification {
		for _, value := range values {
			form.Add(key, value)
		}
	}
	form.Set("cmd", "_notify-validate")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build IPN verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("IPN verification request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return fmt.Errorf("failed to read IPN verification response: %w", err)
	}

	if strings.TrimSpace(string(body)) != "VERIFIED" {
		return fmt.Errorf("IPN message not verified by paypal: %q", strings.TrimSpace(string(body)))
	}
	return nil
}

// PaypalHeaders exposes the gateway configuration to the payment pages.
func PaypalHeaders() map[string]string {
	return map[string]string{
		"Paypal-Server-Url": config.AppConfig.PaypalServerURL,
		"Paypal-Return-Url": config.AppConfig.PaypalReturnURL,
		"Paypal-Email":      config.AppConfig.PaypalEmail,
	}
}
