package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"membership/config"
)

func ipnValues() url.Values {
	return url.Values{
		"payment_status": {"Completed"},
		"receiver_email": {"membership@pirateparty.org.au"},
		"custom":         {"42"},
		"txn_id":         {"txn-1"},
	}
}

func TestPaypalIPNVerifier(t *testing.T) {
	t.Run("accepts a VERIFIED acknowledgement", func(t *testing.T) {
		var echoed url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Errorf("failed to parse echoed form: %v", err)
			}
			echoed = r.PostForm
			w.Write([]byte("VERIFIED"))
		}))
		defer server.Close()
		config.AppConfig.PaypalServerURL = server.URL
		defer func() { config.AppConfig.PaypalServerURL = "" }()

		v := NewPaypalIPNVerifier()
		if err := v.Verify(context.Background(), ipnValues()); err != nil {
			t.Fatalf("expected verification to succeed: %v", err)
		}
		if echoed.Get("cmd") != "_notify-validate" {
			t.Errorf("expected the validate command, got %q", echoed.Get("cmd"))
		}
		if echoed.Get("txn_id") != "txn-1" {
			t.Errorf("expected the original fields echoed back, got %v", echoed)
		}
	})

	t.Run("rejects an INVALID acknowledgement", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("INVALID"))
		}))
		defer server.Close()
		config.AppConfig.PaypalServerURL = server.URL
		defer func() { config.AppConfig.PaypalServerURL = "" }()

		v := NewPaypalIPNVerifier()
		if err := v.Verify(context.Background(), ipnValues()); err == nil {
			t.Fatal("expected verification to fail")
		}
	})

	t.Run("fails without a configured endpoint", func(t *testing.T) {
		config.AppConfig.PaypalServerURL = ""

		v := NewPaypalIPNVerifier()
		if err := v.Verify(context.Background(), ipnValues()); err == nil {
			t.Fatal("expected verification to fail")
		}
	})
}

func TestPaypalSandbox(t *testing.T) {
	config.AppConfig.PaypalServerURL = "https://ipnpb.sandbox.paypal.com/cgi-bin/webscr"
	if !config.PaypalSandbox() {
		t.Error("expected sandbox endpoint to be detected")
	}
	config.AppConfig.PaypalServerURL = "https://ipnpb.paypal.com/cgi-bin/webscr"
	if config.PaypalSandbox() {
		t.Error("expected production endpoint to not be sandbox")
	}
	config.AppConfig.PaypalServerURL = ""
}
