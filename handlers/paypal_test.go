package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"membership/config"
	"membership/services/invoice"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// mockVerifier is a hand-written IPNVerifier double.
type mockVerifier struct {
	err   error
	calls int
	seen  url.Values
}

func (m *mockVerifier) Verify(ctx context.Context, notification url.Values) error {
	m.calls++
	m.seen = notification
	return m.err
}

func ipnForm() url.Values {
	return url.Values{
		"payment_status": {"Completed"},
		"receiver_email": {"membership@pirateparty.org.au"},
		"custom":         {"42"},
		"txn_id":         {"txn-1"},
	}
}

func postIPN(verifier *mockVerifier, svc *mockInvoiceService, form url.Values) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	h := NewPaypalHandler(verifier, svc, zap.NewNop())

	w := httptest.NewRecorder()
	router := gin.New()
	router.POST("/api/payments/paypal", h.HandleIPN)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/paypal", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestHandleIPN(t *testing.T) {
	config.AppConfig.PaypalServerURL = "https://ipnpb.sandbox.paypal.com/cgi-bin/webscr"
	config.AppConfig.PaypalEmail = "membership@pirateparty.org.au"
	defer func() {
		config.AppConfig.PaypalServerURL = ""
		config.AppConfig.PaypalEmail = ""
	}()

	t.Run("verified completed payment reconciles the invoice", func(t *testing.T) {
		verifier := &mockVerifier{}
		svc := &mockInvoiceService{}

		w := postIPN(verifier, svc, ipnForm())
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if verifier.calls != 1 {
			t.Errorf("expected one verification round trip, got %d", verifier.calls)
		}
		if svc.paypalCalls != 1 || svc.paypalInvoiceID != 42 || svc.paypalTxnID != "txn-1" {
			t.Errorf("expected reconciliation of invoice 42 with txn-1, got %+v", svc)
		}
	})

	t.Run("verification failure never reaches reconciliation", func(t *testing.T) {
		verifier := &mockVerifier{err: errors.New("INVALID")}
		svc := &mockInvoiceService{}

		w := postIPN(verifier, svc, ipnForm())
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if svc.paypalCalls != 0 {
			t.Error("reconciliation must not run for an unverified notification")
		}
	})

	t.Run("non-completed status is rejected", func(t *testing.T) {
		form := ipnForm()
		form.Set("payment_status", "Refunded")
		svc := &mockInvoiceService{}

		w := postIPN(&mockVerifier{}, svc, form)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if svc.paypalCalls != 0 {
			t.Error("reconciliation must not run for a non-Completed status")
		}
	})

	t.Run("receiver mismatch is rejected", func(t *testing.T) {
		form := ipnForm()
		form.Set("receiver_email", "attacker@example.org")
		svc := &mockInvoiceService{}

		w := postIPN(&mockVerifier{}, svc, form)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if svc.paypalCalls != 0 {
			t.Error("reconciliation must not run for the wrong receiver")
		}
	})

	t.Run("non-numeric custom field is rejected", func(t *testing.T) {
		form := ipnForm()
		form.Set("custom", "FUL42")
		svc := &mockInvoiceService{}

		w := postIPN(&mockVerifier{}, svc, form)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if svc.paypalCalls != 0 {
			t.Error("reconciliation must not run without a numeric invoice id")
		}
	})

	t.Run("reconciliation conflict is a 400, not silently accepted", func(t *testing.T) {
		svc := &mockInvoiceService{paypalErr: invoice.ErrReconciliationConflict}

		w := postIPN(&mockVerifier{}, svc, ipnForm())
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestHandleIPNWithoutConfiguredGateway(t *testing.T) {
	config.AppConfig.PaypalServerURL = ""
	verifier := &mockVerifier{}
	svc := &mockInvoiceService{}

	w := postIPN(verifier, svc, ipnForm())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if verifier.calls != 0 {
		t.Error("verification must not run without a configured gateway")
	}
}
