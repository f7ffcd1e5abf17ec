package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"membership/models"
	"membership/services/invoice"
	"membership/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// mockInvoiceService is a hand-written InvoiceService double shared by the
// handler tests in this package.
type mockInvoiceService struct {
	createID           int64
	createErr          error
	payErr             error
	paySubmission      *models.PaymentSubmission
	paypalErr          error
	paypalInvoiceID    int64
	paypalTxnID        string
	paypalCalls        int
	acceptErr          error
	acceptedReferences []string
	unconfirmed        []models.UnconfirmedPayment
	unconfirmedErr     error
}

func (m *mockInvoiceService) CreateEmptyInvoice(ctx context.Context, memberEmail, membershipType string) (int64, error) {
	return m.createID, m.createErr
}

func (m *mockInvoiceService) PayForInvoice(ctx context.Context, submission models.PaymentSubmission) error {
	m.paySubmission = &submission
	return m.payErr
}

func (m *mockInvoiceService) PaypalChargeSuccess(ctx context.Context, invoiceID int64, transactionID string) error {
	m.paypalCalls++
	m.paypalInvoiceID = invoiceID
	m.paypalTxnID = transactionID
	return m.paypalErr
}

func (m *mockInvoiceService) AcceptPayment(ctx context.Context, reference string) error {
	m.acceptedReferences = append(m.acceptedReferences, reference)
	return m.acceptErr
}

func (m *mockInvoiceService) UnconfirmedPaymentList(ctx context.Context) ([]models.UnconfirmedPayment, error) {
	return m.unconfirmed, m.unconfirmedErr
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}

	w := httptest.NewRecorder()
	router := gin.New()
	router.POST(path, handler)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateInvoiceHandler(t *testing.T) {
	t.Run("invalid submission returns the field list", func(t *testing.T) {
		svc := &mockInvoiceService{}
		h := NewInvoiceHandler(svc, zap.NewNop())

		w := postJSON(t, h.UpdateInvoiceHandler, "/api/invoices/update", models.PaymentSubmission{
			TotalAmount: "0.5",
			PaymentType: "cheque",
			InvoiceID:   "42",
		})

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var resp struct {
			Errors []string `json:"errors"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp.Errors) != 1 || resp.Errors[0] != "totalAmount" {
			t.Errorf("expected [totalAmount], got %v", resp.Errors)
		}
		if svc.paySubmission != nil {
			t.Error("service must not be called for an invalid submission")
		}
	})

	t.Run("noContribute forces the amount to zero", func(t *testing.T) {
		svc := &mockInvoiceService{}
		h := NewInvoiceHandler(svc, zap.NewNop())

		w := postJSON(t, h.UpdateInvoiceHandler, "/api/invoices/update", models.PaymentSubmission{
			TotalAmount: "25",
			PaymentType: models.PaymentTypeNoContribute,
			InvoiceID:   "42",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if svc.paySubmission == nil || svc.paySubmission.TotalAmount != "0" {
			t.Errorf("expected amount forced to 0, got %+v", svc.paySubmission)
		}
	})

	t.Run("card decline is a 400 with the user-safe message", func(t *testing.T) {
		svc := &mockInvoiceService{payErr: &invoice.ChargeCardError{Message: "Failed to charge card!"}}
		h := NewInvoiceHandler(svc, zap.NewNop())

		w := postJSON(t, h.UpdateInvoiceHandler, "/api/invoices/update", models.PaymentSubmission{
			TotalAmount: "25",
			PaymentType: models.PaymentTypeStripe,
			InvoiceID:   "42",
			StripeToken: "tok_visa",
		})

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var resp struct {
			Errors string `json:"errors"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Errors != "Failed to charge card!" {
			t.Errorf("expected the user-safe decline message, got %q", resp.Errors)
		}
	})

	t.Run("unexpected failure is a generic 500", func(t *testing.T) {
		svc := &mockInvoiceService{payErr: errors.New("mongo: connection refused")}
		h := NewInvoiceHandler(svc, zap.NewNop())

		w := postJSON(t, h.UpdateInvoiceHandler, "/api/invoices/update", models.PaymentSubmission{
			TotalAmount: "25",
			PaymentType: models.PaymentTypeCheque,
			InvoiceID:   "42",
		})

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if bytes.Contains(w.Body.Bytes(), []byte("mongo")) {
			t.Errorf("internal detail leaked: %s", w.Body.String())
		}
	})

	t.Run("successful submission returns an empty object", func(t *testing.T) {
		svc := &mockInvoiceService{}
		h := NewInvoiceHandler(svc, zap.NewNop())

		w := postJSON(t, h.UpdateInvoiceHandler, "/api/invoices/update", models.PaymentSubmission{
			TotalAmount: "25",
			PaymentType: models.PaymentTypeDeposit,
			InvoiceID:   "42",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "{}" {
			t.Errorf("expected empty object body, got %s", w.Body.String())
		}
	})
}

func TestAcceptPaymentHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(svc *mockInvoiceService, reference string) *httptest.ResponseRecorder {
		h := NewInvoiceHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		router := gin.New()
		router.POST("/api/invoices/unaccepted/:reference", h.AcceptPaymentHandler)
		req := httptest.NewRequest(http.MethodPost, "/api/invoices/unaccepted/"+reference, nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("confirms the referenced invoice", func(t *testing.T) {
		svc := &mockInvoiceService{}
		w := run(svc, "FUL42")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if len(svc.acceptedReferences) != 1 || svc.acceptedReferences[0] != "FUL42" {
			t.Errorf("expected FUL42 accepted, got %v", svc.acceptedReferences)
		}
	})

	t.Run("conflict surfaces as a 500", func(t *testing.T) {
		svc := &mockInvoiceService{acceptErr: invoice.ErrReconciliationConflict}
		w := run(svc, "FUL42")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestUnconfirmedPaymentsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(svc *mockInvoiceService) *httptest.ResponseRecorder {
		h := NewInvoiceHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		router := gin.New()
		router.GET("/api/invoices/unaccepted", h.UnconfirmedPaymentsHandler)
		req := httptest.NewRequest(http.MethodGet, "/api/invoices/unaccepted", nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("lists pending offline payments", func(t *testing.T) {
		svc := &mockInvoiceService{unconfirmed: []models.UnconfirmedPayment{
			{Reference: "FUL42", PaymentType: models.PaymentTypeCheque, MemberFirstName: "Anne", MemberLastName: "Bonny"},
		}}

		w := run(svc)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp struct {
			Members []models.UnconfirmedPayment `json:"members"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp.Members) != 1 || resp.Members[0].Reference != "FUL42" {
			t.Errorf("expected the FUL42 row, got %v", resp.Members)
		}
	})

	t.Run("store failure is a generic 500", func(t *testing.T) {
		svc := &mockInvoiceService{unconfirmedErr: errors.New("cursor timeout")}

		w := run(svc)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		var resp utils.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Message != utils.InternalErrorMessage {
			t.Errorf("expected the generic message, got %q", resp.Message)
		}
		if bytes.Contains(w.Body.Bytes(), []byte("cursor")) {
			t.Errorf("internal detail leaked: %s", w.Body.String())
		}
	})
}
