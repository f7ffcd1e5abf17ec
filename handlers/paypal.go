package handlers

import (
	"net/http"
	"strconv"

	"membership/config"
	"membership/gateway"
	"membership/services/invoice"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaypalHandler receives asynchronous IPN messages from PayPal. Nothing
// in the message body is trusted until the verifier has echoed it back to
// the provider and the payment fields match expectations.
type PaypalHandler struct {
	Verifier gateway.IPNVerifier
	Invoices invoice.InvoiceService
	Logger   *zap.Logger
}

// NewPaypalHandler wires the IPN endpoint.
func NewPaypalHandler(verifier gateway.IPNVerifier, invoices invoice.InvoiceService, logger *zap.Logger) *PaypalHandler {
	return &PaypalHandler{
		Verifier: verifier,
		Invoices: invoices,
		Logger:   logger,
	}
}

// HandleIPN authenticates and reconciles one gateway notification.
// Any verification, status or receiver mismatch is a 400, never silently
// accepted.
func (h *PaypalHandler) HandleIPN(c *gin.Context) {
	if config.AppConfig.PaypalServerURL == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		h.Logger.Warn("unparseable IPN body", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}
	body := c.Request.PostForm

	if err := h.Verifier.Verify(c.Request.Context(), body); err != nil {
		h.Logger.Warn("paypal IPN verification failed", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	paymentStatus := body.Get("payment_status")
	receiverEmail := body.Get("receiver_email")
	custom := body.Get("custom")
	txnID := body.Get("txn_id")

	if paymentStatus != "Completed" || receiverEmail != config.AppConfig.PaypalEmail {
		h.Logger.Warn("invalid paypal IPN request",
			zap.String("custom", custom),
			zap.String("txnId", txnID),
			zap.String("paymentStatus", paymentStatus),
			zap.String("receiverEmail", receiverEmail))
		c.Status(http.StatusBadRequest)
		return
	}

	invoiceID, err := strconv.ParseInt(custom, 10, 64)
	if err != nil {
		h.Logger.Warn("paypal IPN custom field is not an invoice id",
			zap.String("custom", custom), zap.String("txnId", txnID))
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.Invoices.PaypalChargeSuccess(c.Request.Context(), invoiceID, txnID); err != nil {
		h.Logger.Error("paypal reconciliation failed",
			zap.Int64("invoiceId", invoiceID), zap.String("txnId", txnID), zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}
	c.Status(http.StatusOK)
}
