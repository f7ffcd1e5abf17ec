package handlers

import (
	"net/http"

	"membership/models"
	"membership/services/invoice"
	"membership/utils"
	"membership/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoiceHandler serves payment submission and the admin review surface.
type InvoiceHandler struct {
	Invoices invoice.InvoiceService
	Logger   *zap.Logger
}

// NewInvoiceHandler wires the invoice endpoints.
func NewInvoiceHandler(invoices invoice.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		Invoices: invoices,
		Logger:   logger,
	}
}

// UpdateInvoiceHandler accepts a payment submission for an existing
// invoice. Card declines come back as a 400 with a user-safe message;
// everything else unexpected is the generic internal failure.
func (h *InvoiceHandler) UpdateInvoiceHandler(c *gin.Context) {
	var submission models.PaymentSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid input"})
		return
	}

	var validationErrors []string
	if submission.PaymentType == models.PaymentTypeNoContribute {
		submission.TotalAmount = "0"
		validationErrors = validation.IsValidNoContribute(submission)
	} else {
		validationErrors = validation.IsValidPayment(submission)
	}
	if len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrors})
		return
	}

	if err := h.Invoices.PayForInvoice(c.Request.Context(), submission); err != nil {
		if invoice.IsChargeCardError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
			return
		}
		h.Logger.Error("payment submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": utils.InternalErrorMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// AcceptPaymentHandler is the admin confirmation of an offline payment.
func (h *InvoiceHandler) AcceptPaymentHandler(c *gin.Context) {
	reference := c.Param("reference")

	if err := h.Invoices.AcceptPayment(c.Request.Context(), reference); err != nil {
		h.Logger.Error("payment could not be accepted",
			zap.String("reference", reference), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Payment could not be accepted"})
		return
	}
	h.Logger.Info("invoice payment accepted", zap.String("reference", reference))
	c.JSON(http.StatusOK, gin.H{})
}

// UnconfirmedPaymentsHandler lists pending cheque/deposit invoices with
// member names for admin review.
func (h *InvoiceHandler) UnconfirmedPaymentsHandler(c *gin.Context) {
	payments, err := h.Invoices.UnconfirmedPaymentList(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, utils.InternalErrorMessage, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": payments})
}
