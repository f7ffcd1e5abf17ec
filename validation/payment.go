package validation

import (
	"strconv"
	"strings"

	"membership/models"
)

// Field identifiers reported back to the client, in submission order.
const (
	FieldTotalAmount = "totalAmount"
	FieldPaymentType = "paymentType"
	FieldInvoiceID   = "invoiceId"
)

func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// IsValidAmount reports whether the amount is present, numeric and at
// least one whole unit.
func IsValidAmount(totalAmount string) bool {
	if isEmpty(totalAmount) || !isNumeric(totalAmount) {
		return false
	}
	amount, _ := strconv.ParseFloat(strings.TrimSpace(totalAmount), 64)
	return amount >= 1
}

// IsValidPaymentType reports whether a payment type was supplied.
func IsValidPaymentType(paymentType string) bool {
	return !isEmpty(paymentType)
}

// IsValidID reports whether the id is present and numeric.
func IsValidID(id string) bool {
	return !isEmpty(id) && isNumeric(id)
}

func isZero(totalAmount string) bool {
	if isEmpty(totalAmount) || !isNumeric(totalAmount) {
		return false
	}
	amount, _ := strconv.ParseFloat(strings.TrimSpace(totalAmount), 64)
	return amount == 0
}

// IsValidPayment validates a full payment submission and returns the
// ordered list of invalid field identifiers. An empty list means valid.
func IsValidPayment(p models.PaymentSubmission) []string {
	errors := []string{}
	if !IsValidAmount(p.TotalAmount) {
		errors = append(errors, FieldTotalAmount)
	}
	if !IsValidPaymentType(p.PaymentType) {
		errors = append(errors, FieldPaymentType)
	}
	if !IsValidID(p.InvoiceID) {
		errors = append(errors, FieldInvoiceID)
	}
	return errors
}

// IsValidNoContribute validates an explicit zero-contribution decline.
// The amount must be exactly numeric zero.
func IsValidNoContribute(p models.PaymentSubmission) []string {
	errors := []string{}
	if !isZero(p.TotalAmount) {
		errors = append(errors, FieldTotalAmount)
	}
	if !IsValidPaymentType(p.PaymentType) {
		errors = append(errors, FieldPaymentType)
	}
	if !IsValidID(p.InvoiceID) {
		errors = append(errors, FieldInvoiceID)
	}
	return errors
}
