package models

// PaymentSubmission is a client-submitted payment for an existing invoice.
// Amount and invoice id arrive as strings from the form contract and are
// only parsed after validation.
type PaymentSubmission struct {
	TotalAmount string `json:"totalAmount"`
	PaymentType string `json:"paymentType"`
	InvoiceID   string `json:"invoiceId"`
	StripeToken string `json:"stripeToken,omitempty"`
}
