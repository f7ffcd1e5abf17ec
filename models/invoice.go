package models

import "time"

// Payment status values for an invoice. PAID is terminal.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "PAID"
)

// Recognised payment types.
const (
	PaymentTypeStripe       = "stripe"
	PaymentTypeCheque       = "cheque"
	PaymentTypeDeposit      = "deposit"
	PaymentTypeNoContribute = "noContribute"
)

// Invoice tracks what a member owes or paid for one membership event
// (sign-up or renewal). The reference is the reconciliation key used by
// gateway notifications and admin acceptance.
type Invoice struct {
	ID                 int64     `bson:"id" json:"id"`
	MemberEmail        string    `bson:"memberEmail" json:"memberEmail"`
	TotalAmountInCents int64     `bson:"totalAmountInCents" json:"totalAmountInCents"`
	PaymentDate        string    `bson:"paymentDate" json:"paymentDate"` // "2006-01-02"
	PaymentType        string    `bson:"paymentType" json:"paymentType"`
	PaymentStatus      string    `bson:"paymentStatus" json:"paymentStatus"`
	Reference          string    `bson:"reference" json:"reference"`
	TransactionID      string    `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UnconfirmedPayment is the admin review projection of a Pending
// cheque/deposit invoice joined with its member's name.
type UnconfirmedPayment struct {
	Reference          string `bson:"reference" json:"reference"`
	PaymentType        string `bson:"paymentType" json:"paymentType"`
	TotalAmountInCents int64  `bson:"totalAmountInCents" json:"totalAmountInCents"`
	PaymentStatus      string `bson:"paymentStatus" json:"paymentStatus"`
	MemberFirstName    string `bson:"memberFirstName" json:"firstName"`
	MemberLastName     string `bson:"memberLastName" json:"lastName"`
}
