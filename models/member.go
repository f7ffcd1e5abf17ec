package models

import "time"

// Address is a residential or postal address as submitted at sign-up.
type Address struct {
	Address  string `bson:"address" json:"address"`
	Suburb   string `bson:"suburb" json:"suburb"`
	Postcode string `bson:"postcode" json:"postcode"`
	State    string `bson:"state" json:"state"`
	Country  string `bson:"country" json:"country"`
}

// Member is a membership record. Date-only fields are stored as
// "2006-01-02" strings so renewal-window queries can match exactly.
type Member struct {
	ID                   string     `bson:"id" json:"id"`
	FirstName            string     `bson:"firstName" json:"firstName"`
	LastName             string     `bson:"lastName" json:"lastName"`
	Email                string     `bson:"email" json:"email"`
	Gender               string     `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth          string     `bson:"dateOfBirth" json:"dateOfBirth"` // "DD/MM/YYYY" as submitted
	PrimaryPhoneNumber   string     `bson:"primaryPhoneNumber" json:"primaryPhoneNumber"`
	SecondaryPhoneNumber string     `bson:"secondaryPhoneNumber,omitempty" json:"secondaryPhoneNumber,omitempty"`
	ResidentialAddress   Address    `bson:"residentialAddress" json:"residentialAddress"`
	PostalAddress        Address    `bson:"postalAddress" json:"postalAddress"`
	MembershipType       string     `bson:"membershipType" json:"membershipType"`
	VerificationHash     string     `bson:"verificationHash" json:"-"`
	RenewalHash          string     `bson:"renewalHash,omitempty" json:"-"`
	Verified             *time.Time `bson:"verified,omitempty" json:"verified,omitempty"`
	MemberSince          string     `bson:"memberSince" json:"memberSince"`
	LastRenewal          string     `bson:"lastRenewal" json:"lastRenewal"`
	RenewalNotifiedOn    string     `bson:"renewalNotifiedOn,omitempty" json:"-"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// MemberSummary is the admin listing projection.
type MemberSummary struct {
	ID                 string     `bson:"id" json:"id"`
	FirstName          string     `bson:"firstName" json:"firstName"`
	LastName           string     `bson:"lastName" json:"lastName"`
	MembershipType     string     `bson:"membershipType" json:"membershipType"`
	Verified           *time.Time `bson:"verified,omitempty" json:"verified,omitempty"`
	ResidentialAddress Address    `bson:"residentialAddress" json:"residentialAddress"`
}
