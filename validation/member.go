package validation

import (
	"regexp"
	"time"

	"membership/models"

	"github.com/google/uuid"
)

var (
	specialCharacters = regexp.MustCompile(`[\<\>\"\%\;\(\)\&\+]`)
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern      = regexp.MustCompile(`[-+\s()\d]+`)
	auPostcodePattern = regexp.MustCompile(`^\d{4}$`)
)

// IsValidVerificationHash reports whether the hash is a v4 UUID.
func IsValidVerificationHash(hash string) bool {
	id, err := uuid.Parse(hash)
	return err == nil && id.Version() == 4
}

func isValidString(s string) bool {
	return s != "" && !specialCharacters.MatchString(s) && len(s) < 256
}

// IsValidName accepts non-empty strings without markup characters.
func IsValidName(name string) bool {
	return isValidString(name)
}

// IsValidGender accepts an empty gender or a plain string.
func IsValidGender(gender string) bool {
	return gender == "" || isValidString(gender)
}

// IsValidEmail checks the address shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone requires a non-empty phone-looking value.
func IsValidPhone(phone string) bool {
	return phone != "" && phonePattern.MatchString(phone)
}

func isValidOptionalPhone(phone string) bool {
	return phone == "" || IsValidPhone(phone)
}

// IsValidDate requires a DD/MM/YYYY date at least sixteen years in the past.
func IsValidDate(date string) bool {
	parsed, err := time.Parse("02/01/2006", date)
	if err != nil {
		return false
	}
	sixteenYearsAgo := time.Now().AddDate(-16, 0, 0)
	return !parsed.After(sixteenYearsAgo)
}

// IsValidPostcode applies the country-specific postcode rule. The country
// is an explicit parameter so concurrent validations never share state.
func IsValidPostcode(postcode, country string) bool {
	if country != "" && country != "Australia" {
		return postcode != "" && len(postcode) <= 16
	}
	return auPostcodePattern.MatchString(postcode)
}

func isValidLength(s string) bool {
	return s != "" && len(s) <= 255
}

// IsValidCountry rejects the placeholder option from the sign-up form.
func IsValidCountry(country string) bool {
	return isValidLength(country) && country != "Select Country"
}

// IsValidMembershipType reports whether the type is one of the
// recognised membership categories.
func IsValidMembershipType(membershipType string) bool {
	switch membershipType {
	case "full", "permanentResident", "supporter", "internationalSupporter":
		return true
	}
	return false
}

type addressCheck struct {
	field string
	valid func(models.Address) bool
}

var addressChecks = []addressCheck{
	{"Address", func(a models.Address) bool { return isValidLength(a.Address) }},
	{"Suburb", func(a models.Address) bool { return isValidLength(a.Suburb) }},
	{"Postcode", func(a models.Address) bool { return IsValidPostcode(a.Postcode, a.Country) }},
	{"State", func(a models.Address) bool { return isValidLength(a.State) }},
	{"Country", func(a models.Address) bool { return IsValidCountry(a.Country) }},
}

func validateAddress(address models.Address, prefix string) []string {
	errors := []string{}
	for _, check := range addressChecks {
		if !check.valid(address) {
			errors = append(errors, prefix+check.field)
		}
	}
	return errors
}

func validateDetails(member models.Member) []string {
	errors := []string{}
	if !IsValidName(member.FirstName) {
		errors = append(errors, "firstName")
	}
	if !IsValidName(member.LastName) {
		errors = append(errors, "lastName")
	}
	if !IsValidGender(member.Gender) {
		errors = append(errors, "gender")
	}
	if !IsValidEmail(member.Email) {
		errors = append(errors, "email")
	}
	if !IsValidPhone(member.PrimaryPhoneNumber) {
		errors = append(errors, "primaryPhoneNumber")
	}
	if !isValidOptionalPhone(member.SecondaryPhoneNumber) {
		errors = append(errors, "secondaryPhoneNumber")
	}
	if !IsValidDate(member.DateOfBirth) {
		errors = append(errors, "dateOfBirth")
	}
	if !IsValidMembershipType(member.MembershipType) {
		errors = append(errors, "membershipType")
	}
	return errors
}

// IsValidMember validates a sign-up or update submission and returns the
// list of invalid field identifiers. Address fields are prefixed with
// "residential" or "postal".
func IsValidMember(member models.Member) []string {
	errors := validateDetails(member)
	errors = append(errors, validateAddress(member.ResidentialAddress, "residential")...)
	errors = append(errors, validateAddress(member.PostalAddress, "postal")...)
	return errors
}

// NormalizePostalAddress falls back to the residential address when the
// postal one was left blank on the form.
func NormalizePostalAddress(member *models.Member) {
	postal := member.PostalAddress
	if postal.Address == "" && postal.Suburb == "" && postal.Postcode == "" {
		member.PostalAddress = member.ResidentialAddress
	}
}
