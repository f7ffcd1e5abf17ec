package member

import "membership/models"

// MemberService owns member sign-up, verification and renewal.
type MemberService interface {
	// CreateMember stores a new pre-validated member and returns it with
	// its generated id and verification hash.
	CreateMember(newMember models.Member) (*models.Member, error)
	// UpdateMember replaces a member's details, keyed by email.
	UpdateMember(updated models.Member) error
	// Verify marks the member with the given hash as verified and sends
	// the welcome email. Verifying twice is harmless.
	Verify(hash string) (*models.Member, error)
	// FindByRenewalHash loads the member a renewal link points at.
	FindByRenewalHash(hash string) (*models.Member, error)
	// Renew stamps a fresh lastRenewal date on the member with the hash.
	Renew(hash string) (*models.Member, error)
	// List returns member summaries for the admin surface.
	List() ([]models.MemberSummary, error)
}
