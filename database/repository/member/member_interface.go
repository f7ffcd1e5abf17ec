package memberRepo

import (
	"time"

	"membership/models"
)

// MemberRepository defines member data access.
type MemberRepository interface {
	// Create inserts a new member record.
	Create(member *models.Member) error
	// GetByEmail retrieves a member by email address.
	GetByEmail(email string) (*models.Member, error)
	// UpdateByEmail modifies an existing member record keyed by email.
	UpdateByEmail(member *models.Member) error
	// GetByVerificationHash retrieves a member by the sign-up hash.
	GetByVerificationHash(hash string) (*models.Member, error)
	// GetByRenewalHash retrieves a member by the renewal hash.
	GetByRenewalHash(hash string) (*models.Member, error)
	// SetVerified stamps the verification time on a member.
	SetVerified(id string, verifiedAt time.Time) error
	// SetLastRenewal stamps the renewal date on a member.
	SetLastRenewal(id string, lastRenewal string) error
	// SetRenewalHash stores a fresh single-use renewal token.
	SetRenewalHash(id string, hash string) error
	// SetRenewalNotifiedOn records that a reminder went out for the window.
	SetRenewalNotifiedOn(id string, notifiedOn string) error
	// GetAllSummaries lists members for the admin surface.
	GetAllSummaries() ([]models.MemberSummary, error)
	// FindExpiringOn returns members whose membership expires on the given
	// date and who have not been reminded for that window yet.
	FindExpiringOn(lastRenewal string, notifiedOn string) ([]models.Member, error)
}
