package member

import (
	"fmt"
	"time"

	memberRepo "membership/database/repository/member"
	"membership/models"
	"membership/services/messaging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMemberService is the production implementation.
type DefaultMemberService struct {
	Repo      memberRepo.MemberRepository
	Messaging messaging.MessagingService
	Logger    *zap.Logger
}

// NewMemberService wires the member service.
func NewMemberService(repo memberRepo.MemberRepository, msg messaging.MessagingService, logger *zap.Logger) *DefaultMemberService {
	return &DefaultMemberService{
		Repo:      repo,
		Messaging: msg,
		Logger:    logger,
	}
}

// CreateMember stores a new member with a fresh id, verification hash and
// membership dates.
func (s *DefaultMemberService) CreateMember(newMember models.Member) (*models.Member, error) {
	today := time.Now().Format(time.DateOnly)

	newMember.ID = uuid.New().String()
	newMember.VerificationHash = uuid.New().String()
	newMember.MemberSince = today
	newMember.LastRenewal = today
	newMember.Verified = nil

	if err := s.Repo.Create(&newMember); err != nil {
		s.Logger.Error("create member failed",
			zap.String("email", newMember.Email), zap.Error(err))
		return nil, fmt.Errorf("create member failed: %w", err)
	}
	s.Logger.Info("member signed up",
		zap.String("memberId", newMember.ID),
		zap.String("membershipType", newMember.MembershipType))
	return &newMember, nil
}

// UpdateMember replaces a member's details, keyed by email.
func (s *DefaultMemberService) UpdateMember(updated models.Member) error {
	if err := s.Repo.UpdateByEmail(&updated); err != nil {
		s.Logger.Error("update member failed",
			zap.String("email", updated.Email), zap.Error(err))
		return fmt.Errorf("update member failed: %w", err)
	}
	s.Logger.Info("member details updated", zap.String("email", updated.Email))
	return nil
}

// Verify marks a member as verified and sends the welcome email. An
// unknown hash is a hard error; an already-verified member is not.
func (s *DefaultMemberService) Verify(hash string) (*models.Member, error) {
	m, err := s.Repo.GetByVerificationHash(hash)
	if err != nil {
		s.Logger.Error("member verification failed", zap.Error(err))
		return nil, fmt.Errorf("account could not be verified: %w", err)
	}

	if m.Verified == nil {
		now := time.Now()
		if err := s.Repo.SetVerified(m.ID, now); err != nil {
			s.Logger.Error("member verification failed",
				zap.String("memberId", m.ID), zap.Error(err))
			return nil, fmt.Errorf("account could not be verified: %w", err)
		}
		m.Verified = &now
	}

	// Welcome email is queued; delivery failures never block verification.
	if err := s.Messaging.SendWelcomeEmail(m); err != nil {
		s.Logger.Error("failed to queue welcome email",
			zap.String("memberId", m.ID), zap.Error(err))
	}

	s.Logger.Info("member verified", zap.String("memberId", m.ID))
	return m, nil
}

// FindByRenewalHash loads the member a renewal link points at.
func (s *DefaultMemberService) FindByRenewalHash(hash string) (*models.Member, error) {
	m, err := s.Repo.GetByRenewalHash(hash)
	if err != nil {
		return nil, fmt.Errorf("no member found with that renewal hash: %w", err)
	}
	return m, nil
}

// Renew stamps a fresh lastRenewal date on the member with the hash.
func (s *DefaultMemberService) Renew(hash string) (*models.Member, error) {
	m, err := s.Repo.GetByRenewalHash(hash)
	if err != nil {
		return nil, fmt.Errorf("no member found with that renewal hash: %w", err)
	}

	today := time.Now().Format(time.DateOnly)
	if err := s.Repo.SetLastRenewal(m.ID, today); err != nil {
		s.Logger.Error("member renewal failed",
			zap.String("memberId", m.ID), zap.Error(err))
		return nil, fmt.Errorf("member renewal failed: %w", err)
	}
	m.LastRenewal = today

	s.Logger.Info("member renewed", zap.String("memberId", m.ID))
	return m, nil
}

// List returns member summaries for the admin surface.
func (s *DefaultMemberService) List() ([]models.MemberSummary, error) {
	members, err := s.Repo.GetAllSummaries()
	if err != nil {
		s.Logger.Error("failed to list members", zap.Error(err))
		return nil, fmt.Errorf("an error has occurred while fetching members: %w", err)
	}
	return members, nil
}
