package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"membership/models"

	"go.uber.org/zap"
)

// mockMemberRepo is a hand-written MemberRepository double.
type mockMemberRepo struct {
	expiring       []models.Member
	expiringErr    error
	queriedDate    string
	queriedNotify  string
	renewalHashes  map[string]string
	notifiedDates  map[string]string
	setHashErrFor  string
	setHashErr     error
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{
		renewalHashes: make(map[string]string),
		notifiedDates: make(map[string]string),
	}
}

func (m *mockMemberRepo) Create(member *models.Member) error          { return nil }
func (m *mockMemberRepo) GetByEmail(string) (*models.Member, error)   { return nil, nil }
func (m *mockMemberRepo) UpdateByEmail(member *models.Member) error   { return nil }
func (m *mockMemberRepo) GetByVerificationHash(string) (*models.Member, error) {
	return nil, nil
}
func (m *mockMemberRepo) GetByRenewalHash(string) (*models.Member, error) { return nil, nil }
func (m *mockMemberRepo) SetVerified(string, time.Time) error             { return nil }
func (m *mockMemberRepo) SetLastRenewal(string, string) error             { return nil }

func (m *mockMemberRepo) SetRenewalHash(id string, hash string) error {
	if m.setHashErr != nil && id == m.setHashErrFor {
		return m.setHashErr
	}
	m.renewalHashes[id] = hash
	return nil
}

func (m *mockMemberRepo) SetRenewalNotifiedOn(id string, notifiedOn string) error {
	m.notifiedDates[id] = notifiedOn
	return nil
}

func (m *mockMemberRepo) GetAllSummaries() ([]models.MemberSummary, error) { return nil, nil }

func (m *mockMemberRepo) FindExpiringOn(lastRenewal string, notifiedOn string) ([]models.Member, error) {
	m.queriedDate = lastRenewal
	m.queriedNotify = notifiedOn
	return m.expiring, m.expiringErr
}

// mockMessaging records renewal sends and can fail for chosen recipients.
type mockMessaging struct {
	sent    []string
	failFor map[string]error
}

func (m *mockMessaging) SendVerificationEmail(*models.Member) error { return nil }
func (m *mockMessaging) SendWelcomeEmail(*models.Member) error      { return nil }

func (m *mockMessaging) SendRenewalEmail(ctx context.Context, member *models.Member) error {
	if err, ok := m.failFor[member.ID]; ok {
		return err
	}
	m.sent = append(m.sent, member.ID)
	return nil
}

func (m *mockMessaging) Deliver(ctx context.Context, payload models.EmailPayload) error {
	return nil
}

func TestExpiringCohortDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)

	// Target renewal date is now + 90 days; the cohort renewed exactly one
	// year before that.
	got := ExpiringCohortDate(now, 90)
	want := now.AddDate(0, 0, 90).AddDate(-1, 0, 0).Format(time.DateOnly)
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	// A member who renewed a day to either side is outside the cohort.
	dayBefore := now.AddDate(0, 0, 90).AddDate(-1, 0, -1).Format(time.DateOnly)
	dayAfter := now.AddDate(0, 0, 90).AddDate(-1, 0, 1).Format(time.DateOnly)
	if got == dayBefore || got == dayAfter {
		t.Fatal("cohort date must match exactly one day")
	}
}

func TestRemindMembersToRenew(t *testing.T) {
	now := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)

	t.Run("queries the cohort for the lead window", func(t *testing.T) {
		repo := newMockMemberRepo()
		s := &RenewalScheduler{
			Members:   repo,
			Messaging: &mockMessaging{},
			Logger:    zap.NewNop(),
			LeadDays:  90,
		}

		if _, err := s.RemindMembersToRenew(context.Background(), now); err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if repo.queriedDate != ExpiringCohortDate(now, 90) {
			t.Errorf("queried wrong cohort date: %s", repo.queriedDate)
		}
		if repo.queriedNotify != now.Format(time.DateOnly) {
			t.Errorf("queried wrong notified-on date: %s", repo.queriedNotify)
		}
	})

	t.Run("one member's failure does not stop the rest", func(t *testing.T) {
		repo := newMockMemberRepo()
		repo.expiring = []models.Member{
			{ID: "m1", Email: "m1@example.org"},
			{ID: "m2", Email: "m2@example.org"},
			{ID: "m3", Email: "m3@example.org"},
		}
		msg := &mockMessaging{failFor: map[string]error{"m2": errors.New("smtp down")}}
		s := &RenewalScheduler{Members: repo, Messaging: msg, Logger: zap.NewNop(), LeadDays: 90}

		sent, err := s.RemindMembersToRenew(context.Background(), now)
		if err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if sent != 2 {
			t.Errorf("expected 2 successful notifications, got %d", sent)
		}
		if len(msg.sent) != 2 || msg.sent[0] != "m1" || msg.sent[1] != "m3" {
			t.Errorf("expected m1 and m3 to be notified, got %v", msg.sent)
		}
	})

	t.Run("a fresh hash is persisted before the reminder goes out", func(t *testing.T) {
		repo := newMockMemberRepo()
		repo.expiring = []models.Member{{ID: "m1", Email: "m1@example.org"}}
		msg := &mockMessaging{}
		s := &RenewalScheduler{Members: repo, Messaging: msg, Logger: zap.NewNop(), LeadDays: 90}

		if _, err := s.RemindMembersToRenew(context.Background(), now); err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if repo.renewalHashes["m1"] == "" {
			t.Error("expected a renewal hash to be stored")
		}
		if repo.notifiedDates["m1"] != now.Format(time.DateOnly) {
			t.Error("expected the notification date to be recorded")
		}
	})

	t.Run("hash persistence failure skips the member", func(t *testing.T) {
		repo := newMockMemberRepo()
		repo.expiring = []models.Member{{ID: "m1"}, {ID: "m2"}}
		repo.setHashErrFor = "m1"
		repo.setHashErr = errors.New("write failed")
		msg := &mockMessaging{}
		s := &RenewalScheduler{Members: repo, Messaging: msg, Logger: zap.NewNop(), LeadDays: 90}

		sent, err := s.RemindMembersToRenew(context.Background(), now)
		if err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if sent != 1 || len(msg.sent) != 1 || msg.sent[0] != "m2" {
			t.Errorf("expected only m2 to be notified, sent=%d notified=%v", sent, msg.sent)
		}
	})

	t.Run("cohort query failure fails the tick", func(t *testing.T) {
		repo := newMockMemberRepo()
		repo.expiringErr = errors.New("query timeout")
		s := &RenewalScheduler{Members: repo, Messaging: &mockMessaging{}, Logger: zap.NewNop(), LeadDays: 90}

		if _, err := s.RemindMembersToRenew(context.Background(), now); err == nil {
			t.Fatal("expected tick-level failure")
		}
	})
}
