package cron

import (
	"context"
	"time"

	"membership/config"
	memberRepo "membership/database/repository/member"
	"membership/services/messaging"

	"github.com/google/uuid"
	cronv3 "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RenewalScheduler runs the daily renewal-reminder job. Each tick computes
// the cohort of members whose renewal window has opened and sends one
// reminder per member, isolating failures at the member granularity.
type RenewalScheduler struct {
	Members   memberRepo.MemberRepository
	Messaging messaging.MessagingService
	Logger    *zap.Logger
	LeadDays  int
}

// NewRenewalScheduler wires the scheduler.
func NewRenewalScheduler(members memberRepo.MemberRepository, msg messaging.MessagingService, logger *zap.Logger) *RenewalScheduler {
	return &RenewalScheduler{
		Members:   members,
		Messaging: msg,
		Logger:    logger,
		LeadDays:  config.AppConfig.RenewalLeadDays,
	}
}

// Start registers the tick on the configured daily schedule and starts
// the cron runner. The returned cron can be stopped on shutdown.
func (s *RenewalScheduler) Start() (*cronv3.Cron, error) {
	c := cronv3.New(cronv3.WithSeconds())
	if _, err := c.AddFunc(config.AppConfig.RenewalCronSpec, s.tick); err != nil {
		return nil, err
	}
	c.Start()
	s.Logger.Info("renewal notification job scheduled",
		zap.String("spec", config.AppConfig.RenewalCronSpec))
	return c, nil
}

func (s *RenewalScheduler) tick() {
	s.Logger.Info("renewal notification job started")

	sent, err := s.RemindMembersToRenew(context.Background(), time.Now())
	if err != nil {
		s.Logger.Error("renewal notification job failed", zap.Error(err))
		return
	}
	s.Logger.Info("renewal notification job finished", zap.Int("notificationsSent", sent))
}

// ExpiringCohortDate returns the lastRenewal date selecting members whose
// membership expires leadDays from now: one year before now + leadDays.
func ExpiringCohortDate(now time.Time, leadDays int) string {
	return now.AddDate(0, 0, leadDays).AddDate(-1, 0, 0).Format(time.DateOnly)
}

// RemindMembersToRenew runs one tick: query the expiring cohort, then per
// member persist a fresh renewal hash, send the reminder and record the
// notification date. Returns the number of members notified. A failure
// for one member never prevents attempts for the rest; only a cohort
// query failure fails the tick.
func (s *RenewalScheduler) RemindMembersToRenew(ctx context.Context, now time.Time) (int, error) {
	today := now.Format(time.DateOnly)
	cohortDate := ExpiringCohortDate(now, s.LeadDays)

	members, err := s.Members.FindExpiringOn(cohortDate, today)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range members {
		m := members[i]

		hash := uuid.New().String()
		if err := s.Members.SetRenewalHash(m.ID, hash); err != nil {
			s.Logger.Error("failed to store renewal hash",
				zap.String("memberId", m.ID), zap.Error(err))
			continue
		}
		m.RenewalHash = hash

		if err := s.Messaging.SendRenewalEmail(ctx, &m); err != nil {
			s.Logger.Error("failed to send renewal reminder",
				zap.String("memberId", m.ID), zap.Error(err))
			continue
		}

		if err := s.Members.SetRenewalNotifiedOn(m.ID, today); err != nil {
			// The reminder went out; the member may be re-notified on a
			// rerun today, which is preferable to never recording sends.
			s.Logger.Error("failed to record renewal notification date",
				zap.String("memberId", m.ID), zap.Error(err))
		}
		sent++
	}
	return sent, nil
}
