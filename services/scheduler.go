// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// StartSnapshotScheduler logs an hourly count of faucet drips over the
// trailing day — cheap visibility into faucet pool consumption.
func (s *FaucetService) StartSnapshotScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			cutoff := s.now().UTC().Add(-24 * time.Hour)
			count, err := s.Store.CountDripsSince(ctx, cutoff)
			if err != nil {
				logrus.WithError(err).Error("[Scheduler] faucet snapshot failed")
				return
			}
			logrus.WithFields(logrus.Fields{
				"drips_24h":   count,
				"drip_amount": s.DripAmount,
			}).Info("faucet snapshot")
		}),
	)
}
