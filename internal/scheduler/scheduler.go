// Package scheduler wires the daily digest job onto a cron trigger.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"hadron_scholar_backend/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type Scheduler struct {
	cron   *cron.Cron
	digest *services.DigestService
}

// New schedules the digest daily at the given UTC hour.
func New(digest *services.DigestService, hour int) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	s := &Scheduler{cron: c, digest: digest}

	spec := fmt.Sprintf("0 %d * * *", hour)
	if _, err := c.AddFunc(spec, s.runDigest); err != nil {
		return nil, fmt.Errorf("scheduling digest job: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Msg("email digest scheduler started")
}

// Stop halts the trigger and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDigest() {
	sent, failed, err := s.digest.SendDailyDigest(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("daily digest run failed")
		return
	}
	log.Info().Int("sent", sent).Int("failed", failed).Msg("daily digest run finished")
}
