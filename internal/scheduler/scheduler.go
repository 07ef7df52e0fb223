package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/crucial707/sharebnb/internal/metrics"
	"github.com/crucial707/sharebnb/internal/repo"
	"github.com/robfig/cron/v3"
)

// Run starts the booking retention scheduler: once a day it deletes bookings
// whose end date is more than retentionDays in the past. The returned cron
// should be stopped on shutdown.
func Run(bookings *repo.BookingRepo, retentionDays int) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		purge(bookings, retentionDays)
	})
	if err != nil {
		// "@daily" is a constant expression; this only fires if it is edited badly.
		slog.Error("scheduler: register purge job", "err", err)
		return c
	}
	c.Start()
	return c
}

func purge(bookings *repo.BookingRepo, retentionDays int) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := bookings.PurgeEnded(ctx, cutoff)
	if err != nil {
		slog.Error("booking retention purge", "err", err)
		return
	}
	if n > 0 {
		metrics.BookingsPurged.Add(float64(n))
	}
	slog.Info("booking retention purge", "deleted", n, "cutoff", cutoff.Format("2006-01-02"))
}
