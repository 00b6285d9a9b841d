package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// StartSweeper schedules PlayService.SweepIdle. The caller stops the
// returned cron when shutting down.
func StartSweeper(play *PlayService, schedule string, ttl time.Duration) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { play.SweepIdle(ttl) }); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
