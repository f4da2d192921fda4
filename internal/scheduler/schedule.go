package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	secondsPerMinute = 60
	minutesPerHour   = 60
)

// CronSpec buckets an interval into a standard five-field cron expression.
// Intervals below a minute run every minute, intervals below an hour run every
// whole number of minutes and longer ones every whole number of hours.
func CronSpec(seconds int) (string, error) {
	if seconds <= 0 {
		return "", fmt.Errorf("%w: %d seconds", ErrInvalidInterval, seconds)
	}

	if seconds < secondsPerMinute {
		return "*/1 * * * *", nil
	}

	minutes := seconds / secondsPerMinute
	if minutes < minutesPerHour {
		return fmt.Sprintf("*/%d * * * *", minutes), nil
	}

	return fmt.Sprintf("0 */%d * * *", minutes/minutesPerHour), nil
}

// Schedule converts a sync interval into a cron schedule for the given mode.
func Schedule(mode Mode, seconds int) (cron.Schedule, string, error) {
	if seconds <= 0 {
		return nil, "", fmt.Errorf("%w: %d seconds", ErrInvalidInterval, seconds)
	}

	switch mode {
	case ModeInterval, "":
		interval := time.Duration(seconds) * time.Second
		return cron.Every(interval), "@every " + interval.String(), nil
	case ModeCron:
		spec, err := CronSpec(seconds)
		if err != nil {
			return nil, "", err
		}

		schedule, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrInvalidInterval, err)
		}

		return schedule, spec, nil
	}

	return nil, "", fmt.Errorf("%w: %q", ErrInvalidMode, mode)
}
