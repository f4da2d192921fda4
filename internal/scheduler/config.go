package scheduler

// Mode selects how a sync interval becomes a schedule.
type Mode string

const (
	// ModeInterval fires every syncIntervalSeconds exactly.
	ModeInterval Mode = "interval"
	// ModeCron buckets the interval into a minute or hour cron expression.
	ModeCron Mode = "cron"
)

type Config struct {
	Mode Mode
}
