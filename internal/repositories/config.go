package repositories

type Config struct {
	// DefaultAutoSync seeds the global auto-sync flag until settings are saved.
	DefaultAutoSync bool
	// DefaultSyncInterval is used for new repositories added without an interval.
	DefaultSyncInterval int
}
