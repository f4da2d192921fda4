package syncer

import "time"

type Config struct {
	ReposDir    string        // Base directory holding one working copy per repository
	Timeout     time.Duration // Upper bound for a single clone or pull; 0 disables it
	Concurrency int           // Parallel syncs in a batch
}
