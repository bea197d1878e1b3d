package session

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor evicts idle sessions on a cron schedule such as "@every 10m".
type Janitor struct {
	cron    *cron.Cron
	store   *MemoryStore
	maxIdle time.Duration
	log     *slog.Logger
}

func NewJanitor(store *MemoryStore, schedule string, maxIdle time.Duration, log *slog.Logger) (*Janitor, error) {
	j := &Janitor{
		cron:    cron.New(),
		store:   store,
		maxIdle: maxIdle,
		log:     log,
	}
	if _, err := j.cron.AddFunc(schedule, j.Sweep); err != nil {
		return nil, err
	}
	return j, nil
}

// Sweep runs one eviction pass.
func (j *Janitor) Sweep() {
	if n := j.store.Prune(j.maxIdle, time.Now()); n > 0 {
		j.log.Info("evicted idle sessions", "count", n, "remaining", j.store.Len())
	}
}

func (j *Janitor) Start() { j.cron.Start() }

// Stop waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}
