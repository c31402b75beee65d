package housekeeping

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Job is a single periodic maintenance task.
type Job func() error

// Ticker drives periodic maintenance for the host process (flushing the
// open note to disk). It never performs report work; a report run in
// flight and a tick may overlap without coordinating.
type Ticker struct {
	cron *cron.Cron
}

func New() *Ticker {
	return &Ticker{
		// Prevent overlapping runs of the same job
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Add schedules a job on the given cron expression.
func (t *Ticker) Add(spec string, name string, job Job) error {
	_, err := t.cron.AddFunc(spec, func() {
		if err := job(); err != nil {
			log.Printf("Housekeeping job %s failed: %v", name, err)
		}
	})
	return err
}

// Start runs the ticker until the context is cancelled.
func (t *Ticker) Start(ctx context.Context) {
	t.cron.Start()
	go func() {
		<-ctx.Done()
		t.cron.Stop()
	}()
}
