package cron

import (
	"context"
	"sync"
	"time"

	"github.com/neftit-lab/backend/pkg/xcontext"
)

type CronJob interface {
	Do(context.Context)
	RunNow() bool
	Next() time.Time
}

type CronJobManager struct {
	wait sync.WaitGroup
}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{}
}

// Start runs every job on its own schedule and blocks until ctx is done and all running jobs
// returned.
func (m *CronJobManager) Start(ctx context.Context, jobs ...CronJob) {
	xcontext.Logger(ctx).Infof("Cron job manager started with %d jobs", len(jobs))

	for _, job := range jobs {
		m.wait.Add(1)
		go m.loop(ctx, job)
	}

	m.wait.Wait()
	xcontext.Logger(ctx).Infof("Cron job manager stopped")
}

func (m *CronJobManager) loop(ctx context.Context, job CronJob) {
	defer m.wait.Done()

	if job.RunNow() {
		m.run(ctx, job)
	}

	for {
		timer := time.NewTimer(time.Until(job.Next()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			m.run(ctx, job)
		}
	}
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	xcontext.Logger(ctx).Infof("%T is running...", job)
	job.Do(ctx)
	xcontext.Logger(ctx).Infof("%T ok", job)
}
