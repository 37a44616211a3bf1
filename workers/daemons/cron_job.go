package daemons

import (
	"time"

	"github.com/lumibank/coreledger/jobs"
	"github.com/lumibank/coreledger/jobs/cron"
	"github.com/lumibank/coreledger/services"
)

type CronJob struct {
	Running bool
	Jobs    []jobs.Job
}

func NewCronJob(orders *services.StandingOrderService, interest *services.InterestService) *CronJob {
	jobs := []jobs.Job{
		&cron.MidnightJob{
			StandingOrders: orders,
			Interest:       interest,
		},
	}

	return &CronJob{Running: true, Jobs: jobs}
}

func (c *CronJob) Stop() {
	c.Running = false
}

func (c *CronJob) Start() {
	for _, job := range c.Jobs {
		go c.Process(job)
	}

	for c.Running {
		time.Sleep(1 * time.Second)
	}
}

func (c *CronJob) Process(job jobs.Job) {
	for c.Running {
		job.Process()
	}
}
