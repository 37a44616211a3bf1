package cron

import (
	"time"

	"github.com/jasonlvhit/gocron"

	"github.com/lumibank/coreledger/config"
	"github.com/lumibank/coreledger/services"
)

// MidnightJob runs the daily processing pass at 00:00: due standing orders
// first, then the interest batch. It is the calendar-schedule alternative
// to the interval workers.
type MidnightJob struct {
	StandingOrders *services.StandingOrderService
	Interest       *services.InterestService
}

func (j *MidnightJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Day().At("00:00:00").Do(j.run)
	<-s.Start()
}

func (j *MidnightJob) run() {
	now := time.Now()

	orderSummary, err := j.StandingOrders.ProcessStandingOrders(now)
	if err != nil {
		config.Logger.Errorf("Midnight standing order run failed: %v", err)
	} else {
		config.Logger.Infof(
			"Midnight standing order run: processed=%d failed=%d completed=%d",
			orderSummary.Processed, orderSummary.Failed, orderSummary.Completed,
		)
	}

	interestSummary, err := j.Interest.Run(now)
	if err != nil {
		config.Logger.Errorf("Midnight interest run failed: %v", err)
		return
	}

	config.Logger.Infof(
		"Midnight interest run: accounts=%d total_paid=%s",
		interestSummary.AccountsProcessed, interestSummary.TotalInterestPaid.StringFixed(2),
	)
}
