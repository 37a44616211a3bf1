package daemons

import (
	"sync"
	"time"

	"github.com/lumibank/coreledger/config"
	"github.com/lumibank/coreledger/services"
)

// StandingOrderWorker fires the standing-order tick on a fixed interval.
// Stop prevents future ticks; a tick already running completes.
type StandingOrderWorker struct {
	service  *services.StandingOrderService
	interval time.Duration
	quit     chan struct{}
	once     sync.Once
}

func NewStandingOrderWorker(service *services.StandingOrderService, interval time.Duration) *StandingOrderWorker {
	return &StandingOrderWorker{
		service:  service,
		interval: interval,
		quit:     make(chan struct{}),
	}
}

func (w *StandingOrderWorker) Start() {
	config.Logger.Infof("Standing order worker started (interval: %s)", w.interval)

	w.tick()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick()
		case <-w.quit:
			config.Logger.Info("Standing order worker stopped")
			return
		}
	}
}

func (w *StandingOrderWorker) Stop() {
	w.once.Do(func() {
		close(w.quit)
	})
}

func (w *StandingOrderWorker) tick() {
	now := time.Now()

	summary, err := w.service.ProcessStandingOrders(now)
	if err != nil {
		config.Logger.Errorf("Standing order tick failed: %v", err)
		return
	}

	config.Logger.Infof(
		"Standing order tick: due=%d processed=%d failed=%d completed=%d",
		summary.Due, summary.Processed, summary.Failed, summary.Completed,
	)

	if config.InfluxDB != nil {
		config.InfluxDB.NewPoint("standing_order_ticks", map[string]string{}, map[string]interface{}{
			"due":       summary.Due,
			"processed": summary.Processed,
			"failed":    summary.Failed,
			"completed": summary.Completed,
		})
	}
}
