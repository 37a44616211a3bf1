package daemons

import (
	"sync"
	"time"

	"github.com/lumibank/coreledger/config"
	"github.com/lumibank/coreledger/services"
)

// InterestWorker applies periodic interest across all active accounts.
type InterestWorker struct {
	service  *services.InterestService
	interval time.Duration
	quit     chan struct{}
	once     sync.Once
}

func NewInterestWorker(service *services.InterestService, interval time.Duration) *InterestWorker {
	return &InterestWorker{
		service:  service,
		interval: interval,
		quit:     make(chan struct{}),
	}
}

func (w *InterestWorker) Start() {
	config.Logger.Infof("Interest worker started (mode: %s, interval: %s)", w.service.Mode, w.interval)

	w.tick()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick()
		case <-w.quit:
			config.Logger.Info("Interest worker stopped")
			return
		}
	}
}

func (w *InterestWorker) Stop() {
	w.once.Do(func() {
		close(w.quit)
	})
}

func (w *InterestWorker) tick() {
	now := time.Now()

	summary, err := w.service.Run(now)
	if err != nil {
		config.Logger.Errorf("Interest tick failed: %v", err)
		return
	}

	total, _ := summary.TotalInterestPaid.Float64()

	config.Logger.Infof(
		"Interest tick: accounts=%d total_paid=%s",
		summary.AccountsProcessed, summary.TotalInterestPaid.StringFixed(2),
	)

	if config.InfluxDB != nil {
		config.InfluxDB.NewPoint("interest_ticks", map[string]string{"mode": w.service.Mode}, map[string]interface{}{
			"accounts_processed":  summary.AccountsProcessed,
			"total_interest_paid": total,
		})
	}
}
