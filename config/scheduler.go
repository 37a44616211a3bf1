package config

import (
	"io/ioutil"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

var Scheduler *SchedulerConfig

type SchedulerConfig struct {
	StandingOrders struct {
		IntervalMinutes int  `yaml:"interval_minutes"`
		RunAtMidnight   bool `yaml:"run_at_midnight"`
	} `yaml:"standing_orders"`
	Interest struct {
		IntervalMinutes int    `yaml:"interval_minutes"`
		CalculationMode string `yaml:"calculation_mode"`
	} `yaml:"interest"`
}

func LoadSchedulerConfig() error {
	path := os.Getenv("SCHEDULER_CONFIG")
	if path == "" {
		path = "config/scheduler.yml"
	}

	c := DefaultSchedulerConfig()

	buf, err := ioutil.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(buf, c); err != nil {
			return err
		}
	}

	Scheduler = c

	return nil
}

func DefaultSchedulerConfig() *SchedulerConfig {
	c := &SchedulerConfig{}
	c.StandingOrders.IntervalMinutes = 60
	c.Interest.IntervalMinutes = 24 * 60
	c.Interest.CalculationMode = "MONTHLY"

	return c
}

func (c *SchedulerConfig) StandingOrderInterval() time.Duration {
	return time.Duration(c.StandingOrders.IntervalMinutes) * time.Minute
}

func (c *SchedulerConfig) InterestInterval() time.Duration {
	return time.Duration(c.Interest.IntervalMinutes) * time.Minute
}
