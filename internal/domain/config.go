package domain

import "time"

// PublishStrategy selects which git publish path a run uses.
type PublishStrategy string

const (
	// StrategyPages stages the single dashboard file and pushes it to the
	// pages branch. This mirrors the live automation path.
	StrategyPages PublishStrategy = "pages"
	// StrategyTracked stages the results and docs trees and pushes them to
	// the default branch.
	StrategyTracked PublishStrategy = "tracked"
)

// Config represents the Tigro configuration loaded from tigro.yaml.
type Config struct {
	Scripts Scripts
	Publish PublishConfig
	Report  ReportConfig
	Logs    LogsConfig
	Paths   PathsConfig
}

// Scripts names the external executables the pipeline drives.
type Scripts struct {
	Collector string // sentiment collection step
	Dashboard string // dashboard generation step
	Sender    string // email report sender (optional; empty disables the step)
}

type PublishConfig struct {
	Strategy PublishStrategy
	Remote   string
	Branch   string // pages branch for StrategyPages
	URL      string // public dashboard URL, logged after a successful sync
}

type ReportConfig struct {
	Live bool // false sends in test mode
}

type LogsConfig struct {
	RetentionDays int
}

type PathsConfig struct {
	ResultsDir string
	DocsDir    string
	LogsDir    string
	RunsDir    string
}

// Retention returns the log retention window as a duration.
func (c LogsConfig) Retention() time.Duration {
	days := c.RetentionDays
	if days <= 0 {
		days = defaultRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

const defaultRetentionDays = 30

// DefaultConfig provides sane defaults if tigro.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Scripts: Scripts{
			Collector: "sent_collect_data.py",
			Dashboard: "viz_dashboard_generator.py",
		},
		Publish: PublishConfig{
			Strategy: StrategyPages,
			Remote:   "origin",
			Branch:   "gh-pages",
			URL:      "https://theemeraldnetwork.github.io/Kalimera/",
		},
		Report: ReportConfig{Live: false},
		Logs:   LogsConfig{RetentionDays: defaultRetentionDays},
		Paths: PathsConfig{
			ResultsDir: "results",
			DocsDir:    "docs",
			LogsDir:    "logs",
			RunsDir:    "runs",
		},
	}
}
