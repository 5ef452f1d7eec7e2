package workspacefinder

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
)

// ConfigFileName marks a workspace root.
const ConfigFileName = "tigro.yaml"

// LoadConfig loads tigro.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	t := y.Tigro
	if t.Scripts.Collector != "" {
		cfg.Scripts.Collector = t.Scripts.Collector
	}
	if t.Scripts.Dashboard != "" {
		cfg.Scripts.Dashboard = t.Scripts.Dashboard
	}
	if t.Scripts.Sender != "" {
		cfg.Scripts.Sender = t.Scripts.Sender
	}
	if t.Publish.Strategy != "" {
		cfg.Publish.Strategy = domain.PublishStrategy(t.Publish.Strategy)
	}
	if t.Publish.Remote != "" {
		cfg.Publish.Remote = t.Publish.Remote
	}
	if t.Publish.Branch != "" {
		cfg.Publish.Branch = t.Publish.Branch
	}
	if t.Publish.URL != "" {
		cfg.Publish.URL = t.Publish.URL
	}
	if t.Report.Live != nil {
		cfg.Report.Live = *t.Report.Live
	}
	if t.Logs.RetentionDays != nil {
		cfg.Logs.RetentionDays = *t.Logs.RetentionDays
	}
	if t.Paths.ResultsDir != "" {
		cfg.Paths.ResultsDir = t.Paths.ResultsDir
	}
	if t.Paths.DocsDir != "" {
		cfg.Paths.DocsDir = t.Paths.DocsDir
	}
	if t.Paths.LogsDir != "" {
		cfg.Paths.LogsDir = t.Paths.LogsDir
	}
	if t.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = t.Paths.RunsDir
	}

	return cfg, nil
}

type yamlConfig struct {
	Tigro struct {
		Scripts struct {
			Collector string `yaml:"collector"`
			Dashboard string `yaml:"dashboard"`
			Sender    string `yaml:"sender"`
		} `yaml:"scripts"`

		Publish struct {
			Strategy string `yaml:"strategy"`
			Remote   string `yaml:"remote"`
			Branch   string `yaml:"branch"`
			URL      string `yaml:"url"`
		} `yaml:"publish"`

		Report struct {
			Live *bool `yaml:"live"`
		} `yaml:"report"`

		Logs struct {
			RetentionDays *int `yaml:"retention_days"`
		} `yaml:"logs"`

		Paths struct {
			ResultsDir string `yaml:"results_dir"`
			DocsDir    string `yaml:"docs_dir"`
			LogsDir    string `yaml:"logs_dir"`
			RunsDir    string `yaml:"runs_dir"`
		} `yaml:"paths"`
	} `yaml:"tigro"`
}
