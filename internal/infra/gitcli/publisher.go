// Package gitcli drives the version-control side of publishing by shelling
// out to git through the process runner. Git stays an opaque external tool.
package gitcli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
	"github.com/TheEMeraldNetwork/Kalimera/internal/ports"
	"github.com/TheEMeraldNetwork/Kalimera/internal/retry"
)

// Attempt caps per git operation, matching the automation's historical
// behavior: staging and committing get one retry, pushing none.
const (
	addAttempts    = 2
	commitAttempts = 2
	pushAttempts   = 1
)

type Publisher struct {
	root   string
	cfg    domain.PublishConfig
	paths  domain.PathsConfig
	runner ports.ProcessRunner
	log    *slog.Logger
	delay  time.Duration
	now    func() time.Time
}

type Option func(*Publisher)

// WithRetryDelay overrides the fixed inter-attempt delay (tests).
func WithRetryDelay(d time.Duration) Option {
	return func(p *Publisher) { p.delay = d }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

var _ ports.GitPublisher = (*Publisher)(nil)

func New(root string, cfg domain.PublishConfig, paths domain.PathsConfig, runner ports.ProcessRunner, log *slog.Logger, opts ...Option) *Publisher {
	p := &Publisher{
		root:   root,
		cfg:    cfg,
		paths:  paths,
		runner: runner,
		log:    log,
		delay:  retry.DefaultDelay,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish runs the configured strategy.
func (p *Publisher) Publish(ctx context.Context) (domain.GitOutcome, error) {
	switch p.cfg.Strategy {
	case domain.StrategyTracked:
		return p.publishTracked(ctx)
	case domain.StrategyPages, "":
		return p.publishPages(ctx)
	default:
		return domain.GitOutcome{}, &domain.OpError{
			Op:   "gitcli.publish",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unknown publish strategy %q", p.cfg.Strategy),
		}
	}
}

// publishPages stages the single dashboard file and pushes it to the
// configured pages branch.
func (p *Publisher) publishPages(ctx context.Context) (domain.GitOutcome, error) {
	var out domain.GitOutcome

	if err := p.git(ctx, "stage dashboard", addAttempts, "add", "index.html"); err != nil {
		return out, err
	}

	msg := fmt.Sprintf("Daily dashboard update - %s", p.timestamp())
	if err := p.git(ctx, "commit dashboard", commitAttempts, "commit", "-m", msg); err != nil {
		out.Warnings = append(out.Warnings, "commit failed - possibly no changes to dashboard")
	} else {
		out.Committed = true
	}

	if err := p.git(ctx, "push pages branch", pushAttempts, "push", p.cfg.Remote, p.cfg.Branch); err != nil {
		out.Warnings = append(out.Warnings, "push failed - dashboard may not be updated remotely")
	} else {
		out.Pushed = true
	}

	return out, nil
}

// publishTracked stages the results and docs trees and pushes them to the
// default branch.
func (p *Publisher) publishTracked(ctx context.Context) (domain.GitOutcome, error) {
	var out domain.GitOutcome

	if err := p.git(ctx, "stage results", addAttempts, "add", p.paths.ResultsDir); err != nil {
		return out, err
	}
	if err := p.git(ctx, "stage docs", addAttempts, "add", p.paths.DocsDir); err != nil {
		return out, err
	}

	msg := fmt.Sprintf("Update sentiment analysis and dashboard - %s", p.timestamp())
	if err := p.git(ctx, "commit trees", commitAttempts, "commit", "-m", msg); err != nil {
		out.Warnings = append(out.Warnings, "commit failed - possibly nothing to commit")
	} else {
		out.Committed = true
	}

	if err := p.git(ctx, "push default branch", pushAttempts, "push"); err != nil {
		out.Warnings = append(out.Warnings, "push failed - remote may be out of date")
	} else {
		out.Pushed = true
	}

	return out, nil
}

func (p *Publisher) git(ctx context.Context, description string, attempts int, args ...string) error {
	argv := append([]string{"git"}, args...)
	p.log.Info("gitcli.run", "description", description, "cmd", strings.Join(argv, " "))

	policy := retry.Policy{
		MaxAttempts: attempts,
		Delay:       p.delay,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			p.log.Error("gitcli.attempt_failed", "description", description, "attempt", attempt, "err", err)
			p.log.Info("gitcli.retrying", "description", description, "delay", delay)
		},
	}

	return retry.Do(ctx, policy, func() error {
		res, err := p.runner.Run(ctx, domain.ProcessSpec{Args: argv, Dir: p.root})
		if err != nil && len(res.Output) > 0 {
			p.log.Error("gitcli.output", "description", description, "output", strings.TrimSpace(string(res.Output)))
		}
		return err
	})
}

func (p *Publisher) timestamp() string {
	return p.now().Format("2006-01-02 15:04:05")
}
