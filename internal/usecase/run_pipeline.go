package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
	"github.com/TheEMeraldNetwork/Kalimera/internal/ports"
	"github.com/TheEMeraldNetwork/Kalimera/internal/retry"
)

// Attempt caps per pipeline script, matching the automation's historical
// behavior.
const scriptAttempts = 3

// RunPipeline sequences the daily automation: prerequisite check, sentiment
// collection, dashboard generation, publish, email report, log cleanup.
// Collection and generation are fatal steps; everything after degrades.
type RunPipeline struct {
	root string
	cfg  domain.Config

	runner    ports.ProcessRunner
	syncer    ports.DocSyncer
	publisher ports.GitPublisher
	summaries ports.SummaryLoader
	sender    ports.ReportSender
	janitor   ports.LogJanitor
	store     ports.ReportStore // optional

	log   *slog.Logger
	delay time.Duration
	now   func() time.Time
}

type Deps struct {
	Runner    ports.ProcessRunner
	Syncer    ports.DocSyncer
	Publisher ports.GitPublisher
	Summaries ports.SummaryLoader
	Sender    ports.ReportSender
	Janitor   ports.LogJanitor
	Store     ports.ReportStore
	Logger    *slog.Logger
}

type Option func(*RunPipeline)

// WithRetryDelay overrides the fixed inter-attempt delay (tests).
func WithRetryDelay(d time.Duration) Option {
	return func(uc *RunPipeline) { uc.delay = d }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(uc *RunPipeline) { uc.now = now }
}

func NewRunPipeline(root string, cfg domain.Config, deps Deps, opts ...Option) *RunPipeline {
	uc := &RunPipeline{
		root:      root,
		cfg:       cfg,
		runner:    deps.Runner,
		syncer:    deps.Syncer,
		publisher: deps.Publisher,
		summaries: deps.Summaries,
		sender:    deps.Sender,
		janitor:   deps.Janitor,
		store:     deps.Store,
		log:       deps.Logger,
		delay:     retry.DefaultDelay,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the whole pipeline. The returned error is non-nil only when
// a fatal step failed; degraded steps surface through the report.
func (uc *RunPipeline) Execute(ctx context.Context) (domain.RunReport, string, error) {
	report := domain.RunReport{
		StartedAt: uc.now(),
		Strategy:  uc.cfg.Publish.Strategy,
	}

	uc.log.Info("pipeline.started", "root", uc.root, "strategy", string(report.Strategy))

	fatal := func(step domain.StepResult, err error) (domain.RunReport, string, error) {
		report.Steps = append(report.Steps, step)
		report.Succeeded = false
		id := uc.finish(&report)
		return report, id, err
	}

	// 1. Prerequisites: both external scripts must exist before anything runs.
	if missing := uc.missingScripts(); len(missing) > 0 {
		err := &domain.OpError{
			Op:   "pipeline.prereq",
			Kind: domain.KindNotFound,
			Path: missing[0],
			Err:  fmt.Errorf("missing required script: %w", domain.ErrNotFound),
		}
		uc.log.Error("pipeline.prereq_failed", "missing", missing)
		return fatal(domain.StepResult{
			Step:   domain.StepPrereq,
			Status: domain.StatusFailed,
			Detail: fmt.Sprintf("missing %d required script(s)", len(missing)),
			Err:    domain.NewStepError(err),
		}, err)
	}
	report.Steps = append(report.Steps, domain.StepResult{Step: domain.StepPrereq, Status: domain.StatusOK})

	// 2. Sentiment collection (fatal).
	step, err := uc.runScript(ctx, domain.StepCollect, "sentiment analysis", uc.cfg.Scripts.Collector)
	if err != nil {
		uc.log.Error("pipeline.collect_failed", "err", err)
		return fatal(step, err)
	}
	report.Steps = append(report.Steps, step)

	// 3. Dashboard generation (fatal).
	step, err = uc.runScript(ctx, domain.StepGenerate, "dashboard generation", uc.cfg.Scripts.Dashboard)
	if err != nil {
		uc.log.Error("pipeline.generate_failed", "err", err)
		return fatal(step, err)
	}
	report.Steps = append(report.Steps, step)

	// 4. Publish. Copy trouble and commit/push trouble degrade the run;
	// a failed stage aborts it, since nothing was published at all.
	pubStep, pubErr := uc.publish(ctx, &report)
	if pubErr != nil {
		uc.log.Error("pipeline.publish_failed", "err", pubErr)
		return fatal(pubStep, pubErr)
	}
	report.Steps = append(report.Steps, pubStep)

	// 5. Email report. Never changes the run's outcome.
	report.Steps = append(report.Steps, uc.report(ctx))

	// 6. Log cleanup. Failures are handled inside the janitor.
	removed := uc.janitor.Cleanup(filepath.Join(uc.root, uc.cfg.Paths.LogsDir))
	report.Steps = append(report.Steps, domain.StepResult{
		Step:   domain.StepCleanup,
		Status: domain.StatusOK,
		Detail: fmt.Sprintf("removed %d old log file(s)", removed),
	})

	report.Succeeded = true
	id := uc.finish(&report)
	return report, id, nil
}

// missingScripts resolves the required scripts against the workspace root
// and reports the ones that are absent.
func (uc *RunPipeline) missingScripts() []string {
	var missing []string
	for _, script := range []string{uc.cfg.Scripts.Collector, uc.cfg.Scripts.Dashboard} {
		if _, err := os.Stat(uc.scriptPath(script)); err != nil {
			missing = append(missing, script)
		}
	}
	return missing
}

func (uc *RunPipeline) scriptPath(script string) string {
	if filepath.IsAbs(script) {
		return script
	}
	return filepath.Join(uc.root, script)
}

func (uc *RunPipeline) runScript(ctx context.Context, step domain.StepName, description, script string) (domain.StepResult, error) {
	uc.log.Info("pipeline.step_started", "step", string(step), "script", script)

	attempts := 0
	policy := retry.Policy{
		MaxAttempts: scriptAttempts,
		Delay:       uc.delay,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			uc.log.Error("pipeline.attempt_failed", "description", description, "attempt", attempt, "err", err)
			uc.log.Info("pipeline.retrying", "description", description, "delay", delay)
		},
	}

	err := retry.Do(ctx, policy, func() error {
		attempts++
		res, runErr := uc.runner.Run(ctx, domain.ProcessSpec{
			Args: []string{uc.scriptPath(script)},
			Dir:  uc.root,
		})
		if runErr != nil && len(res.Output) > 0 {
			uc.log.Error("pipeline.step_output", "description", description, "output", string(res.Output))
		}
		return runErr
	})

	result := domain.StepResult{Step: step, Attempts: attempts}
	if err != nil {
		result.Status = domain.StatusFailed
		result.Err = domain.NewStepError(err)
		return result, err
	}

	result.Status = domain.StatusOK
	uc.log.Info("pipeline.step_completed", "step", string(step))
	return result, nil
}

func (uc *RunPipeline) publish(ctx context.Context, report *domain.RunReport) (domain.StepResult, error) {
	step := domain.StepResult{Step: domain.StepPublish, Status: domain.StatusOK}

	// Only the tracked strategy serves the docs tree; the pages strategy
	// publishes the dashboard file the generator leaves at the root.
	if uc.cfg.Publish.Strategy == domain.StrategyTracked {
		stats, err := uc.syncer.Sync(
			filepath.Join(uc.root, uc.cfg.Paths.ResultsDir),
			filepath.Join(uc.root, uc.cfg.Paths.DocsDir),
		)
		report.Publish = stats
		if err != nil {
			uc.log.Warn("pipeline.docsync_failed", "err", err)
			step.Status = domain.StatusWarned
			step.Detail = "publish directory rebuild failed"
		} else {
			uc.log.Info("pipeline.docsync_completed", "entity_pages", stats.EntityPages, "main", stats.MainCopied)
		}
	}

	out, err := uc.publisher.Publish(ctx)
	if err != nil {
		step.Status = domain.StatusFailed
		step.Err = domain.NewStepError(err)
		return step, err
	}

	for _, w := range out.Warnings {
		uc.log.Warn("pipeline.publish_warning", "warning", w)
		step.Status = domain.StatusWarned
	}
	if step.Detail == "" {
		step.Detail = fmt.Sprintf("committed=%t pushed=%t", out.Committed, out.Pushed)
	}
	if out.Pushed {
		uc.log.Info("pipeline.dashboard_available", "url", uc.cfg.Publish.URL)
	}
	return step, nil
}

func (uc *RunPipeline) report(ctx context.Context) domain.StepResult {
	step := domain.StepResult{Step: domain.StepReport}

	if uc.cfg.Scripts.Sender == "" {
		step.Status = domain.StatusSkipped
		step.Detail = "no sender configured"
		return step
	}

	summary, err := uc.summaries.LoadLatest(filepath.Join(uc.root, uc.cfg.Paths.ResultsDir))
	if err != nil {
		uc.log.Error("pipeline.summary_load_failed", "err", err)
		step.Status = domain.StatusWarned
		step.Detail = "no sentiment summary available"
		step.Err = domain.NewStepError(err)
		return step
	}
	uc.log.Info("pipeline.summary_loaded", "entities", len(summary.Rows), "path", summary.Path)

	if err := uc.sender.Send(ctx, summary, uc.cfg.Report.Live); err != nil {
		uc.log.Error("pipeline.report_send_failed", "err", err)
		step.Status = domain.StatusWarned
		step.Detail = "email report failed to send"
		step.Err = domain.NewStepError(err)
		return step
	}

	step.Status = domain.StatusOK
	step.Detail = fmt.Sprintf("report sent for %d entities", len(summary.Rows))
	uc.log.Info("pipeline.report_sent", "entities", len(summary.Rows))
	return step
}

// finish stamps the report, logs the closing summary, and persists the
// artifact. A failed save degrades nothing: the run already happened.
func (uc *RunPipeline) finish(report *domain.RunReport) string {
	report.FinishedAt = uc.now()

	uc.log.Info("pipeline.finished",
		"succeeded", report.Succeeded,
		"duration", report.Duration().String(),
		"steps", len(report.Steps),
	)

	if uc.store == nil {
		return ""
	}
	id, err := uc.store.SaveReport(*report)
	if err != nil {
		uc.log.Warn("pipeline.report_save_failed", "err", err)
		return ""
	}
	return id
}
