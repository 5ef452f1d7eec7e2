package gitcli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeRunner records invocations and fails argv prefixes on demand.
type fakeRunner struct {
	calls [][]string
	fail  map[string]error // keyed by "git <subcommand>"
}

func (f *fakeRunner) Run(_ context.Context, spec domain.ProcessSpec) (domain.ProcessResult, error) {
	argv := make([]string, len(spec.Args))
	copy(argv, spec.Args)
	f.calls = append(f.calls, argv)

	if len(argv) >= 2 {
		if err, ok := f.fail[argv[0]+" "+argv[1]]; ok && err != nil {
			return domain.ProcessResult{ExitCode: 1, Output: []byte("fatal: " + argv[1])}, err
		}
	}
	return domain.ProcessResult{}, nil
}

func (f *fakeRunner) count(sub string) int {
	n := 0
	for _, c := range f.calls {
		if len(c) >= 2 && c[1] == sub {
			n++
		}
	}
	return n
}

func pagesConfig() domain.PublishConfig {
	return domain.PublishConfig{Strategy: domain.StrategyPages, Remote: "origin", Branch: "gh-pages"}
}

func trackedConfig() domain.PublishConfig {
	return domain.PublishConfig{Strategy: domain.StrategyTracked, Remote: "origin"}
}

func newPublisher(cfg domain.PublishConfig, runner *fakeRunner) *Publisher {
	fixed := time.Date(2025, 8, 30, 7, 30, 0, 0, time.UTC)
	return New("/ws", cfg, domain.DefaultConfig().Paths, runner, discard,
		WithRetryDelay(time.Millisecond),
		WithNow(func() time.Time { return fixed }),
	)
}

func TestPublishPages_HappyPath(t *testing.T) {
	runner := &fakeRunner{}
	out, err := newPublisher(pagesConfig(), runner).Publish(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !out.Committed || !out.Pushed {
		t.Fatalf("expected committed+pushed, got %+v", out)
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", out.Warnings)
	}

	if len(runner.calls) != 3 {
		t.Fatalf("expected add/commit/push, got %v", runner.calls)
	}
	push := runner.calls[2]
	if strings.Join(push, " ") != "git push origin gh-pages" {
		t.Fatalf("unexpected push argv: %v", push)
	}
}

func TestPublishPages_CommitMessageIsTimestamped(t *testing.T) {
	runner := &fakeRunner{}
	if _, err := newPublisher(pagesConfig(), runner).Publish(context.Background()); err != nil {
		t.Fatal(err)
	}

	commit := runner.calls[1]
	msg := commit[len(commit)-1]
	if !strings.Contains(msg, "2025-08-30 07:30:00") {
		t.Fatalf("expected timestamped message, got %q", msg)
	}
}

func TestPublishPages_StageFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{fail: map[string]error{"git add": errors.New("exit 128")}}
	_, err := newPublisher(pagesConfig(), runner).Publish(context.Background())
	if err == nil {
		t.Fatal("expected fatal error when staging fails")
	}
	if runner.count("add") != addAttempts {
		t.Fatalf("expected %d add attempts, got %d", addAttempts, runner.count("add"))
	}
	if runner.count("commit") != 0 || runner.count("push") != 0 {
		t.Fatal("expected no commit/push after fatal stage failure")
	}
}

func TestPublishPages_PushFailureIsAWarning(t *testing.T) {
	runner := &fakeRunner{fail: map[string]error{"git push": errors.New("exit 1")}}
	out, err := newPublisher(pagesConfig(), runner).Publish(context.Background())
	if err != nil {
		t.Fatalf("push failure must not be fatal, got %v", err)
	}
	if out.Pushed {
		t.Fatal("expected Pushed=false")
	}
	if !out.Committed {
		t.Fatal("expected commit to have succeeded")
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", out.Warnings)
	}
	if runner.count("push") != pushAttempts {
		t.Fatalf("expected %d push attempt(s), got %d", pushAttempts, runner.count("push"))
	}
}

func TestPublishPages_CommitFailureIsAWarning(t *testing.T) {
	runner := &fakeRunner{fail: map[string]error{"git commit": errors.New("exit 1")}}
	out, err := newPublisher(pagesConfig(), runner).Publish(context.Background())
	if err != nil {
		t.Fatalf("commit failure must not be fatal, got %v", err)
	}
	if out.Committed {
		t.Fatal("expected Committed=false")
	}
	if !out.Pushed {
		t.Fatal("expected push to still run")
	}
	if runner.count("commit") != commitAttempts {
		t.Fatalf("expected %d commit attempts, got %d", commitAttempts, runner.count("commit"))
	}
}

func TestPublishTracked_StagesBothTrees(t *testing.T) {
	runner := &fakeRunner{}
	out, err := newPublisher(trackedConfig(), runner).Publish(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !out.Committed || !out.Pushed {
		t.Fatalf("expected committed+pushed, got %+v", out)
	}

	if runner.count("add") != 2 {
		t.Fatalf("expected results and docs staged, got calls %v", runner.calls)
	}
	if strings.Join(runner.calls[0], " ") != "git add results" {
		t.Fatalf("unexpected first stage: %v", runner.calls[0])
	}
	if strings.Join(runner.calls[1], " ") != "git add docs" {
		t.Fatalf("unexpected second stage: %v", runner.calls[1])
	}
	if strings.Join(runner.calls[3], " ") != "git push" {
		t.Fatalf("tracked strategy pushes the default branch, got %v", runner.calls[3])
	}
}

func TestPublish_UnknownStrategy(t *testing.T) {
	runner := &fakeRunner{}
	cfg := domain.PublishConfig{Strategy: "mirror"}
	_, err := newPublisher(cfg, runner).Publish(context.Background())
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("expected no git calls, got %v", runner.calls)
	}
}
