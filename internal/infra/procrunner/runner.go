// Package procrunner executes external pipeline steps with os/exec.
package procrunner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
	"github.com/TheEMeraldNetwork/Kalimera/internal/ports"
)

// Runner runs commands in the workspace root with PATH extended to
// include it, so project-local scripts resolve without qualification.
type Runner struct {
	root string
	now  func() time.Time
}

type Option func(*Runner)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

func New(root string, opts ...Option) *Runner {
	r := &Runner{
		root: root,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.ProcessRunner = (*Runner)(nil)

func (r *Runner) Run(ctx context.Context, spec domain.ProcessSpec) (domain.ProcessResult, error) {
	if len(spec.Args) == 0 {
		return domain.ProcessResult{}, &domain.OpError{
			Op:   "procrunner.run",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("empty argv"),
		}
	}

	cmd := exec.CommandContext(ctx, spec.Args[0], spec.Args[1:]...)
	cmd.Dir = spec.Dir
	if cmd.Dir == "" {
		cmd.Dir = r.root
	}
	cmd.Env = append(r.baseEnv(), spec.ExtraEnv...)

	start := r.now()
	output, err := cmd.CombinedOutput()
	res := domain.ProcessResult{
		ExitCode: exitCode(cmd, err),
		Output:   output,
		Duration: r.now().Sub(start),
	}

	if err != nil {
		return res, &domain.OpError{
			Op:   "procrunner.run",
			Kind: domain.KindExecution,
			Path: spec.Args[0],
			Err:  fmt.Errorf("exit code %d: %w", res.ExitCode, err),
		}
	}
	return res, nil
}

// baseEnv is the inherited environment with PATH augmented so that
// scripts living at the workspace root are found by bare name.
func (r *Runner) baseEnv() []string {
	env := os.Environ()
	for i, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			env[i] = kv + string(os.PathListSeparator) + r.root
			return env
		}
	}
	return append(env, "PATH="+r.root)
}

func exitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}
