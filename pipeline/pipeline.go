package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/unified-data-studio/uds-tools/logger"
)

// Step is a single external tool invocation. Steps are data: the pipeline
// runs whatever the configuration declares, in declaration order.
type Step struct {
	Name    string
	Dir     string // working directory relative to the project root
	Command string
	Args    []string
}

// Runner executes one external command. It exists so tests can substitute a
// recording fake for os/exec.
type Runner interface {
	Run(ctx context.Context, step Step) error
}

// ExecRunner runs steps with os/exec, inheriting stdout and stderr so tool
// output reaches the console unmodified.
type ExecRunner struct {
	Root string // project root; step dirs are resolved against it
}

func (r ExecRunner) Run(ctx context.Context, step Step) error {
	cmd := exec.CommandContext(ctx, step.Command, step.Args...)
	cmd.Dir = filepath.Join(r.Root, step.Dir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// Check probes every prerequisite and reports all missing tools at once
// rather than stopping at the first.
func Check(ctx context.Context, r Runner, checks []Step) error {
	var errs *multierror.Error

	for _, c := range checks {
		if err := r.Run(ctx, c); err != nil {
			logger.Warnf("Prerequisite %s not satisfied: %v", c.Name, err)
			errs = multierror.Append(errs, fmt.Errorf("prerequisite %s: %w", c.Name, err))
		} else {
			logger.Debugf("Prerequisite %s satisfied", c.Name)
		}
	}

	return errs.ErrorOrNil()
}

// Run executes the steps in order, stopping at the first failure. Each step
// is atomic from the pipeline's perspective; there is no partial-output
// recovery.
func Run(ctx context.Context, r Runner, steps []Step) error {
	for _, step := range steps {
		logger.Infof("Running %s: %s %s", step.Name, step.Command, strings.Join(step.Args, " "))

		start := time.Now()
		if err := r.Run(ctx, step); err != nil {
			return fmt.Errorf("step %s: %w", step.Name, err)
		}

		logger.Infof("Step %s finished in %s", step.Name, time.Since(start).Round(time.Millisecond))
	}

	return nil
}
