// Package runner executes the project's AWS run scripts as subprocesses.
// The original tooling sourced these scripts into its own shell; running
// them as child processes with an explicit environment keeps the same
// observable contract without sharing mutable scope.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Script locations relative to the project root.
const (
	CoreScriptsDir    = "AWS_run_scripts/AWS_core_scripts"
	CleanupScriptPath = "AWS_run_scripts/AWS_bootstrap/post_run_cleanup.sh"
)

type Runner struct {
	projectRoot string
	region      string
	logger      zerolog.Logger
}

func New(projectRoot, region string, logger zerolog.Logger) *Runner {
	return &Runner{
		projectRoot: projectRoot,
		region:      region,
		logger:      logger.With().Str("service", "script_runner").Logger(),
	}
}

// RunExperiment executes the named experiment script from the core scripts
// directory, passing the project root as its only argument. A missing
// script surfaces as the shell's own failure; there is no retry.
func (r *Runner) RunExperiment(ctx context.Context, scriptName string) error {
	script := filepath.Join(r.projectRoot, CoreScriptsDir, scriptName)
	return r.runScript(ctx, script)
}

// RunCleanup executes the fixed post-run cleanup script with the project
// root as its argument.
func (r *Runner) RunCleanup(ctx context.Context) error {
	script := filepath.Join(r.projectRoot, CleanupScriptPath)
	return r.runScript(ctx, script)
}

func (r *Runner) runScript(ctx context.Context, script string) error {
	r.logger.Info().Str("script", script).Msg("running script")

	cmd := exec.CommandContext(ctx, "bash", script, r.projectRoot)
	cmd.Dir = r.projectRoot
	cmd.Env = r.childEnv(os.Environ())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("script %s failed: %w", filepath.Base(script), err)
	}

	return nil
}

// childEnv extends the parent environment for the scripts: the project
// root is appended to PYTHONPATH and AWS_DEFAULT_REGION is pinned to the
// configured region.
func (r *Runner) childEnv(parent []string) []string {
	env := make([]string, 0, len(parent)+2)
	pythonPath := r.projectRoot

	for _, kv := range parent {
		switch {
		case strings.HasPrefix(kv, "PYTHONPATH="):
			existing := strings.TrimPrefix(kv, "PYTHONPATH=")
			if existing != "" {
				pythonPath = existing + string(os.PathListSeparator) + r.projectRoot
			}
		case strings.HasPrefix(kv, "AWS_DEFAULT_REGION="):
			// replaced below
		default:
			env = append(env, kv)
		}
	}

	env = append(env, "PYTHONPATH="+pythonPath)
	env = append(env, "AWS_DEFAULT_REGION="+r.region)
	return env
}
