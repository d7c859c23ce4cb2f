// Package orchestrator sequences one training run: training delegation,
// log filtering and upload, cleanup, and instance termination, in that
// fixed order. A failing step never prevents later steps from running;
// the upload is always attempted before termination.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/mv1388/trainrun/internal/config"
	"github.com/mv1388/trainrun/internal/logfilter"
	"github.com/mv1388/trainrun/internal/models"
	"github.com/mv1388/trainrun/internal/timeutil"
)

// ScriptRunner runs the project's experiment and cleanup scripts.
type ScriptRunner interface {
	RunExperiment(ctx context.Context, scriptName string) error
	RunCleanup(ctx context.Context) error
}

// Uploader copies a local file to the configured object storage prefix.
type Uploader interface {
	Upload(ctx context.Context, localPath string) error
}

// InstanceTerminator terminates the instance the run is executing on.
type InstanceTerminator interface {
	TerminateCurrent(ctx context.Context) (string, error)
}

type Orchestrator struct {
	cfg        *config.Config
	runner     ScriptRunner
	uploader   Uploader
	terminator InstanceTerminator
	logger     zerolog.Logger
}

// New creates an orchestrator. The uploader and terminator may be nil when
// their steps are gated off by the configuration.
func New(cfg *config.Config, runner ScriptRunner, uploader Uploader, terminator InstanceTerminator, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		runner:     runner,
		uploader:   uploader,
		terminator: terminator,
		logger:     logger.With().Str("service", "orchestrator").Logger(),
	}
}

// Run executes all steps in fixed order and returns the run report along
// with the joined errors of every failed step. The returned report is
// valid even when the error is non-nil.
func (o *Orchestrator) Run(ctx context.Context) (*models.RunReport, error) {
	report := &models.RunReport{
		ExperimentScript: o.cfg.ExperimentScript,
		ProjectRoot:      o.cfg.ProjectRoot,
		StartedAt:        timeutil.ExperimentTimestamp(time.Now()),
	}

	var errs []error

	errs = append(errs, o.runStep(ctx, report, models.StepTraining, "", o.training))
	errs = append(errs, o.runStep(ctx, report, models.StepLogUpload, o.uploadSkipReason(), o.uploadLogs))
	errs = append(errs, o.runStep(ctx, report, models.StepCleanup, skipUnless(o.cfg.RunCleanup), o.cleanup))
	errs = append(errs, o.runStep(ctx, report, models.StepTerminate, skipUnless(o.cfg.Terminate), o.terminate))

	report.FinishedAt = timeutil.ExperimentTimestamp(time.Now())

	err := errors.Join(errs...)
	if err != nil {
		report.Status = models.RunStatusFailed
	} else {
		report.Status = models.RunStatusFinished
	}

	return report, err
}

// runStep executes one step unless skipReason is non-empty, and records
// the outcome on the report.
func (o *Orchestrator) runStep(ctx context.Context, report *models.RunReport, name, skipReason string, fn func(context.Context) error) error {
	if skipReason != "" {
		o.logger.Info().Str("step", name).Str("reason", skipReason).Msg("step skipped")
		report.Steps = append(report.Steps, models.StepResult{
			Name:   name,
			Status: models.StepStatusSkipped,
			Reason: skipReason,
		})
		return nil
	}

	o.logger.Info().Str("step", name).Msg("step started")
	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	result := models.StepResult{
		Name:     name,
		Status:   models.StepStatusOK,
		Duration: timeutil.FormatDuration(duration),
	}
	if err != nil {
		// Always-continue policy: log, record, and move on to the
		// next step.
		o.logger.Error().Err(err).Str("step", name).Msg("step failed")
		result.Status = models.StepStatusFailed
		result.Error = err.Error()
		report.Steps = append(report.Steps, result)
		return fmt.Errorf("%s: %w", name, err)
	}

	o.logger.Info().Str("step", name).Dur("duration", duration).Msg("step finished")
	report.Steps = append(report.Steps, result)
	return nil
}

func skipUnless(enabled bool) string {
	if !enabled {
		return "not requested"
	}
	return ""
}

func (o *Orchestrator) training(ctx context.Context) error {
	return o.runner.RunExperiment(ctx, o.cfg.ExperimentScript)
}

// uploadSkipReason gates the upload step: it runs only when a log path was
// supplied and the path is a regular file at check time.
func (o *Orchestrator) uploadSkipReason() string {
	if o.cfg.LogPath == "" {
		return "no log path configured"
	}

	info, err := os.Stat(o.cfg.LogPath)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Sprintf("log file not found: %s", o.cfg.LogPath)
	}

	return ""
}

// uploadLogs writes the filtered copy of the log next to the original and
// uploads both, each keyed by its own basename. A failed upload of the
// original does not stop the upload of the filtered copy.
func (o *Orchestrator) uploadLogs(ctx context.Context) error {
	filteredPath, err := logfilter.FilterFile(o.cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to filter log: %w", err)
	}

	var errs []error
	for _, p := range []string{o.cfg.LogPath, filteredPath} {
		if err := o.uploader.Upload(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (o *Orchestrator) cleanup(ctx context.Context) error {
	return o.runner.RunCleanup(ctx)
}

func (o *Orchestrator) terminate(ctx context.Context) error {
	instanceID, err := o.terminator.TerminateCurrent(ctx)
	if err != nil {
		return err
	}

	o.logger.Info().Str("instance_id", instanceID).Msg("instance termination requested")
	return nil
}
