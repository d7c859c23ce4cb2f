package cmd

import (
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mv1388/trainrun/internal/cloud"
	"github.com/mv1388/trainrun/internal/config"
	"github.com/mv1388/trainrun/internal/orchestrator"
	"github.com/mv1388/trainrun/internal/report"
	"github.com/mv1388/trainrun/internal/runner"
)

func runTraining(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	ctx := logger.WithContext(cmd.Context())

	scriptRunner := runner.New(cfg.ProjectRoot, cfg.Region, logger)

	var uploader orchestrator.Uploader
	var terminator orchestrator.InstanceTerminator

	if cfg.LogPath != "" || cfg.Terminate {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return fmt.Errorf("failed to load AWS config: %w", err)
		}

		if cfg.LogPath != "" {
			bucket, prefix, err := cfg.LogS3Target()
			if err != nil {
				return err
			}
			uploader = cloud.NewUploader(s3.NewFromConfig(awsCfg), bucket, prefix, logger)
		}

		if cfg.Terminate {
			terminator = cloud.NewTerminator(imds.NewFromConfig(awsCfg), ec2.NewFromConfig(awsCfg), logger)
		}
	}

	orch := orchestrator.New(cfg, scriptRunner, uploader, terminator, logger)
	runReport, runErr := orch.Run(ctx)

	if cfg.ReportPath != "" {
		if err := report.Write(cfg.ReportPath, runReport); err != nil {
			logger.Error().Err(err).Str("path", cfg.ReportPath).Msg("failed to write run report")
		}
	}

	return runErr
}

// buildConfig constructs the immutable run configuration from flags and
// environment, defaulting the project root to the current directory.
func buildConfig() (*config.Config, error) {
	cfg := config.New()

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
