package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Defaults matching the original AWS run scripts.
const (
	DefaultExperimentScript = "aws_run_experiments_project.sh"
	DefaultLogS3UploadDir   = "s3://model-result/training_logs"
	DefaultRegion           = "eu-west-1"
)

// Config holds the settings for a single training run. It is built once
// from flags and environment and never mutated afterwards.
type Config struct {
	Terminate        bool
	ExperimentScript string
	LogPath          string
	LogS3UploadDir   string
	RunCleanup       bool
	ProjectRoot      string
	Region           string
	ReportPath       string
}

func New() *Config {
	return &Config{
		Terminate:        viper.GetBool("terminate"),
		ExperimentScript: viper.GetString("experiment_script"),
		LogPath:          viper.GetString("log_path"),
		LogS3UploadDir:   viper.GetString("log_s3_upload_dir"),
		RunCleanup:       viper.GetBool("cleanup_script"),
		ProjectRoot:      viper.GetString("project_root"),
		Region:           viper.GetString("region"),
		ReportPath:       viper.GetString("run_report"),
	}
}

func (c *Config) Validate() error {
	if c.ExperimentScript == "" {
		return fmt.Errorf("experiment script name is required")
	}

	if c.ProjectRoot == "" {
		return fmt.Errorf("project root is required")
	}

	if c.Region == "" {
		return fmt.Errorf("region is required")
	}

	// The upload destination must be well-formed even when no log path is
	// given, so a bad value fails fast instead of after training.
	if _, _, err := ParseS3URI(c.LogS3UploadDir); err != nil {
		return fmt.Errorf("invalid log upload dir: %w", err)
	}

	return nil
}

// LogS3Target returns the bucket and key prefix for log uploads.
func (c *Config) LogS3Target() (bucket, prefix string, err error) {
	return ParseS3URI(c.LogS3UploadDir)
}

// ParseS3URI splits an s3://bucket/prefix URI into bucket and prefix.
// The prefix may be empty; a missing scheme or bucket is an error.
func ParseS3URI(uri string) (bucket, prefix string, err error) {
	const scheme = "s3://"

	if !strings.HasPrefix(uri, scheme) {
		return "", "", fmt.Errorf("not an s3 URI: %s", uri)
	}

	rest := strings.TrimPrefix(uri, scheme)
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in s3 URI: %s", uri)
	}

	return bucket, strings.Trim(prefix, "/"), nil
}
