package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mv1388/trainrun/internal/config"
)

func TestHelpFlag(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})

	// Help must print usage and return without running any step.
	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "--experiment-script")
	assert.Contains(t, out.String(), "--log-s3-upload-dir")
}

func TestUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--definitely-not-a-flag"})

	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
	assert.Contains(t, out.String(), "Usage:")
}

func TestConfigDefaults(t *testing.T) {
	initConfig()

	cfg := config.New()
	assert.False(t, cfg.Terminate)
	assert.False(t, cfg.RunCleanup)
	assert.Equal(t, "aws_run_experiments_project.sh", cfg.ExperimentScript)
	assert.Equal(t, "s3://model-result/training_logs", cfg.LogS3UploadDir)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Empty(t, cfg.LogPath)
}

func TestFlagBinding(t *testing.T) {
	initConfig()
	require.NoError(t, rootCmd.ParseFlags([]string{
		"-t", "-c",
		"-e", "custom.sh",
		"-l", "/tmp/run.log",
		"--log-s3-upload-dir", "s3://other-bucket/logs",
	}))

	cfg := config.New()
	assert.True(t, cfg.Terminate)
	assert.True(t, cfg.RunCleanup)
	assert.Equal(t, "custom.sh", cfg.ExperimentScript)
	assert.Equal(t, "/tmp/run.log", cfg.LogPath)
	assert.Equal(t, "s3://other-bucket/logs", cfg.LogS3UploadDir)
}
