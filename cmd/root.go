package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mv1388/trainrun/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "trainrun",
	Short: "AWS training run orchestrator",
	Long: `Orchestrates a training-job run on an AWS compute instance.

Runs the project's experiment script, optionally uploads the training log
(plus a blank-line-filtered copy) to S3, optionally runs the post-run
cleanup script, and optionally terminates the instance it is running on.
Steps always execute in that order; a failed step does not stop the
following ones.`,
	SilenceUsage: true,
	RunE:         runTraining,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Usage is printed for flag errors only; a failed run step already
	// reports its own error.
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		c.PrintErrln(c.UsageString())
		return err
	})

	rootCmd.Flags().BoolP("terminate", "t", false, "terminate this instance after the run")
	rootCmd.Flags().StringP("experiment-script", "e", "", "experiment script to run from AWS_core_scripts")
	rootCmd.Flags().StringP("log-path", "l", "", "local training log file to upload")
	rootCmd.Flags().String("log-s3-upload-dir", "", "S3 prefix the logs are uploaded under")
	rootCmd.Flags().BoolP("cleanup-script", "c", false, "run the post-run cleanup script (takes no value)")
	rootCmd.Flags().String("project-root", "", "project root directory (default: current directory)")
	rootCmd.Flags().String("run-report", "", "write a YAML run report to this path")

	viper.BindPFlag("terminate", rootCmd.Flags().Lookup("terminate"))
	viper.BindPFlag("experiment_script", rootCmd.Flags().Lookup("experiment-script"))
	viper.BindPFlag("log_path", rootCmd.Flags().Lookup("log-path"))
	viper.BindPFlag("log_s3_upload_dir", rootCmd.Flags().Lookup("log-s3-upload-dir"))
	viper.BindPFlag("cleanup_script", rootCmd.Flags().Lookup("cleanup-script"))
	viper.BindPFlag("project_root", rootCmd.Flags().Lookup("project-root"))
	viper.BindPFlag("run_report", rootCmd.Flags().Lookup("run-report"))
}

func initConfig() {
	// Environment variables
	viper.SetEnvPrefix("TRAINRUN")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("experiment_script", config.DefaultExperimentScript)
	viper.SetDefault("log_s3_upload_dir", config.DefaultLogS3UploadDir)
	viper.SetDefault("region", config.DefaultRegion)
}
