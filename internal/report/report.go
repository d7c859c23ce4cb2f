// Package report writes a local YAML summary of an orchestrated run,
// mirroring the local report files the training toolbox produces for
// experiments.
package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mv1388/trainrun/internal/models"
)

// Write encodes the run report as YAML at path, overwriting any existing
// file.
func Write(path string, rep *models.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create run report: %w", err)
	}

	encoder := yaml.NewEncoder(f)
	if err := encoder.Encode(rep); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode run report: %w", err)
	}

	if err := encoder.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize run report: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close run report: %w", err)
	}

	return nil
}
