package models

// Step names in their fixed execution order.
const (
	StepTraining  = "training"
	StepLogUpload = "log_upload"
	StepCleanup   = "cleanup"
	StepTerminate = "terminate"
)

type StepStatus string

const (
	StepStatusOK      StepStatus = "ok"
	StepStatusFailed  StepStatus = "failed"
	StepStatusSkipped StepStatus = "skipped"
)

type RunStatus string

const (
	RunStatusFinished RunStatus = "FINISHED"
	RunStatusFailed   RunStatus = "FAILED"
)

type StepResult struct {
	Name     string     `yaml:"name"`
	Status   StepStatus `yaml:"status"`
	Duration string     `yaml:"duration,omitempty"`
	Reason   string     `yaml:"reason,omitempty"`
	Error    string     `yaml:"error,omitempty"`
}

// RunReport summarizes one orchestrated training run.
type RunReport struct {
	ExperimentScript string       `yaml:"experiment_script"`
	ProjectRoot      string       `yaml:"project_root"`
	Status           RunStatus    `yaml:"status"`
	StartedAt        string       `yaml:"started_at"`
	FinishedAt       string       `yaml:"finished_at"`
	Steps            []StepResult `yaml:"steps"`
}
