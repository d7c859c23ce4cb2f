package cloud

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/rs/zerolog"
)

// IMDSAPI is the slice of the instance metadata client the terminator uses.
type IMDSAPI interface {
	GetMetadata(ctx context.Context, params *imds.GetMetadataInput, optFns ...func(*imds.Options)) (*imds.GetMetadataOutput, error)
}

// EC2API is the slice of the EC2 client the terminator uses.
type EC2API interface {
	TerminateInstances(ctx context.Context, params *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error)
}

// Terminator shuts down the instance it is running on: it resolves the
// current instance ID through the metadata service and issues a
// TerminateInstances call against it.
type Terminator struct {
	imdsClient IMDSAPI
	ec2Client  EC2API
	logger     zerolog.Logger
}

func NewTerminator(imdsClient IMDSAPI, ec2Client EC2API, logger zerolog.Logger) *Terminator {
	return &Terminator{
		imdsClient: imdsClient,
		ec2Client:  ec2Client,
		logger:     logger.With().Str("service", "instance_terminator").Logger(),
	}
}

// CurrentInstanceID looks up this instance's ID from the metadata service.
func (t *Terminator) CurrentInstanceID(ctx context.Context) (string, error) {
	output, err := t.imdsClient.GetMetadata(ctx, &imds.GetMetadataInput{
		Path: "instance-id",
	})
	if err != nil {
		return "", fmt.Errorf("failed to query instance metadata: %w", err)
	}
	defer output.Content.Close()

	data, err := io.ReadAll(output.Content)
	if err != nil {
		return "", fmt.Errorf("failed to read instance metadata: %w", err)
	}

	instanceID := strings.TrimSpace(string(data))
	if instanceID == "" {
		return "", fmt.Errorf("instance metadata returned empty instance id")
	}

	return instanceID, nil
}

// TerminateCurrent terminates the current instance and returns its ID.
// There is no confirmation and no graceful shutdown ordering beyond what
// the caller enforces.
func (t *Terminator) TerminateCurrent(ctx context.Context) (string, error) {
	instanceID, err := t.CurrentInstanceID(ctx)
	if err != nil {
		return "", err
	}

	t.logger.Info().Str("instance_id", instanceID).Msg("terminating instance")

	_, err = t.ec2Client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to terminate instance %s: %w", instanceID, err)
	}

	return instanceID, nil
}
