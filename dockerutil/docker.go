// Package dockerutil wraps the Docker SDK operations used by the deployer's
// health probe.
package dockerutil

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// HealthChecker reports whether the managed service's container is running
type HealthChecker interface {
	ServiceRunning(projectName, serviceName string) (bool, error)
}

// DockerClient wraps Docker SDK operations
type DockerClient struct {
	cli *client.Client
	ctx context.Context
}

var _ HealthChecker = (*DockerClient)(nil)

// NewDockerClient creates a new Docker client
func NewDockerClient() (*DockerClient, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return &DockerClient{
		cli: cli,
		ctx: context.Background(),
	}, nil
}

// Close closes the Docker client
func (dc *DockerClient) Close() error {
	if dc.cli != nil {
		return dc.cli.Close()
	}
	return nil
}

// ServiceRunning checks the compose-labeled container for the service and
// reports whether it is in the running state
func (dc *DockerClient) ServiceRunning(projectName, serviceName string) (bool, error) {
	args := filters.NewArgs(
		filters.Arg("label", "com.docker.compose.project="+projectName),
		filters.Arg("label", "com.docker.compose.service="+serviceName),
	)

	containers, err := dc.cli.ContainerList(dc.ctx, container.ListOptions{
		All:     true,
		Filters: args,
	})
	if err != nil {
		return false, fmt.Errorf("failed to list containers for service %s: %w", serviceName, err)
	}

	if len(containers) == 0 {
		return false, nil
	}

	for _, c := range containers {
		if c.State != "running" {
			return false, nil
		}
	}
	return true, nil
}
