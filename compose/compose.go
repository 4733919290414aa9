// Package compose drives the docker compose CLI for the managed service.
package compose

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/scrappystats/shipper/config"
)

type ContainerInfo struct {
	Service    string `json:"Service"`
	Name       string `json:"Name"`
	State      string `json:"State"`
	Status     string `json:"Status"`
	RunningFor string `json:"RunningFor"`
}

type ComposeStatus struct {
	Status     string
	Containers []ContainerInfo
	Uptime     string
}

// ServiceController is the subset of compose operations the deployer needs
type ServiceController interface {
	BuildService() (string, error)
	UpService() (string, error)
	LogsPiping() error
	Status() (*ComposeStatus, error)
}

type ComposeProject struct {
	// Name is the fixed compose project name namespacing the containers.
	Name string
	// WorkingDir is the release directory holding the compose file.
	WorkingDir string
	// ComposeFiles is a list of Docker Compose files for the project.
	ComposeFiles []string
	// Service is the single service the deployer manages.
	Service string
	// Config holds configuration for docker commands
	Config *config.Config
}

var _ ServiceController = (*ComposeProject)(nil)

// NewComposeProject creates a ComposeProject rooted at workingDir using the
// configured project name, compose file and service
func NewComposeProject(workingDir string, cfg *config.Config) *ComposeProject {
	return &ComposeProject{
		Name:         cfg.ComposeProject,
		WorkingDir:   workingDir,
		ComposeFiles: []string{cfg.ComposeFile},
		Service:      cfg.ComposeService,
		Config:       cfg,
	}
}

// BuildService rebuilds the managed service's image from the release context
func (p *ComposeProject) BuildService() (string, error) {
	cmd := p.prepareCommand("build", []string{p.Service})
	return p.executeCommand(cmd)
}

// UpService recreates only the managed service, leaving the rest of the
// stack undisturbed
func (p *ComposeProject) UpService() (string, error) {
	cmd := p.prepareCommand("up", []string{"--detach", "--no-deps", "--quiet-pull", "--no-color", p.Service})
	return p.executeCommand(cmd)
}

// LogsPiping follows the managed service's logs directly on the terminal
// until interrupted
func (p *ComposeProject) LogsPiping() error {
	cmd := p.prepareCommand("logs", []string{"--follow", p.Service})
	return p.executeCommandPiping(cmd)
}

func (p *ComposeProject) prepareCommand(command string, args []string) *exec.Cmd {
	commandArgs := []string{
		"--host", p.Config.DockerHost,
		"compose",
		"--project-name", p.Name,
	}

	for _, file := range p.ComposeFiles {
		commandArgs = append(commandArgs, "--file", filepath.Join(p.WorkingDir, file))
	}

	commandArgs = append(commandArgs, command)
	commandArgs = append(commandArgs, args...)

	slog.Debug("Executing Docker Compose command",
		"command", p.Config.DockerCommand,
		"args", commandArgs,
		"working_dir", p.WorkingDir)

	cmd := exec.Command(p.Config.DockerCommand, commandArgs...)
	cmd.Dir = p.WorkingDir

	return cmd
}

func (p *ComposeProject) executeCommand(cmd *exec.Cmd) (string, error) {
	out, err := cmd.CombinedOutput()
	output := string(out)
	if err != nil {
		slog.Error("Docker Compose command failed",
			"project_name", p.Name,
			"command", cmd.String(),
			"error", err,
			"output", output)
		return output, fmt.Errorf("docker compose failed: %w", err)
	}
	return output, nil
}

func (p *ComposeProject) executeCommandPiping(cmd *exec.Cmd) error {
	// Inherit stdout and stderr for direct piping to terminal
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Debug("Executing Docker Compose command with direct piping",
		"project_name", p.Name,
		"command", cmd.String(),
		"working_dir", p.WorkingDir)

	if err := cmd.Run(); err != nil {
		slog.Error("Docker Compose command failed",
			"project_name", p.Name,
			"command", cmd.String(),
			"error", err)
		return err
	}

	return nil
}

// Status reports the state of the project's containers
func (p *ComposeProject) Status() (*ComposeStatus, error) {
	cmd := p.prepareCommand("ps", []string{"--format", "json"})

	output, err := p.executeCommand(cmd)
	if err != nil {
		return nil, err
	}

	return ParseStatus(p.Name, output)
}

// ParseStatus aggregates docker compose ps JSON-lines output into an overall
// project status
func ParseStatus(projectName, output string) (*ComposeStatus, error) {
	var containers []ContainerInfo
	lines := strings.Split(strings.TrimSpace(output), "\n")

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var container ContainerInfo
		if err := json.Unmarshal([]byte(line), &container); err != nil {
			slog.Error("Failed to parse container JSON",
				"project_name", projectName,
				"line", line,
				"error", err)
			continue
		}
		containers = append(containers, container)
	}

	projectStatus := "stopped"
	uptime := ""
	if len(containers) > 0 {
		runningCount := 0
		for _, container := range containers {
			if container.State == "running" {
				runningCount++
				if uptime == "" {
					uptime = strings.TrimSuffix(container.RunningFor, " ago")
				}
			}
		}

		if runningCount == len(containers) {
			projectStatus = "running"
		} else if runningCount > 0 {
			projectStatus = "partial"
		}
	}

	return &ComposeStatus{
		Status:     projectStatus,
		Containers: containers,
		Uptime:     uptime,
	}, nil
}
