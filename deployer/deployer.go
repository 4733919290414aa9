// Package deployer expands release archives, validates them and switches the
// current symlink with activation, health probing and automatic rollback.
package deployer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"

	"github.com/scrappystats/shipper/archive"
	"github.com/scrappystats/shipper/compose"
	"github.com/scrappystats/shipper/config"
	"github.com/scrappystats/shipper/domain"
	"github.com/scrappystats/shipper/release"
	"github.com/scrappystats/shipper/repository"
)

// Service is the deploy-side surface used by the CLI
type Service interface {
	Deploy(archivePath string) (*domain.Deployment, error)
	Rollback(releaseName string) (*domain.Deployment, error)
	Prune(keep int) ([]string, error)
	Releases() ([]release.Release, error)
	FollowLogs() error
}

// ControllerFactory builds a compose controller rooted at a release directory
type ControllerFactory func(workingDir string) compose.ServiceController

// HealthChecker reports whether the managed service's container is running
type HealthChecker interface {
	ServiceRunning(projectName, serviceName string) (bool, error)
}

type Deployer struct {
	config        *config.Config
	history       repository.DeploymentRepository
	health        HealthChecker
	newController ControllerFactory
}

var _ Service = (*Deployer)(nil)

func NewDeployer(
	cfg *config.Config,
	history repository.DeploymentRepository,
	health HealthChecker,
	newController ControllerFactory,
) *Deployer {
	if newController == nil {
		newController = func(workingDir string) compose.ServiceController {
			return compose.NewComposeProject(workingDir, cfg)
		}
	}
	return &Deployer{
		config:        cfg,
		history:       history,
		health:        health,
		newController: newController,
	}
}

// Deploy expands archivePath into the releases root, validates the expanded
// tree, atomically switches the current symlink and activates the service.
// With an empty archivePath the most recently modified matching archive in
// the working directory is selected. Any failure before activation leaves
// the previous release current; an activation or probe failure rolls the
// symlink back and restarts the prior release.
func (d *Deployer) Deploy(archivePath string) (*domain.Deployment, error) {
	archivePath, err := d.selectArchive(archivePath)
	if err != nil {
		return nil, err
	}

	// Serialize concurrent deploys; held through the symlink switch and any
	// rollback so two invocations cannot interleave
	lock := flock.New(d.config.LockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire deploy lock %s: %w", d.config.LockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("another deploy is in progress (lock held at %s)", d.config.LockPath)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			slog.Debug("Failed to release deploy lock", "error", unlockErr)
		}
	}()

	releaseName := release.NameFromArchive(archivePath)
	releaseDir := filepath.Join(d.config.ReleasesDir, releaseName)

	slog.Info("Deploying release", "archive", archivePath, "release_dir", releaseDir)

	if err := os.MkdirAll(releaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create release directory %s: %w", releaseDir, err)
	}

	if err := archive.Unpack(archivePath, releaseDir); err != nil {
		return nil, err
	}

	// Validation gate: a release missing mandatory artifacts must never
	// become current. The invalid directory is left on disk for inspection.
	if err := release.Validate(releaseDir); err != nil {
		return nil, err
	}

	composeFile := filepath.Join(releaseDir, d.config.ComposeFile)
	defined, err := compose.ServiceDefined(composeFile, d.config.ComposeService)
	if err != nil {
		return nil, err
	}
	if !defined {
		return nil, fmt.Errorf("compose file does not define service %q", d.config.ComposeService)
	}

	version := release.ResolveVersion(releaseDir)
	slog.Info("Resolved release version", "version", version)

	deployment := domain.NewDeployment(releaseName, version, archivePath)
	if err := d.history.Create(&deployment); err != nil {
		return nil, fmt.Errorf("failed to record deployment: %w", err)
	}

	previousTarget, err := release.CurrentTarget(d.config.CurrentLink)
	if err != nil {
		return nil, err
	}

	if err := release.SwitchCurrent(d.config.CurrentLink, releaseDir); err != nil {
		return d.failDeployment(&deployment, err)
	}

	output, err := d.activate(releaseDir)
	deployment.Output = output
	if err != nil {
		return d.rollBack(&deployment, previousTarget, err)
	}

	if err := d.probe(); err != nil {
		return d.rollBack(&deployment, previousTarget, err)
	}

	deployment.Status = domain.DeploymentStatusCompleted
	if err := d.history.Update(&deployment); err != nil {
		slog.Error("Failed to update deployment record", "deployment_id", deployment.ID, "error", err)
	}

	slog.Info("Release deployed",
		"release", releaseName,
		"version", version,
		"previous", previousTarget)

	return &deployment, nil
}

// selectArchive resolves the archive to deploy. An explicit path must exist;
// otherwise the newest matching archive in the working directory wins.
func (d *Deployer) selectArchive(archivePath string) (string, error) {
	if archivePath != "" {
		if _, err := os.Stat(archivePath); err != nil {
			return "", fmt.Errorf("archive %s not found: %w", archivePath, err)
		}
		return archivePath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return release.FindNewestArchive(cwd, d.config.AppName)
}

// activate rebuilds the service image from the release context and recreates
// only that service
func (d *Deployer) activate(releaseDir string) (string, error) {
	controller := d.newController(releaseDir)

	var output strings.Builder

	buildOut, err := controller.BuildService()
	output.WriteString(buildOut)
	if err != nil {
		return output.String(), fmt.Errorf("image rebuild failed: %w", err)
	}

	upOut, err := controller.UpService()
	output.WriteString(upOut)
	if err != nil {
		return output.String(), fmt.Errorf("service restart failed: %w", err)
	}

	return output.String(), nil
}

// probe waits the settle interval, then retries the running check until the
// probe timeout elapses
func (d *Deployer) probe() error {
	if d.health == nil {
		return nil
	}

	time.Sleep(d.config.SettleInterval)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxElapsedTime = d.config.ProbeTimeout

	return backoff.Retry(func() error {
		running, err := d.health.ServiceRunning(d.config.ComposeProject, d.config.ComposeService)
		if err != nil {
			return err
		}
		if !running {
			return fmt.Errorf("service %s is not running", d.config.ComposeService)
		}
		return nil
	}, bo)
}

// rollBack restores the previous symlink target after a failed activation
// and restarts the prior release, reporting both outcomes
func (d *Deployer) rollBack(deployment *domain.Deployment, previousTarget string, cause error) (*domain.Deployment, error) {
	deployment.Status = domain.DeploymentStatusFailed

	if previousTarget == "" {
		// First deploy on this host, there is nothing to restore
		if err := d.history.Update(deployment); err != nil {
			slog.Error("Failed to update deployment record", "deployment_id", deployment.ID, "error", err)
		}
		return deployment, fmt.Errorf("activation failed with no previous release to roll back to: %w", cause)
	}

	slog.Warn("Activation failed, rolling back", "previous", previousTarget, "error", cause)

	deployment.RolledBack = true

	if err := release.SwitchCurrent(d.config.CurrentLink, previousTarget); err != nil {
		if updateErr := d.history.Update(deployment); updateErr != nil {
			slog.Error("Failed to update deployment record", "deployment_id", deployment.ID, "error", updateErr)
		}
		return deployment, fmt.Errorf("activation failed (%v) and rollback could not restore the symlink: %w", cause, err)
	}

	controller := d.newController(previousTarget)
	if _, err := controller.UpService(); err != nil {
		if updateErr := d.history.Update(deployment); updateErr != nil {
			slog.Error("Failed to update deployment record", "deployment_id", deployment.ID, "error", updateErr)
		}
		return deployment, fmt.Errorf(
			"activation failed (%v); symlink restored to %s but restarting the prior release also failed: %w",
			cause, previousTarget, err)
	}

	if err := d.history.Update(deployment); err != nil {
		slog.Error("Failed to update deployment record", "deployment_id", deployment.ID, "error", err)
	}

	return deployment, fmt.Errorf("activation failed, rolled back to %s: %w", previousTarget, cause)
}

func (d *Deployer) failDeployment(deployment *domain.Deployment, cause error) (*domain.Deployment, error) {
	deployment.Status = domain.DeploymentStatusFailed
	if err := d.history.Update(deployment); err != nil {
		slog.Error("Failed to update deployment record", "deployment_id", deployment.ID, "error", err)
	}
	return deployment, cause
}

// FollowLogs streams the current release's service logs until interrupted.
// This is an operator convenience, a failure here does not affect an
// already-committed deploy.
func (d *Deployer) FollowLogs() error {
	controller := d.newController(d.config.CurrentLink)
	return controller.LogsPiping()
}

// Releases lists the expanded release directories, newest first
func (d *Deployer) Releases() ([]release.Release, error) {
	currentTarget, err := release.CurrentTarget(d.config.CurrentLink)
	if err != nil {
		return nil, err
	}
	return release.List(d.config.ReleasesDir, currentTarget)
}
