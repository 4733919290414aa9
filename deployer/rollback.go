package deployer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/scrappystats/shipper/domain"
	"github.com/scrappystats/shipper/release"
)

// Rollback repoints the current symlink at a previously expanded release and
// restarts the service from it. With an empty releaseName the most recent
// completed deployment of a different release than the current one is chosen.
func (d *Deployer) Rollback(releaseName string) (*domain.Deployment, error) {
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

	currentTarget, err := release.CurrentTarget(d.config.CurrentLink)
	if err != nil {
		return nil, err
	}

	if releaseName == "" {
		releaseName, err = d.previousReleaseName(currentTarget)
		if err != nil {
			return nil, err
		}
	}

	releaseDir := filepath.Join(d.config.ReleasesDir, releaseName)
	if _, err := os.Stat(releaseDir); err != nil {
		return nil, fmt.Errorf("release directory %s not found: %w", releaseDir, err)
	}

	// The rollback target must still be deployable
	if err := release.Validate(releaseDir); err != nil {
		return nil, err
	}

	version := release.ResolveVersion(releaseDir)

	deployment := domain.NewDeployment(releaseName, version, "")
	deployment.RolledBack = true
	if err := d.history.Create(&deployment); err != nil {
		return nil, fmt.Errorf("failed to record rollback: %w", err)
	}

	if err := release.SwitchCurrent(d.config.CurrentLink, releaseDir); err != nil {
		return d.failDeployment(&deployment, err)
	}

	output, err := d.activate(releaseDir)
	deployment.Output = output
	if err != nil {
		return d.failDeployment(&deployment, err)
	}

	deployment.Status = domain.DeploymentStatusCompleted
	if err := d.history.Update(&deployment); err != nil {
		slog.Error("Failed to update deployment record", "deployment_id", deployment.ID, "error", err)
	}

	slog.Info("Rolled back", "release", releaseName, "version", version)
	return &deployment, nil
}

// previousReleaseName finds the most recent completed deployment whose
// release differs from the current symlink target
func (d *Deployer) previousReleaseName(currentTarget string) (string, error) {
	currentName := filepath.Base(currentTarget)

	deployments, err := d.history.LatestCompleted(0)
	if err != nil {
		return "", fmt.Errorf("failed to read deployment history: %w", err)
	}

	for _, dep := range deployments {
		if dep.ReleaseName != currentName {
			return dep.ReleaseName, nil
		}
	}

	return "", fmt.Errorf("no previous release found in deployment history")
}
