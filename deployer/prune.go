package deployer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scrappystats/shipper/release"
)

// Prune removes the oldest release directories beyond keep, never touching
// the current symlink target or the most recent previous target. Retention
// is an explicit operator action, deploys never prune implicitly.
func (d *Deployer) Prune(keep int) ([]string, error) {
	if keep < 1 {
		keep = d.config.RetainCount
	}

	currentTarget, err := release.CurrentTarget(d.config.CurrentLink)
	if err != nil {
		return nil, err
	}

	releases, err := release.List(d.config.ReleasesDir, currentTarget)
	if err != nil {
		return nil, err
	}

	protected := map[string]bool{}
	if currentTarget != "" {
		protected[filepath.Base(currentTarget)] = true
	}
	if previousName, err := d.previousReleaseName(currentTarget); err == nil {
		protected[previousName] = true
	}

	var removed []string
	for i, rel := range releases {
		if i < keep || protected[rel.Name] {
			continue
		}
		if err := os.RemoveAll(rel.Path); err != nil {
			return removed, fmt.Errorf("failed to remove release %s: %w", rel.Name, err)
		}
		slog.Info("Pruned release", "release", rel.Name)
		removed = append(removed, rel.Name)
	}

	return removed, nil
}
