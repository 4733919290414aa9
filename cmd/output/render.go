package output

import (
	"fmt"

	"github.com/scrappystats/shipper/domain"
	"github.com/scrappystats/shipper/release"
)

// PrintReleaseList renders the expanded releases as a table, marking the
// current symlink target
func PrintReleaseList(releases []release.Release) (string, error) {
	if len(releases) == 0 {
		return PrintMessage(Plain, "No releases found."), nil
	}

	header := []string{
		"Release",
		"Version",
		"Current",
		"Modified",
	}
	var data [][]string
	for _, rel := range releases {
		current := ""
		if rel.Current {
			current = "*"
		}
		data = append(data, []string{
			rel.Name,
			rel.Version,
			current,
			rel.Modified.Format("2006-01-02 15:04:05"),
		})
	}

	table, err := PrintTable(header, data)
	if err != nil {
		return "", fmt.Errorf("printing release list table: %w", err)
	}
	return table, nil
}

// PrintDeploymentList renders deployment history as a table
func PrintDeploymentList(deployments []*domain.Deployment) (string, error) {
	if len(deployments) == 0 {
		return PrintMessage(Plain, "No deployments recorded."), nil
	}

	header := []string{
		"Release",
		"Version",
		"Status",
		"Rolled Back",
		"Deployed At",
	}
	var data [][]string
	for _, dep := range deployments {
		rolledBack := ""
		if dep.RolledBack {
			rolledBack = "yes"
		}
		data = append(data, []string{
			dep.ReleaseName,
			dep.Version,
			dep.Status.String(),
			rolledBack,
			dep.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	table, err := PrintTable(header, data)
	if err != nil {
		return "", fmt.Errorf("printing deployment list table: %w", err)
	}
	return table, nil
}
